package network

import (
	"container/heap"
	"fmt"
	"slices"
)

// Default hop costs. A hop that cannot continue on any line the path is
// already riding costs three same-line hops.
const (
	DefaultSameLineCost = 1
	DefaultTransferCost = 3
)

// Options configures ShortestPath.
type Options struct {
	SameLineCost int
	TransferCost int
}

// DefaultOptions returns the 1/3 cost model.
func DefaultOptions() Options {
	return Options{SameLineCost: DefaultSameLineCost, TransferCost: DefaultTransferCost}
}

// Option mutates Options.
type Option func(*Options)

// WithSameLineCost sets the cost of a hop that stays on the current line.
// Panics if c <= 0.
func WithSameLineCost(c int) Option {
	if c <= 0 {
		panic("network: same-line cost must be positive")
	}
	return func(o *Options) { o.SameLineCost = c }
}

// WithTransferCost sets the cost of a hop that changes line. Panics if c <= 0.
func WithTransferCost(c int) Option {
	if c <= 0 {
		panic("network: transfer cost must be positive")
	}
	return func(o *Options) { o.TransferCost = c }
}

// Path is the solver output: station IDs from origin to destination inclusive
// and the minimum weighted cost the search computed for the destination.
type Path struct {
	Stations []string
	Cost     int
}

// Hops returns the number of edges on the path.
func (p Path) Hops() int {
	if len(p.Stations) == 0 {
		return 0
	}
	return len(p.Stations) - 1
}

// ShortestPath runs a Dijkstra search from origin to destination in which a
// hop costs SameLineCost when the next station shares a line with the lines
// common to the path so far, and TransferCost otherwise.
//
// Each reached node records its best cost, the lines common to the path into it,
// and every predecessor that achieved that cost, in the order found. Equal
// cost arrivals append a predecessor and merge their line sets. The path is
// rebuilt by always following the first recorded predecessor, so the result
// has minimum cost but not necessarily the fewest transfers among equal-cost
// alternatives.
//
// Errors wrap ErrUnknownStation when either endpoint is not in g and
// ErrNoPathFound when the destination cannot be reached. Panics if the
// options make a transfer cheaper than a same-line hop.
func ShortestPath(g *Graph, origin, destination string, opts ...Option) (Path, error) {
	if g == nil {
		return Path{}, fmt.Errorf("%w: nil graph", ErrInvalidNetwork)
	}
	for _, id := range []string{origin, destination} {
		if !g.Has(id) {
			return Path{}, fmt.Errorf("%w: %q", ErrUnknownStation, id)
		}
	}
	if origin == destination {
		return Path{Stations: []string{origin}}, nil
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TransferCost < cfg.SameLineCost {
		panic("network: transfer cost must not be below same-line cost")
	}

	r := &runner{
		g:       g,
		opts:    cfg,
		origin:  origin,
		dest:    destination,
		state:   make(map[string]*nodeState, g.Len()),
		visited: make(map[string]bool, g.Len()),
	}
	r.init()
	r.process()
	return r.reconstruct()
}

// nodeState is the per-node bookkeeping of a single search.
type nodeState struct {
	cost  int
	lines []string // lines common to the best paths so far
	preds []string // predecessors achieving cost, first found first
}

type runner struct {
	g       *Graph
	opts    Options
	origin  string
	dest    string
	state   map[string]*nodeState
	visited map[string]bool
	pq      frontier
	seq     int
}

func (r *runner) init() {
	r.state[r.origin] = &nodeState{lines: slices.Clone(r.g.nodes[r.origin].Lines)}
	heap.Init(&r.pq)
	r.push(r.origin, 0)
}

func (r *runner) push(id string, cost int) {
	heap.Push(&r.pq, &frontierItem{id: id, cost: cost, seq: r.seq})
	r.seq++
}

// process pops nodes in cost order until the destination is settled or the
// frontier is exhausted.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*frontierItem)
		if r.visited[item.id] {
			continue
		}
		r.visited[item.id] = true
		if item.id == r.dest {
			return
		}
		r.relax(item.id)
	}
}

func (r *runner) relax(u string) {
	cur := r.state[u]
	for _, v := range r.g.nodes[u].Adjacent {
		if r.visited[v] {
			continue
		}
		// A change leaves carried empty, so later hops cost TransferCost
		// too until a tie merges lines back in.
		carried := intersect(r.g.nodes[v].Lines, cur.lines)
		w := r.opts.SameLineCost
		if len(carried) == 0 {
			w = r.opts.TransferCost
		}
		next := cur.cost + w

		st, seen := r.state[v]
		switch {
		case !seen || next < st.cost:
			r.state[v] = &nodeState{cost: next, lines: carried, preds: []string{u}}
			r.push(v, next)
		case next == st.cost:
			st.preds = append(st.preds, u)
			st.lines = union(st.lines, carried)
		}
	}
}

func (r *runner) reconstruct() (Path, error) {
	end, ok := r.state[r.dest]
	if !ok || !r.visited[r.dest] {
		return Path{}, fmt.Errorf("%w: %q to %q", ErrNoPathFound, r.origin, r.dest)
	}
	path := []string{r.dest}
	for cur := r.dest; cur != r.origin; {
		st := r.state[cur]
		if st == nil || len(st.preds) == 0 || len(path) > r.g.Len() {
			return Path{}, fmt.Errorf("%w: broken predecessor chain at %q", ErrNoPathFound, cur)
		}
		cur = st.preds[0]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return Path{Stations: path, Cost: end.cost}, nil
}

// intersect returns the members of a that are also in b, in a's order.
func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		if slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

func union(a, b []string) []string {
	for _, x := range b {
		if !slices.Contains(a, x) {
			a = append(a, x)
		}
	}
	return a
}

type frontierItem struct {
	id   string
	cost int
	seq  int // insertion order, breaks cost ties
}

// frontier is a min-heap on (cost, seq) with lazy decrease-key: improved
// nodes are pushed again and stale entries are skipped when popped.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
