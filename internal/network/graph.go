// Package network builds the station graph of a metro network from its
// static reference data and searches it for line-change-penalised shortest
// paths.
//
// A Graph is built once with Build and is read-only afterwards, so a single
// instance can be shared by any number of concurrent planning requests
// without locking.
package network

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"metro-planner/internal/metro"
)

// Sentinel errors returned by the builder and the solver.
var (
	// ErrInvalidNetwork indicates malformed reference data detected at build time.
	ErrInvalidNetwork = errors.New("network: invalid reference data")

	// ErrUnknownStation indicates a station ID that is not a node of the graph.
	ErrUnknownStation = errors.New("network: unknown station")

	// ErrNoPathFound indicates that the search could not connect two known
	// stations, which means the reference data describes a disconnected network.
	ErrNoPathFound = errors.New("network: no path found")
)

// StationNode is one station of the graph.
type StationNode struct {
	ID       string
	Name     string
	Lines    []string // ordered set; two or more for transfer stations
	Adjacent []string // ordered set of directly reachable station IDs
}

// Transfer reports whether the station is served by more than one line.
func (n StationNode) Transfer() bool { return len(n.Lines) > 1 }

type edgeKey struct{ a, b string }

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// Graph is the undirected station graph. The zero value is not usable; call Build.
type Graph struct {
	nodes    map[string]*StationNode
	ids      []string             // sorted node IDs
	edges    map[edgeKey][]string // lines connecting each pair, in line input order
	stations map[string]metro.Station
	lines    []metro.Line
	lineIdx  map[string]int
}

// Build creates a graph in which every station is a node and two stations
// are joined iff they are consecutive on at least one line.
//
// Reference data is trusted configuration, so any inconsistency fails the
// whole build with an error wrapping ErrInvalidNetwork: empty or duplicate
// IDs, a line naming an unknown station, a station repeated back to back,
// or a direction key that is not on its line.
//
// A node's line set is the station's declared memberships followed by any
// other line that lists it.
func Build(lines []metro.Line, stations []metro.Station) (*Graph, error) {
	g := &Graph{
		nodes:    make(map[string]*StationNode, len(stations)),
		edges:    make(map[edgeKey][]string),
		stations: make(map[string]metro.Station, len(stations)),
		lineIdx:  make(map[string]int, len(lines)),
	}

	for _, s := range stations {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: station %q has an empty id", ErrInvalidNetwork, s.Name)
		}
		if _, dup := g.nodes[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate station %q", ErrInvalidNetwork, s.ID)
		}
		n := &StationNode{ID: s.ID, Name: s.Name}
		for _, l := range s.Lines {
			n.addLine(l)
		}
		g.nodes[s.ID] = n
		g.stations[s.ID] = s
	}

	for _, l := range lines {
		if err := g.addLine(l); err != nil {
			return nil, err
		}
	}

	g.ids = make([]string, 0, len(g.nodes))
	for id, n := range g.nodes {
		g.ids = append(g.ids, id)
		s := g.stations[id]
		s.Lines = slices.Clone(n.Lines)
		g.stations[id] = s
	}
	sort.Strings(g.ids)
	return g, nil
}

func (g *Graph) addLine(l metro.Line) error {
	if l.Name == "" {
		return fmt.Errorf("%w: line with empty name", ErrInvalidNetwork)
	}
	if _, dup := g.lineIdx[l.Name]; dup {
		return fmt.Errorf("%w: duplicate line %q", ErrInvalidNetwork, l.Name)
	}
	if len(l.Stations) == 0 {
		return fmt.Errorf("%w: line %q has no stations", ErrInvalidNetwork, l.Name)
	}
	for i, id := range l.Stations {
		n, ok := g.nodes[id]
		if !ok {
			return fmt.Errorf("%w: line %q references unknown station %q", ErrInvalidNetwork, l.Name, id)
		}
		n.addLine(l.Name)
		if i == 0 {
			continue
		}
		prev := l.Stations[i-1]
		if prev == id {
			return fmt.Errorf("%w: line %q repeats station %q", ErrInvalidNetwork, l.Name, id)
		}
		g.addEdge(prev, id, l.Name)
	}
	for terminal := range l.Directions {
		if !slices.Contains(l.Stations, terminal) {
			return fmt.Errorf("%w: line %q has a direction for %q which it does not serve", ErrInvalidNetwork, l.Name, terminal)
		}
	}

	cp := l
	cp.Stations = slices.Clone(l.Stations)
	cp.Directions = maps.Clone(l.Directions)
	g.lineIdx[l.Name] = len(g.lines)
	g.lines = append(g.lines, cp)
	return nil
}

func (g *Graph) addEdge(a, b, line string) {
	k := keyOf(a, b)
	if !slices.Contains(g.edges[k], line) {
		g.edges[k] = append(g.edges[k], line)
	}
	g.nodes[a].link(b)
	g.nodes[b].link(a)
}

func (n *StationNode) addLine(line string) {
	if line != "" && !slices.Contains(n.Lines, line) {
		n.Lines = append(n.Lines, line)
	}
}

func (n *StationNode) link(id string) {
	if !slices.Contains(n.Adjacent, id) {
		n.Adjacent = append(n.Adjacent, id)
	}
}

func (n *StationNode) clone() StationNode {
	return StationNode{
		ID:       n.ID,
		Name:     n.Name,
		Lines:    slices.Clone(n.Lines),
		Adjacent: slices.Clone(n.Adjacent),
	}
}

// Has reports whether id is a station of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of stations.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of distinct undirected station pairs.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns a copy of the station node for id.
func (g *Graph) Node(id string) (StationNode, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return StationNode{}, false
	}
	return n.clone(), true
}

// Nodes returns copies of every node, sorted by ID.
func (g *Graph) Nodes() []StationNode {
	out := make([]StationNode, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.nodes[id].clone())
	}
	return out
}

// Neighbors returns the IDs adjacent to id, or nil for an unknown station.
func (g *Graph) Neighbors(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.Adjacent)
}

// AreAdjacent reports whether a and b are consecutive on some line.
func (g *Graph) AreAdjacent(a, b string) bool {
	_, ok := g.edges[keyOf(a, b)]
	return ok
}

// EdgeLines returns the lines on which a and b are consecutive, or nil when
// they are not adjacent.
func (g *Graph) EdgeLines(a, b string) []string {
	return slices.Clone(g.edges[keyOf(a, b)])
}

// StationName resolves a display name, falling back to the raw ID.
func (g *Graph) StationName(id string) string {
	if n, ok := g.nodes[id]; ok && n.Name != "" {
		return n.Name
	}
	return id
}

// Station returns the reference record for id with its resolved line set.
func (g *Graph) Station(id string) (metro.Station, bool) {
	s, ok := g.stations[id]
	if !ok {
		return metro.Station{}, false
	}
	s.Lines = slices.Clone(s.Lines)
	return s, true
}

// Line returns a copy of the named line.
func (g *Graph) Line(name string) (metro.Line, bool) {
	i, ok := g.lineIdx[name]
	if !ok {
		return metro.Line{}, false
	}
	return cloneLine(g.lines[i]), true
}

// Lines returns copies of every line in input order.
func (g *Graph) Lines() []metro.Line {
	out := make([]metro.Line, 0, len(g.lines))
	for _, l := range g.lines {
		out = append(out, cloneLine(l))
	}
	return out
}

func cloneLine(l metro.Line) metro.Line {
	l.Stations = slices.Clone(l.Stations)
	l.Directions = maps.Clone(l.Directions)
	return l
}

// TransferStations returns the nodes served by two or more lines.
func (g *Graph) TransferStations() []StationNode {
	return g.filter(func(n *StationNode) bool { return n.Transfer() })
}

// TerminalStations returns the nodes with exactly one neighbour.
func (g *Graph) TerminalStations() []StationNode {
	return g.filter(func(n *StationNode) bool { return len(n.Adjacent) == 1 })
}

// StationsByLine returns the station IDs of a line in traversal order.
func (g *Graph) StationsByLine(line string) []string {
	i, ok := g.lineIdx[line]
	if !ok {
		return nil
	}
	return slices.Clone(g.lines[i].Stations)
}

func (g *Graph) filter(keep func(*StationNode) bool) []StationNode {
	var out []StationNode
	for _, id := range g.ids {
		if n := g.nodes[id]; keep(n) {
			out = append(out, n.clone())
		}
	}
	return out
}
