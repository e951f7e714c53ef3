// Package planner is the entry point the presentation layer calls: it
// validates a trip request, runs the shortest-path search and formats the
// result as an itinerary.
package planner

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"metro-planner/internal/itinerary"
	"metro-planner/internal/network"
)

// Result labels reported to Metrics.
const (
	ResultOK             = "ok"
	ResultUnknownStation = "unknown_station"
	ResultNoPath         = "no_path"
	ResultError          = "error"
)

// Metrics receives one observation per Plan call.
type Metrics interface {
	ObservePlan(result string, d time.Duration, it *itinerary.Itinerary)
}

// Planner is stateless apart from its graph; it is safe for concurrent use.
// The graph can be replaced while plans are running: each Plan call works
// on the graph it started with.
type Planner struct {
	graph      atomic.Pointer[network.Graph]
	solverOpts []network.Option
	formatOpts []itinerary.Option
	metrics    Metrics
}

type Option func(*Planner)

// WithMinutes overrides the per-hop and per-transfer minutes.
func WithMinutes(station, transfer int) Option {
	return func(p *Planner) {
		p.formatOpts = append(p.formatOpts,
			itinerary.WithStationMinutes(station),
			itinerary.WithTransferMinutes(transfer),
		)
	}
}

// WithCosts overrides the solver's same-line and transfer hop costs.
func WithCosts(sameLine, transfer int) Option {
	return func(p *Planner) {
		p.solverOpts = append(p.solverOpts,
			network.WithSameLineCost(sameLine),
			network.WithTransferCost(transfer),
		)
	}
}

func WithMetrics(m Metrics) Option {
	return func(p *Planner) { p.metrics = m }
}

func New(g *network.Graph, opts ...Option) *Planner {
	p := &Planner{}
	p.graph.Store(g)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Graph returns the graph the planner currently searches.
func (p *Planner) Graph() *network.Graph { return p.graph.Load() }

// SetGraph swaps in a rebuilt network.
func (p *Planner) SetGraph(g *network.Graph) { p.graph.Store(g) }

// Plan computes a fresh itinerary from origin to destination. Unknown IDs
// fail with network.ErrUnknownStation before any search runs.
func (p *Planner) Plan(origin, destination string) (*itinerary.Itinerary, error) {
	start := time.Now()
	it, err := p.plan(origin, destination)
	if p.metrics != nil {
		p.metrics.ObservePlan(Result(err), time.Since(start), it)
	}
	return it, err
}

func (p *Planner) plan(origin, destination string) (*itinerary.Itinerary, error) {
	g := p.graph.Load()
	if g == nil {
		return nil, fmt.Errorf("%w: planner has no graph", network.ErrInvalidNetwork)
	}
	for _, id := range []string{origin, destination} {
		if !g.Has(id) {
			return nil, fmt.Errorf("%w: %q", network.ErrUnknownStation, id)
		}
	}

	path, err := network.ShortestPath(g, origin, destination, p.solverOpts...)
	if err != nil {
		if errors.Is(err, network.ErrNoPathFound) {
			log.Printf("planner: %v", err)
		}
		return nil, err
	}

	it, err := itinerary.Format(g, path.Stations, p.formatOpts...)
	if err != nil {
		return nil, fmt.Errorf("format %s -> %s: %w", origin, destination, err)
	}
	return it, nil
}

// Result classifies a Plan error into one of the Result* labels.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, network.ErrUnknownStation):
		return ResultUnknownStation
	case errors.Is(err, network.ErrNoPathFound):
		return ResultNoPath
	default:
		return ResultError
	}
}
