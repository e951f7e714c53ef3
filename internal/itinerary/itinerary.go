// Package itinerary turns a station path into travel legs and transfers
// with per-leg and total time, station and transfer figures.
package itinerary

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotAdjacent is returned when two consecutive path stations share no line.
var ErrNotAdjacent = errors.New("itinerary: consecutive stations are not adjacent")

const (
	DefaultStationMinutes  = 2
	DefaultTransferMinutes = 4
)

type Kind string

const (
	KindTravel   Kind = "travel"
	KindTransfer Kind = "transfer"
)

// Segment is either a travel leg (From, To, Line) or a transfer (FromLine, ToLine).
type Segment struct {
	Kind         Kind   `json:"kind"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`
	Line         string `json:"line,omitempty"`
	FromLine     string `json:"fromLine,omitempty"`
	ToLine       string `json:"toLine,omitempty"`
	Minutes      int    `json:"minutes"`
	StationCount int    `json:"stationCount"`
}

type Itinerary struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Path          []string  `json:"path"`
	Segments      []Segment `json:"segments"`
	TotalMinutes  int       `json:"totalMinutes"`
	TotalStations int       `json:"totalStations"`
	TransferCount int       `json:"transferCount"`
}

// Network is what the formatter needs from the station graph.
type Network interface {
	// StationName returns a display name, or the ID itself when unknown.
	StationName(id string) string
	// EdgeLines returns the lines joining a and b, nil if they are not adjacent.
	EdgeLines(a, b string) []string
}

type Options struct {
	StationMinutes  int
	TransferMinutes int
}

func DefaultOptions() Options {
	return Options{StationMinutes: DefaultStationMinutes, TransferMinutes: DefaultTransferMinutes}
}

type Option func(*Options)

// WithStationMinutes sets the minutes charged per hop. Panics if m < 0.
func WithStationMinutes(m int) Option {
	if m < 0 {
		panic("itinerary: station minutes must not be negative")
	}
	return func(o *Options) { o.StationMinutes = m }
}

// WithTransferMinutes sets the fixed minutes of a line change. Panics if m < 0.
func WithTransferMinutes(m int) Option {
	if m < 0 {
		panic("itinerary: transfer minutes must not be negative")
	}
	return func(o *Options) { o.TransferMinutes = m }
}

// Format groups consecutive hops ridden on the same line into travel legs and
// puts a transfer between legs wherever the line changes.
//
// The line of a hop is the line already being ridden when the two stations
// share it, otherwise the first line joining them. A path of zero or one
// station yields no segments and zero totals.
func Format(net Network, path []string, opts ...Option) (*Itinerary, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	it := &Itinerary{Path: slices.Clone(path), Segments: []Segment{}}
	if it.Path == nil {
		it.Path = []string{}
	}
	if len(path) > 0 {
		it.Origin, it.Destination = path[0], path[len(path)-1]
	}
	if len(path) < 2 {
		return it, nil
	}

	travel := func(from, to int, line string) Segment {
		n := to - from + 1
		return Segment{
			Kind:         KindTravel,
			From:         net.StationName(path[from]),
			To:           net.StationName(path[to]),
			Line:         line,
			Minutes:      (n - 1) * cfg.StationMinutes,
			StationCount: n,
		}
	}

	var current string
	start := 0
	for i := 0; i < len(path)-1; i++ {
		lines := net.EdgeLines(path[i], path[i+1])
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: %q-%q", ErrNotAdjacent, path[i], path[i+1])
		}
		hop := lines[0]
		if i > 0 && slices.Contains(lines, current) {
			hop = current
		}
		switch {
		case i == 0:
			current = hop
		case hop != current:
			it.Segments = append(it.Segments,
				travel(start, i, current),
				Segment{Kind: KindTransfer, FromLine: current, ToLine: hop, Minutes: cfg.TransferMinutes},
			)
			start, current = i, hop
		}
	}
	it.Segments = append(it.Segments, travel(start, len(path)-1, current))

	it.summarize()
	return it, nil
}

func (it *Itinerary) summarize() {
	it.TotalMinutes, it.TotalStations, it.TransferCount = 0, 0, 0
	for _, s := range it.Segments {
		it.TotalMinutes += s.Minutes
		switch s.Kind {
		case KindTravel:
			it.TotalStations += s.StationCount
		case KindTransfer:
			it.TransferCount++
		}
	}
	// The station where a transfer happens closes one leg and opens the next.
	it.TotalStations -= it.TransferCount
}

// Legs returns only the travel segments.
func (it *Itinerary) Legs() []Segment {
	var out []Segment
	for _, s := range it.Segments {
		if s.Kind == KindTravel {
			out = append(out, s)
		}
	}
	return out
}
