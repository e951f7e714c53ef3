package itinerary_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metro-planner/internal/itinerary"
	"metro-planner/internal/metro"
	"metro-planner/internal/network"
)

// fakeNet is a hand-wired network: names plus the lines on each edge.
type fakeNet struct {
	names map[string]string
	edges map[[2]string][]string
}

func newFakeNet() *fakeNet {
	return &fakeNet{names: map[string]string{}, edges: map[[2]string][]string{}}
}

func (f *fakeNet) edge(a, b string, lines ...string) *fakeNet {
	f.edges[[2]string{a, b}] = lines
	f.edges[[2]string{b, a}] = lines
	return f
}

func (f *fakeNet) StationName(id string) string {
	if n, ok := f.names[id]; ok {
		return n
	}
	return id
}

func (f *fakeNet) EdgeLines(a, b string) []string { return f.edges[[2]string{a, b}] }

func lisbon(t *testing.T) *network.Graph {
	t.Helper()
	n := metro.Lisbon()
	g, err := network.Build(n.Lines, n.Stations)
	require.NoError(t, err)
	return g
}

func TestFormat_EmptyAndSelf(t *testing.T) {
	net := newFakeNet()

	for _, path := range [][]string{nil, {"A"}} {
		it, err := itinerary.Format(net, path)
		require.NoError(t, err)
		assert.Empty(t, it.Segments)
		assert.NotNil(t, it.Segments)
		assert.Zero(t, it.TotalMinutes)
		assert.Zero(t, it.TotalStations)
		assert.Zero(t, it.TransferCount)
	}
}

func TestFormat_SingleHop(t *testing.T) {
	net := newFakeNet().edge("A", "B", "L1")
	net.names["A"] = "Alpha"

	it, err := itinerary.Format(net, []string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, it.Segments, 1)
	assert.Equal(t, itinerary.Segment{
		Kind: itinerary.KindTravel, From: "Alpha", To: "B", Line: "L1", Minutes: 2, StationCount: 2,
	}, it.Segments[0])
	assert.Equal(t, 2, it.TotalStations)
	assert.Equal(t, "A", it.Origin)
	assert.Equal(t, "B", it.Destination)
}

func TestFormat_SameLineThreeHops(t *testing.T) {
	it, err := itinerary.Format(lisbon(t), []string{"RB", "AS", "AF", "PO"})
	require.NoError(t, err)

	require.Len(t, it.Segments, 1)
	leg := it.Segments[0]
	assert.Equal(t, "Reboleira", leg.From)
	assert.Equal(t, "Pontinha", leg.To)
	assert.Equal(t, "Azul", leg.Line)
	assert.Equal(t, 4, leg.StationCount)
	assert.Equal(t, 6, leg.Minutes)
	assert.Equal(t, 6, it.TotalMinutes)
	assert.Equal(t, 4, it.TotalStations)
	assert.Zero(t, it.TransferCount)
}

func TestFormat_OneTransfer(t *testing.T) {
	it, err := itinerary.Format(lisbon(t), []string{"AV", "MP", "PI"})
	require.NoError(t, err)

	assert.Equal(t, []itinerary.Segment{
		{Kind: itinerary.KindTravel, From: "Avenida", To: "Marquês de Pombal", Line: "Azul", Minutes: 2, StationCount: 2},
		{Kind: itinerary.KindTransfer, FromLine: "Azul", ToLine: "Amarela", Minutes: 4},
		{Kind: itinerary.KindTravel, From: "Marquês de Pombal", To: "Picoas", Line: "Amarela", Minutes: 2, StationCount: 2},
	}, it.Segments)
	assert.Equal(t, 8, it.TotalMinutes)
	assert.Equal(t, 3, it.TotalStations)
	assert.Equal(t, 1, it.TransferCount)
	assert.Len(t, it.Legs(), 2)
}

func TestFormat_TwoTransfers(t *testing.T) {
	net := newFakeNet().
		edge("A", "B", "L1").
		edge("B", "C", "L2").
		edge("C", "D", "L3").
		edge("D", "E", "L3")

	it, err := itinerary.Format(net, []string{"A", "B", "C", "D", "E"})
	require.NoError(t, err)

	kinds := make([]itinerary.Kind, 0, len(it.Segments))
	for _, s := range it.Segments {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []itinerary.Kind{
		itinerary.KindTravel, itinerary.KindTransfer,
		itinerary.KindTravel, itinerary.KindTransfer,
		itinerary.KindTravel,
	}, kinds)
	assert.Equal(t, 3, it.Segments[4].StationCount)
	assert.Equal(t, 2+4+2+4+4, it.TotalMinutes)
	assert.Equal(t, 5, it.TotalStations)
	assert.Equal(t, 2, it.TransferCount)
}

func TestFormat_StaysOnCurrentLineWhenShared(t *testing.T) {
	// B-C is served by both lines; riding L1 into it must not invent a change.
	net := newFakeNet().
		edge("A", "B", "L1").
		edge("B", "C", "L2", "L1")

	it, err := itinerary.Format(net, []string{"A", "B", "C"})
	require.NoError(t, err)
	require.Len(t, it.Segments, 1)
	assert.Equal(t, "L1", it.Segments[0].Line)
	assert.Equal(t, 3, it.Segments[0].StationCount)
}

func TestFormat_CustomMinutes(t *testing.T) {
	it, err := itinerary.Format(lisbon(t), []string{"AV", "MP", "PI"},
		itinerary.WithStationMinutes(3), itinerary.WithTransferMinutes(5))
	require.NoError(t, err)
	assert.Equal(t, 3+5+3, it.TotalMinutes)
}

func TestFormat_NotAdjacent(t *testing.T) {
	it, err := itinerary.Format(lisbon(t), []string{"RB", "SP"})
	assert.Nil(t, it)
	assert.True(t, errors.Is(err, itinerary.ErrNotAdjacent))
}

func TestOptions_PanicOnNegative(t *testing.T) {
	assert.Panics(t, func() { itinerary.WithStationMinutes(-1) })
	assert.Panics(t, func() { itinerary.WithTransferMinutes(-1) })
}
