package planner_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metro-planner/internal/itinerary"
	"metro-planner/internal/metro"
	"metro-planner/internal/network"
	"metro-planner/internal/planner"
)

type recorder struct {
	mu      sync.Mutex
	results []string
}

func (r *recorder) ObservePlan(result string, _ time.Duration, _ *itinerary.Itinerary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func newPlanner(t *testing.T, opts ...planner.Option) *planner.Planner {
	t.Helper()
	n := metro.Lisbon()
	g, err := network.Build(n.Lines, n.Stations)
	require.NoError(t, err)
	return planner.New(g, opts...)
}

func TestPlan_SameLine(t *testing.T) {
	p := newPlanner(t)

	it, err := p.Plan("RB", "PO")
	require.NoError(t, err)
	require.Len(t, it.Segments, 1)
	assert.Equal(t, 4, it.Segments[0].StationCount)
	assert.Equal(t, 6, it.Segments[0].Minutes)
	assert.Zero(t, it.TransferCount)
}

func TestPlan_OneTransfer(t *testing.T) {
	p := newPlanner(t)

	it, err := p.Plan("AV", "PI")
	require.NoError(t, err)
	require.Len(t, it.Segments, 3)
	assert.Equal(t, itinerary.KindTransfer, it.Segments[1].Kind)
	assert.Equal(t, "Azul", it.Segments[1].FromLine)
	assert.Equal(t, "Amarela", it.Segments[1].ToLine)
	assert.Equal(t, 1, it.TransferCount)
	assert.Equal(t, 2+4+2, it.TotalMinutes)
}

func TestPlan_UnknownStation(t *testing.T) {
	rec := &recorder{}
	p := newPlanner(t, planner.WithMetrics(rec))

	it, err := p.Plan("XX", "SA")
	assert.Nil(t, it)
	assert.True(t, errors.Is(err, network.ErrUnknownStation))

	_, err = p.Plan("SA", "")
	assert.True(t, errors.Is(err, network.ErrUnknownStation))

	assert.Equal(t, []string{planner.ResultUnknownStation, planner.ResultUnknownStation}, rec.results)
}

func TestPlan_FullLineTerminalToTerminal(t *testing.T) {
	p := newPlanner(t)
	azul := p.Graph().StationsByLine("Azul")

	it, err := p.Plan(azul[0], azul[len(azul)-1])
	require.NoError(t, err)
	assert.Len(t, it.Path, len(azul))
	require.Len(t, it.Segments, 1)
	assert.Equal(t, len(azul), it.TotalStations)
	assert.Equal(t, (len(azul)-1)*itinerary.DefaultStationMinutes, it.TotalMinutes)
}

func TestPlan_SelfPath(t *testing.T) {
	p := newPlanner(t)

	for _, n := range p.Graph().Nodes() {
		it, err := p.Plan(n.ID, n.ID)
		require.NoError(t, err)
		assert.Empty(t, it.Segments)
		assert.Zero(t, it.TotalMinutes)
		assert.Zero(t, it.TotalStations)
		assert.Zero(t, it.TransferCount)
	}
}

func TestPlan_AllPairsInvariants(t *testing.T) {
	p := newPlanner(t)
	g := p.Graph()
	nodes := g.Nodes()

	for _, from := range nodes {
		for _, to := range nodes {
			it, err := p.Plan(from.ID, to.ID)
			require.NoError(t, err, "%s -> %s", from.ID, to.ID)

			for i := 1; i < len(it.Path); i++ {
				assert.True(t, g.AreAdjacent(it.Path[i-1], it.Path[i]))
			}

			minutes, transfers := 0, 0
			for i, s := range it.Segments {
				minutes += s.Minutes
				if s.Kind != itinerary.KindTransfer {
					continue
				}
				transfers++
				assert.NotZero(t, i, "%s -> %s starts with a transfer", from.ID, to.ID)
				assert.NotEqual(t, len(it.Segments)-1, i, "%s -> %s ends with a transfer", from.ID, to.ID)
				if i > 0 {
					assert.Equal(t, itinerary.KindTravel, it.Segments[i-1].Kind)
				}
				assert.Zero(t, s.StationCount)
			}
			assert.Equal(t, minutes, it.TotalMinutes)
			assert.Equal(t, transfers, it.TransferCount)
			if from.ID != to.ID {
				assert.Equal(t, len(it.Path), it.TotalStations)
			}
		}
	}
}

// asymmetricPairs lists the unordered pairs (lower ID first) whose trip
// differs by direction: which equal-cost predecessor is recorded first, and
// so which lines stay common, depends on where the search starts.
var asymmetricPairs = map[string]bool{}

func init() {
	for _, k := range []string{
		"AE-AV", "AE-CU", "AE-EC", "AE-RE", "AE-SP", "AE-TP", "AF-CS", "AF-IN", "AF-MM", "AF-PI",
		"AF-RA", "AF-RO", "AF-TE", "AH-CS", "AH-IN", "AH-MM", "AH-PI", "AH-RA", "AH-RO", "AH-TE",
		"AL-AV", "AL-CP", "AL-MP", "AL-PI", "AL-RA", "AL-RE", "AL-SA", "AL-SP", "AL-TP", "AM-AV",
		"AM-AX", "AM-CU", "AM-LU", "AM-OD", "AM-QC", "AM-RE", "AM-SP", "AM-SR", "AM-TP", "AN-AX",
		"AN-CU", "AN-LU", "AN-OD", "AN-QC", "AN-SR", "AP-AV", "AP-AX", "AP-BC", "AP-CS", "AP-LU",
		"AP-OD", "AP-QC", "AP-RE", "AP-SP", "AP-SR", "AP-TP", "AR-AV", "AR-AX", "AR-CU", "AR-LU",
		"AR-OD", "AR-QC", "AR-RE", "AR-SP", "AR-SR", "AR-TP", "AS-CS", "AS-IN", "AS-MM", "AS-PI",
		"AS-RA", "AS-RO", "AS-TE", "AV-AX", "AV-BV", "AV-CG", "AV-CH", "AV-CP", "AV-CR", "AV-CU",
		"AV-EC", "AV-EN", "AV-LU", "AV-MO", "AV-OD", "AV-OL", "AV-OR", "AV-OS", "AV-QC", "AV-RM",
		"AV-SA", "AV-SR", "AX-BC", "AX-BV", "AX-CH", "AX-CR", "AX-CS", "AX-EN", "AX-IN", "AX-MM",
		"AX-MO", "AX-OL", "AX-OR", "AX-OS", "AX-PA", "AX-RE", "AX-RO", "AX-SP", "AX-TP", "BC-BV",
		"BC-CH", "BC-CP", "BC-CR", "BC-CU", "BC-EC", "BC-EN", "BC-LU", "BC-MO", "BC-OD", "BC-OL",
		"BC-OR", "BC-OS", "BC-QC", "BC-SA", "BC-SR", "BV-CS", "BV-LU", "BV-OD", "BV-QC", "BV-RE",
		"BV-SP", "BV-SR", "BV-TP", "CA-CS", "CA-IN", "CA-MM", "CA-PI", "CA-RA", "CA-RO", "CA-TE",
		"CG-PA", "CG-RE", "CG-SP", "CG-TP", "CH-CS", "CH-LU", "CH-OD", "CH-QC", "CH-RE", "CH-SP",
		"CH-SR", "CH-TP", "CM-CS", "CM-IN", "CM-MM", "CM-PI", "CM-RA", "CM-RO", "CM-TE", "CP-CS",
		"CP-PA", "CP-RE", "CP-RM", "CP-SP", "CP-TP", "CR-CS", "CR-LU", "CR-OD", "CR-QC", "CR-RE",
		"CR-SP", "CR-SR", "CR-TP", "CS-CU", "CS-EC", "CS-EN", "CS-JZ", "CS-LA", "CS-LU", "CS-MO",
		"CS-OD", "CS-OL", "CS-OR", "CS-OS", "CS-PE", "CS-PO", "CS-QC", "CS-RB", "CS-SA", "CS-SR",
		"CS-SS", "CU-IN", "CU-MM", "CU-PA", "CU-RE", "CU-RO", "CU-SP", "CU-TP", "EC-PA", "EC-RE",
		"EC-SP", "EC-TP", "EN-LU", "EN-OD", "EN-QC", "EN-RE", "EN-SP", "EN-SR", "EN-TP", "IN-JZ",
		"IN-LA", "IN-LU", "IN-MP", "IN-OD", "IN-PA", "IN-PE", "IN-PO", "IN-QC", "IN-RB", "IN-SR",
		"JZ-MM", "JZ-PI", "JZ-RA", "JZ-RO", "JZ-TE", "LA-MM", "LA-PI", "LA-RA", "LA-RO", "LA-TE",
		"LU-MM", "LU-MO", "LU-OL", "LU-OR", "LU-OS", "LU-PA", "LU-RE", "LU-RO", "LU-SP", "LU-TP",
		"MM-OD", "MM-PA", "MM-PE", "MM-PO", "MM-QC", "MM-RB", "MM-SR", "MM-SS", "MO-OD", "MO-QC",
		"MO-RE", "MO-SP", "MO-SR", "MO-TP", "MP-TE", "OD-OL", "OD-OR", "OD-OS", "OD-PA", "OD-RE",
		"OD-RO", "OD-SP", "OD-TP", "OL-QC", "OL-RE", "OL-SP", "OL-SR", "OL-TP", "OR-QC", "OR-RE",
		"OR-SP", "OR-SR", "OR-TP", "OS-QC", "OS-RE", "OS-SP", "OS-SR", "OS-TP", "PA-QC", "PA-SR",
		"PA-TE", "PE-PI", "PE-RA", "PE-RO", "PE-TE", "PI-PO", "PI-RB", "PI-RO", "PI-TE", "PO-RA",
		"PO-RO", "PO-TE", "QC-RE", "QC-RO", "QC-SP", "QC-TP", "RA-RB", "RA-SS", "RA-TE", "RB-RO",
		"RB-TE", "RE-RM", "RE-SA", "RE-SR", "RE-TE", "RM-SP", "RM-TP", "RO-SA", "RO-SR", "RO-SS",
		"SA-SP", "SA-TE", "SA-TP", "SP-SR", "SP-TE", "SR-TP", "SS-TE", "TE-TP",
	} {
		asymmetricPairs[k] = true
	}
}

func TestPlan_Symmetry(t *testing.T) {
	p := newPlanner(t)
	ids := make([]string, 0, p.Graph().Len())
	for _, n := range p.Graph().Nodes() {
		ids = append(ids, n.ID)
	}
	slices.Sort(ids)

	asymmetric := 0
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			there, err := p.Plan(a, b)
			require.NoError(t, err)
			back, err := p.Plan(b, a)
			require.NoError(t, err)

			fwd := [3]int{there.TotalMinutes, there.TotalStations, there.TransferCount}
			rev := [3]int{back.TotalMinutes, back.TotalStations, back.TransferCount}
			if asymmetricPairs[a+"-"+b] {
				asymmetric++
				assert.NotEqual(t, fwd, rev, "%s-%s is listed as asymmetric", a, b)
				continue
			}
			assert.Equal(t, fwd, rev, "%s-%s", a, b)
		}
	}
	assert.Equal(t, len(asymmetricPairs), asymmetric)
}

func TestPlan_SymmetryHandPicked(t *testing.T) {
	p := newPlanner(t)

	tests := []struct {
		from, to                     string
		minutes, stations, transfers int
	}{
		{"RB", "SP", 34, 18, 0},
		{"AV", "PI", 8, 3, 1},
		{"TE", "CS", 24, 13, 0},
		{"OD", "RA", 24, 13, 0},
		{"AP", "SS", 22, 12, 0},
		{"RB", "OD", 48, 21, 2},
	}
	for _, tt := range tests {
		for _, dir := range [][2]string{{tt.from, tt.to}, {tt.to, tt.from}} {
			it, err := p.Plan(dir[0], dir[1])
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, it.TotalMinutes, "%v", dir)
			assert.Equal(t, tt.stations, it.TotalStations, "%v", dir)
			assert.Equal(t, tt.transfers, it.TransferCount, "%v", dir)
		}
	}

	// A known direction-dependent pair.
	there, err := p.Plan("OD", "CS")
	require.NoError(t, err)
	back, err := p.Plan("CS", "OD")
	require.NoError(t, err)
	assert.Equal(t, [3]int{38, 16, 2}, [3]int{there.TotalMinutes, there.TotalStations, there.TransferCount})
	assert.Equal(t, [3]int{36, 17, 1}, [3]int{back.TotalMinutes, back.TotalStations, back.TransferCount})
}

func TestPlan_Options(t *testing.T) {
	p := newPlanner(t, planner.WithMinutes(3, 5))

	it, err := p.Plan("AV", "PI")
	require.NoError(t, err)
	assert.Equal(t, 3+5+3, it.TotalMinutes)
}

func TestPlan_NoPathFound(t *testing.T) {
	g, err := network.Build(
		[]metro.Line{
			{Name: "L1", Stations: []string{"A", "B"}},
			{Name: "L2", Stations: []string{"C", "D"}},
		},
		[]metro.Station{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
	)
	require.NoError(t, err)
	rec := &recorder{}
	p := planner.New(g, planner.WithMetrics(rec))

	it, err := p.Plan("A", "D")
	assert.Nil(t, it)
	assert.True(t, errors.Is(err, network.ErrNoPathFound))
	assert.Equal(t, []string{planner.ResultNoPath}, rec.results)

	n, err := planner.VerifyConnectivity(context.Background(), p, 2)
	assert.True(t, errors.Is(err, network.ErrNoPathFound))
	assert.Less(t, n, 16)
}

func TestResult(t *testing.T) {
	assert.Equal(t, planner.ResultOK, planner.Result(nil))
	assert.Equal(t, planner.ResultError, planner.Result(errors.New("boom")))
}

func TestVerifyConnectivity(t *testing.T) {
	rec := &recorder{}
	p := newPlanner(t, planner.WithMetrics(rec))

	n, err := planner.VerifyConnectivity(context.Background(), p, 4)
	require.NoError(t, err)
	assert.Equal(t, 50*50, n)
	assert.Len(t, rec.results, 50*50)
}

func TestPlan_NilGraph(t *testing.T) {
	rec := &recorder{}
	p := planner.New(nil, planner.WithMetrics(rec))

	it, err := p.Plan("AV", "PI")
	assert.Nil(t, it)
	assert.ErrorIs(t, err, network.ErrInvalidNetwork)
	assert.Equal(t, []string{planner.ResultError}, rec.results)

	n, err := planner.VerifyConnectivity(context.Background(), p, 1)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, network.ErrInvalidNetwork)
}

func TestVerifyConnectivity_Cancelled(t *testing.T) {
	p := newPlanner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := planner.VerifyConnectivity(ctx, p, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_SetGraph(t *testing.T) {
	p := newPlanner(t)
	g, err := network.Build(
		[]metro.Line{{Name: "L1", Stations: []string{"A", "B", "C"}}},
		[]metro.Station{{ID: "A", Name: "Alpha"}, {ID: "B"}, {ID: "C", Name: "Gamma"}},
	)
	require.NoError(t, err)

	p.SetGraph(g)
	assert.Same(t, g, p.Graph())

	_, err = p.Plan("AV", "PI")
	assert.ErrorIs(t, err, network.ErrUnknownStation)

	it, err := p.Plan("A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, it.Path)
	assert.Equal(t, "Alpha", it.Segments[0].From)
	assert.Equal(t, "Gamma", it.Segments[0].To)
}
