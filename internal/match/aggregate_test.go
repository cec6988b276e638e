package match

import (
	"math"
	"strings"
	"testing"

	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
	"github.com/nataliekozlowskii/lab-data-processing/internal/sampledata"
)

func mustCatalog(t *testing.T, rows ...refdata.Row) *refdata.Catalog {
	t.Helper()
	cat, err := refdata.NewCatalog(rows)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func peerRow(instrument string, sample, labs int, mean, sd, low, high float64) refdata.Row {
	return refdata.Row{
		Instrument: instrument,
		Sample:     sample,
		Group:      "Peer Group",
		Labs:       labs,
		Mean:       mean,
		SD:         sd,
		Low:        low,
		High:       high,
	}
}

func TestAggregateComposite(t *testing.T) {
	cat := mustCatalog(t,
		peerRow("Acme", 1, 30, 100, 10, 80, 120),
		peerRow("Acme", 2, 30, 200, 20, 160, 240),
	)
	series := sampledata.New([]float64{110, 220})
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	gs, ok, warns := Aggregate(cand, series, cat, DefaultOptions())
	if !ok {
		t.Fatalf("expected an aggregated score")
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if gs.Composite != 1.0 {
		t.Fatalf("composite=%g, want 1.0", gs.Composite)
	}
	if gs.Median != 1.0 {
		t.Fatalf("median=%g, want 1.0", gs.Median)
	}
	if gs.SamplesUsed != 2 {
		t.Fatalf("samplesUsed=%d, want 2", gs.SamplesUsed)
	}
	if gs.InRange != 2 {
		t.Fatalf("inRange=%d, want 2", gs.InRange)
	}
	if want := math.Sqrt(10*10 + 20*20); math.Abs(gs.Euclidean-want) > 1e-12 {
		t.Fatalf("euclidean=%g, want %g", gs.Euclidean, want)
	}
}

func TestAggregateSkipsMissingPairs(t *testing.T) {
	cat := mustCatalog(t,
		peerRow("Acme", 1, 30, 100, 10, 80, 120),
		peerRow("Acme", 3, 30, 300, 30, 240, 360),
	)
	// sample 2 has a value but no reference row; sample 3 is missing
	series, err := sampledata.Parse(strings.NewReader("105\n5\nNA\n"))
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	gs, ok, _ := Aggregate(cand, series, cat, DefaultOptions())
	if !ok {
		t.Fatalf("expected an aggregated score")
	}
	if gs.SamplesUsed != 1 {
		t.Fatalf("samplesUsed=%d, want 1 (only sample 1 overlaps)", gs.SamplesUsed)
	}
	if gs.Composite != 0.5 {
		t.Fatalf("composite=%g, want 0.5", gs.Composite)
	}
}

func TestAggregateNoOverlap(t *testing.T) {
	cat := mustCatalog(t, peerRow("Acme", 5, 30, 100, 10, 80, 120))
	series := sampledata.New([]float64{1, 2, 3})
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	if _, ok, _ := Aggregate(cand, series, cat, DefaultOptions()); ok {
		t.Fatalf("candidate with zero overlap must be excluded, not scored")
	}
}

func TestAggregatePenaltyKeepsGroupRankable(t *testing.T) {
	cat := mustCatalog(t,
		peerRow("Acme", 1, 30, 50, 0, 50, 50),
		peerRow("Acme", 2, 30, 100, 10, 80, 120),
	)
	series := sampledata.New([]float64{51, 105})
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	gs, ok, _ := Aggregate(cand, series, cat, DefaultOptions())
	if !ok {
		t.Fatalf("penalized group must stay rankable")
	}
	if math.IsInf(gs.Composite, 0) || math.IsNaN(gs.Composite) {
		t.Fatalf("composite=%g, want finite", gs.Composite)
	}
	if want := (InfinitePenalty + 0.5) / 2; gs.Composite != want {
		t.Fatalf("composite=%g, want %g", gs.Composite, want)
	}
}

func TestAggregateLabsPolicy(t *testing.T) {
	cat := mustCatalog(t,
		peerRow("Acme", 1, 20, 100, 10, 80, 120),
		peerRow("Acme", 2, 40, 200, 20, 160, 240),
	)
	series := sampledata.New([]float64{100, 200})
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	gs, ok, warns := Aggregate(cand, series, cat, DefaultOptions())
	if !ok {
		t.Fatalf("expected an aggregated score")
	}
	if gs.Labs != 20 {
		t.Fatalf("labs=%d, want 20 (lowest sample number wins)", gs.Labs)
	}
	if len(warns) != 1 || !strings.Contains(warns[0], "lab count varies") {
		t.Fatalf("expected one lab-count warning, got %v", warns)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := []refdata.Row{
		peerRow("Acme", 1, 30, 100, 10, 80, 120),
		peerRow("Acme", 2, 30, 200, 20, 160, 240),
		peerRow("Acme", 3, 30, 300, 30, 240, 360),
	}
	reversed := []refdata.Row{forward[2], forward[1], forward[0]}

	series := sampledata.New([]float64{103, 191, 342})
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	a, okA, _ := Aggregate(cand, series, mustCatalog(t, forward...), DefaultOptions())
	b, okB, _ := Aggregate(cand, series, mustCatalog(t, reversed...), DefaultOptions())
	if !okA || !okB {
		t.Fatalf("both aggregations should succeed")
	}
	if a != b {
		t.Fatalf("aggregation depends on row order: %+v vs %+v", a, b)
	}
}

func TestAggregateWithinPercent(t *testing.T) {
	cat := mustCatalog(t,
		peerRow("Acme", 1, 30, 100, 10, 80, 120),
		peerRow("Acme", 2, 30, 100, 10, 80, 120),
	)
	// 25% off and 35% off the mean
	series := sampledata.New([]float64{125, 135})
	cand := refdata.Candidate{Instrument: "Acme", Group: "Peer Group"}

	opt := DefaultOptions() // 30% window
	gs, _, _ := Aggregate(cand, series, cat, opt)
	if gs.WithinPercent != 1 {
		t.Fatalf("withinPercent=%d, want 1", gs.WithinPercent)
	}

	opt.WithinPercent = 40
	gs, _, _ = Aggregate(cand, series, cat, opt)
	if gs.WithinPercent != 2 {
		t.Fatalf("withinPercent=%d with 40%% window, want 2", gs.WithinPercent)
	}
}
