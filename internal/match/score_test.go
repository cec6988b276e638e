package match

import (
	"math"
	"testing"

	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
)

func refRow(mean, sd, low, high float64) refdata.Row {
	return refdata.Row{
		Instrument: "Acme Analyzer 3000",
		Sample:     1,
		Group:      "Peer Group",
		Labs:       10,
		Mean:       mean,
		SD:         sd,
		Low:        low,
		High:       high,
	}
}

func TestScoreSymmetricAroundMean(t *testing.T) {
	row := refRow(100, 10, 80, 120)
	for _, d := range []float64{0.25, 1, 7.5, 40} {
		up := Score(row.Mean+d, row, ZScore)
		down := Score(row.Mean-d, row, ZScore)
		if up.Z != down.Z {
			t.Fatalf("d=%g: z not symmetric: +d=%g -d=%g", d, up.Z, down.Z)
		}
	}
}

func TestScoreZeroAtMean(t *testing.T) {
	for _, row := range []refdata.Row{
		refRow(100, 10, 80, 120),
		refRow(5.02, 0.4, 4.2, 5.8),
		refRow(50, 0, 50, 50),
	} {
		if got := Score(row.Mean, row, ZScore); got.Z != 0 {
			t.Fatalf("mean=%g sd=%g: z=%g, want 0", row.Mean, row.SD, got.Z)
		}
	}
}

func TestScoreZeroSD(t *testing.T) {
	row := refRow(50, 0, 45, 55)
	if got := Score(50, row, ZScore); got.Z != 0 {
		t.Fatalf("exact match: z=%g, want 0", got.Z)
	}
	got := Score(51, row, ZScore)
	if !math.IsInf(got.Z, 1) {
		t.Fatalf("sd=0 mismatch: z=%g, want +Inf", got.Z)
	}
	// the mismatching value is still inside the published range
	if !got.InRange {
		t.Fatalf("value 51 should be in range [45, 55]")
	}
}

func TestScoreInRangeIndependentOfZ(t *testing.T) {
	row := refRow(100, 1, 90, 110)
	// far from the mean in z terms but inside the range
	if got := Score(109, row, ZScore); !got.InRange || got.Z != 9 {
		t.Fatalf("got %+v, want in-range with z=9", got)
	}
	// close in z terms but outside the range
	narrow := refRow(100, 50, 99, 101)
	if got := Score(110, narrow, ZScore); got.InRange || got.Z != 0.2 {
		t.Fatalf("got %+v, want out-of-range with z=0.2", got)
	}
}

func TestPercentDeviation(t *testing.T) {
	row := refRow(200, 10, 150, 250)
	if z := PercentDeviation(220, row); math.Abs(z-0.1) > 1e-12 {
		t.Fatalf("z=%g, want 0.1", z)
	}
	zero := refRow(0, 1, -1, 1)
	if z := PercentDeviation(0, zero); z != 0 {
		t.Fatalf("zero mean exact match: z=%g, want 0", z)
	}
	if z := PercentDeviation(1, zero); !math.IsInf(z, 1) {
		t.Fatalf("zero mean mismatch: z=%g, want +Inf", z)
	}
}

func TestAbsoluteDeviation(t *testing.T) {
	row := refRow(10, 2, 5, 15)
	if z := AbsoluteDeviation(7.5, row); z != 2.5 {
		t.Fatalf("z=%g, want 2.5", z)
	}
}

func TestMetricByName(t *testing.T) {
	for _, name := range []string{"", "zscore", "Z", "percent", "abs", "Absolute"} {
		if _, err := MetricByName(name); err != nil {
			t.Fatalf("metric %q: %v", name, err)
		}
	}
	if _, err := MetricByName("chebyshev"); err == nil {
		t.Fatalf("expected error for unknown metric")
	}
}
