package crosssection

import (
	"math"
	"testing"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

func TestSampleTable(t *testing.T) {
	gas := constants.Argon()
	table := SampleTable(gas)
	if table.Len() != 100 {
		t.Fatalf("expected 100 points, got %d", table.Len())
	}
	lo, hi := table.Range()
	if math.Abs(lo-0.1) > 1e-12 || math.Abs(hi-1000) > 1e-9 {
		t.Fatalf("expected range [0.1, 1000], got [%g, %g]", lo, hi)
	}
	if s := table.CrossSectionsAt(15)[Ionization]; s != 0 {
		t.Fatalf("expected no ionization at 15 eV, got %g", s)
	}
}

func TestSummary(t *testing.T) {
	s := SampleTable(nil).Summary()
	if s.Points != 100 || !s.ElasticDerived {
		t.Fatalf("unexpected summary header %+v", s)
	}
	iz := s.Channels[Ionization]
	if iz.PeakEnergy < 38 || iz.PeakEnergy > 48 {
		t.Fatalf("expected ionization peak near 42.8 eV, got %g", iz.PeakEnergy)
	}
	if iz.Onset < 15 || iz.Onset > 18 {
		t.Fatalf("expected ionization onset near 15.76 eV, got %g", iz.Onset)
	}
	if !(iz.Max > iz.Average) {
		t.Fatalf("expected max above average, got %g <= %g", iz.Max, iz.Average)
	}

	empty, err := NewTable(nil, []float64{1, 2}, zeroColumns(2))
	if err != nil {
		t.Fatal(err)
	}
	if onset := empty.Summary().Channels[Ionization].Onset; !math.IsNaN(onset) {
		t.Fatalf("expected NaN onset for an empty channel, got %g", onset)
	}
}

func TestPeakAndOnset(t *testing.T) {
	table := SampleTable(nil)
	if p := Peak(table, Ionization, 16, 1000); p < 38 || p > 48 {
		t.Fatalf("expected peak near 42.8 eV, got %g", p)
	}
	gas := constants.Argon()
	onset, ok := Onset(NewAnalyticModel(gas), Ionization, 1, 100)
	if !ok || math.Abs(onset-gas.IonizationThreshold) > 1e-4 {
		t.Fatalf("expected onset at %g, got %g (%v)", gas.IonizationThreshold, onset, ok)
	}
}

func TestCompareIonization(t *testing.T) {
	table := twoPointTable(t)
	ratios := CompareIonization(table, NewAnalyticModel(nil), []float64{1, 50, 100})
	if len(ratios) != 2 {
		t.Fatalf("expected zero-table point skipped, got %d ratios", len(ratios))
	}
	for _, r := range ratios {
		if math.IsNaN(r.Ratio) || math.IsInf(r.Ratio, 0) {
			t.Fatalf("expected finite ratio, got %g", r.Ratio)
		}
	}
}
