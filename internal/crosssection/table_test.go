package crosssection

import (
	"errors"
	"math"
	"testing"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

func zeroColumns(n int) Columns {
	columns := Columns{}
	for _, c := range Channels {
		columns[c] = make([]float64, n)
	}
	return columns
}

func twoPointTable(t *testing.T) *Table {
	t.Helper()
	columns := zeroColumns(2)
	columns[Ionization][1] = 1e-20
	table, err := NewTable(nil, []float64{1, 100}, columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return table
}

func TestInterpolationMidpoint(t *testing.T) {
	table := twoPointTable(t)
	got := table.CrossSectionsAt(50)[Ionization]
	want := 1e-20 * 49. / 99.
	if math.Abs(got-want) > 1e-30 {
		t.Fatalf("expected %g, got %g", want, got)
	}
	if math.Abs(got-5e-21) > 0.02*5e-21 {
		t.Fatalf("expected roughly 5e-21, got %g", got)
	}
}

func TestConstantExtrapolation(t *testing.T) {
	table := twoPointTable(t)
	if got := table.CrossSectionsAt(0.01)[Ionization]; got != 0 {
		t.Fatalf("expected first sample below range, got %g", got)
	}
	if got := table.CrossSectionsAt(1e4)[Ionization]; got != 1e-20 {
		t.Fatalf("expected last sample above range, got %g", got)
	}
	if got := table.CrossSectionsAt(100)[Ionization]; got != 1e-20 {
		t.Fatalf("expected exact sample at 100 eV, got %g", got)
	}
}

func TestCrossSectionsAtIsIdempotent(t *testing.T) {
	table := SampleTable(nil)
	first := table.CrossSectionsAt(37.3)
	for i := 0; i < 10; i++ {
		if got := table.CrossSectionsAt(37.3); got != first {
			t.Fatalf("expected %v, got %v", first, got)
		}
	}
}

func TestMeanFreePathOfEmptyTable(t *testing.T) {
	table, err := NewTable(nil, []float64{1, 10}, zeroColumns(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mfp := table.MeanFreePath(5, 3.22e22); !math.IsInf(mfp, 1) {
		t.Fatalf("expected +Inf, got %g", mfp)
	}
	if nu := table.CollisionFrequency(5, 3.22e22); nu != 0 {
		t.Fatalf("expected zero frequency, got %g", nu)
	}
	if c := table.SelectChannel(5, 0.3); c != Elastic {
		t.Fatalf("expected elastic fallback, got %v", c)
	}
}

func TestMeanFreePathOfTable(t *testing.T) {
	table := twoPointTable(t)
	const n = 1e22
	if mfp := table.MeanFreePath(100, n); math.Abs(mfp-1/(n*1e-20)) > 1e-12 {
		t.Fatalf("expected %g, got %g", 1/(n*1e-20), mfp)
	}
	if mfp := table.MeanFreePath(100, 0); !math.IsInf(mfp, 1) {
		t.Fatalf("expected +Inf for zero density, got %g", mfp)
	}
}

func TestSelect(t *testing.T) {
	s := Sigmas{ExcitationLow1: 1, ExcitationHigh: 2}
	if c := s.Select(0); c != ExcitationLow1 {
		t.Fatalf("expected first nonzero channel, got %v", c)
	}
	if c := s.Select(math.Nextafter(1, 0)); c != ExcitationHigh {
		t.Fatalf("expected last nonzero channel, got %v", c)
	}
	if c := s.Select(0.4); c != ExcitationHigh {
		t.Fatalf("expected excitation_high at 0.4, got %v", c)
	}
	if c := s.Select(0.3); c != ExcitationLow1 {
		t.Fatalf("expected excitation_low_1 at 0.3, got %v", c)
	}
	if c := (Sigmas{}).Select(0.5); c != Elastic {
		t.Fatalf("expected elastic for empty set, got %v", c)
	}
}

func TestDerivedElastic(t *testing.T) {
	columns := zeroColumns(2)
	delete(columns, Elastic)
	columns[Ionization][1] = 1e-17
	table, err := NewTable(nil, []float64{1, 100}, columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.ElasticDerived() {
		t.Fatal("expected derived elastic")
	}
	el := table.Column(Elastic)
	if want := 1e-19 * math.Exp(-1./100.); math.Abs(el[0]-want) > 1e-30 {
		t.Fatalf("expected baseline %g, got %g", want, el[0])
	}
	if want := 1e-18; math.Abs(el[1]-want) > 1e-30 {
		t.Fatalf("expected 10%% of inelastic %g, got %g", want, el[1])
	}
}

func TestRowsAreSorted(t *testing.T) {
	columns := zeroColumns(3)
	columns[Ionization] = []float64{3, 1, 2}
	table, err := NewTable(nil, []float64{30, 10, 20}, columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	energies := table.Energies()
	iz := table.Column(Ionization)
	for i, want := range []float64{10, 20, 30} {
		if energies[i] != want || iz[i] != want/10 {
			t.Fatalf("expected row %d = (%g, %g), got (%g, %g)", i, want, want/10, energies[i], iz[i])
		}
	}
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		energy  []float64
		columns func() Columns
	}{
		{"empty", nil, func() Columns { return zeroColumns(0) }},
		{"unequal lengths", []float64{1, 2}, func() Columns {
			c := zeroColumns(2)
			c[ExcitationLow2] = []float64{0}
			return c
		}},
		{"non-positive energy", []float64{0, 2}, func() Columns { return zeroColumns(2) }},
		{"negative sigma", []float64{1, 2}, func() Columns {
			c := zeroColumns(2)
			c[Ionization][0] = -1e-20
			return c
		}},
		{"missing inelastic column", []float64{1, 2}, func() Columns {
			c := zeroColumns(2)
			delete(c, ExcitationHigh)
			return c
		}},
		{"duplicate energy", []float64{2, 2}, func() Columns { return zeroColumns(2) }},
		{"nan sigma", []float64{1, 2}, func() Columns {
			c := zeroColumns(2)
			c[Elastic][1] = math.NaN()
			return c
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(constants.Argon(), tc.energy, tc.columns())
			if !errors.Is(err, ErrDataFormat) {
				t.Fatalf("expected ErrDataFormat, got %v", err)
			}
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("expected *DataFormatError, got %T", err)
			}
		})
	}
}
