package crosssection

import (
	"fmt"
	"math"
	"sort"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

// Columns maps a channel to its tabulated cross sections, parallel to the
// energy column. Elastic may be omitted and is then derived.
type Columns map[Channel][]float64

// Table is an energy-sorted set of per-channel cross sections with linear
// interpolation inside the tabulated range and constant extrapolation outside.
type Table struct {
	sourceOps
	energy         []float64
	sigma          [NumChannels][]float64
	elasticDerived bool
}

// NewTable validates and normalizes the columns. Rows are sorted by energy;
// duplicate or non-positive energies, negative cross sections, missing
// inelastic columns and unequal lengths are DataFormatErrors.
func NewTable(gas *constants.Gas, energy []float64, columns Columns) (*Table, error) {
	if gas == nil {
		gas = constants.Argon()
	}
	n := len(energy)
	if n == 0 {
		return nil, formatError("empty energy column")
	}
	for _, c := range Channels {
		column, ok := columns[c]
		if !ok {
			if c == Elastic {
				continue
			}
			return nil, &DataFormatError{Reason: "missing column", Row: -1, Column: c.String()}
		}
		if len(column) != n {
			return nil, &DataFormatError{
				Reason: fmt.Sprintf("length %d differs from energy length %d", len(column), n),
				Row:    -1,
				Column: c.String(),
			}
		}
	}
	for i, e := range energy {
		if !(e > 0) || math.IsInf(e, 0) {
			return nil, &DataFormatError{Reason: fmt.Sprintf("energy %g is not positive", e), Row: i, Column: "energy"}
		}
	}
	for c, column := range columns {
		for i, s := range column {
			if !(s >= 0) || math.IsInf(s, 0) {
				return nil, &DataFormatError{Reason: fmt.Sprintf("cross section %g is negative", s), Row: i, Column: c.String()}
			}
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return energy[order[a]] < energy[order[b]] })

	t := &Table{energy: make([]float64, n)}
	t.sourceOps = sourceOps{at: t.CrossSectionsAt}
	for _, c := range Channels {
		if column, ok := columns[c]; ok {
			t.sigma[c] = make([]float64, n)
			for row, i := range order {
				t.sigma[c][row] = column[i]
			}
		}
	}
	for row, i := range order {
		t.energy[row] = energy[i]
		if row > 0 && t.energy[row] == t.energy[row-1] {
			return nil, &DataFormatError{Reason: fmt.Sprintf("duplicate energy %g", t.energy[row]), Row: i, Column: "energy"}
		}
	}

	if t.sigma[Elastic] == nil {
		t.elasticDerived = true
		t.sigma[Elastic] = make([]float64, n)
		for row, e := range t.energy {
			var inelastic float64
			for _, c := range Channels[1:] {
				inelastic += t.sigma[c][row]
			}
			t.sigma[Elastic][row] = DerivedElastic(gas, e, inelastic)
		}
	}
	return t, nil
}

// DerivedElastic is the empirical elastic estimate used for tables without
// an elastic column: max(sigma0*exp(-E/E_decay), 0.1*sum(inelastic)).
// It is an approximation, not a physical derivation.
func DerivedElastic(gas *constants.Gas, energy, inelastic float64) float64 {
	return math.Max(gas.ElasticBaseline*math.Exp(-energy/gas.ElasticDecay), 0.1*inelastic)
}

func (t *Table) CrossSectionsAt(energy float64) (s Sigmas) {
	last := len(t.energy) - 1
	if energy <= t.energy[0] {
		for _, c := range Channels {
			s[c] = t.sigma[c][0]
		}
		return
	}
	if energy >= t.energy[last] {
		for _, c := range Channels {
			s[c] = t.sigma[c][last]
		}
		return
	}
	right := sort.SearchFloat64s(t.energy, energy)
	if t.energy[right] == energy {
		for _, c := range Channels {
			s[c] = t.sigma[c][right]
		}
		return
	}
	left := right - 1
	w := (energy - t.energy[left]) / (t.energy[right] - t.energy[left])
	for _, c := range Channels {
		s[c] = t.sigma[c][left] + w*(t.sigma[c][right]-t.sigma[c][left])
	}
	return
}

func (t *Table) Len() int {
	return len(t.energy)
}

// Range is the tabulated energy span.
func (t *Table) Range() (lo, hi float64) {
	return t.energy[0], t.energy[len(t.energy)-1]
}

func (t *Table) Energies() []float64 {
	return append([]float64(nil), t.energy...)
}

func (t *Table) Column(c Channel) []float64 {
	return append([]float64(nil), t.sigma[c]...)
}

// ElasticDerived reports whether the elastic column was estimated.
func (t *Table) ElasticDerived() bool {
	return t.elasticDerived
}

func tabulate(src Source, gas *constants.Gas, energies []float64) (*Table, error) {
	columns := Columns{}
	for _, c := range Channels {
		columns[c] = make([]float64, len(energies))
	}
	for i, e := range energies {
		s := src.CrossSectionsAt(e)
		for _, c := range Channels {
			columns[c][i] = s[c]
		}
	}
	return NewTable(gas, energies, columns)
}

// AsTable returns src itself when it is already a Table and samples it on
// energies otherwise.
func AsTable(src Source, gas *constants.Gas, energies []float64) (*Table, error) {
	switch s := src.(type) {
	case *Table:
		return s, nil
	case *AnalyticModel:
		return s.Tabulate(energies)
	}
	return tabulate(src, gas, energies)
}
