package crosssection

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/argonmc/internal/utils"
)

type ChannelSummary struct {
	Channel    Channel
	Max        float64
	Average    float64
	PeakEnergy float64
	// Onset is the lowest energy with a nonzero cross section, NaN if none.
	Onset float64
}

type TableSummary struct {
	Points         int
	MinEnergy      float64
	MaxEnergy      float64
	ElasticDerived bool
	Channels       [NumChannels]ChannelSummary
}

const searchEps = 1e-6

// Summary reports the tabulated range and per-channel extremes.
func (t *Table) Summary() TableSummary {
	s := TableSummary{Points: t.Len(), ElasticDerived: t.elasticDerived}
	s.MinEnergy, s.MaxEnergy = t.Range()
	for _, c := range Channels {
		column := t.sigma[c]
		onset, ok := Onset(t, c, s.MinEnergy, s.MaxEnergy)
		if !ok {
			onset = math.NaN()
		}
		s.Channels[c] = ChannelSummary{
			Channel:    c,
			Max:        floats.Max(column),
			Average:    utils.Average(column),
			PeakEnergy: t.energy[utils.Argmax(column)],
			Onset:      onset,
		}
	}
	return s
}

// Peak locates the maximum of a unimodal channel on [lo, hi] by ternary
// search in log-energy.
func Peak(src Source, c Channel, lo, hi float64) float64 {
	f := func(x float64) float64 { return src.CrossSectionsAt(math.Exp(x))[c] }
	return math.Exp(utils.TernarySearchMax(f, math.Log(lo), math.Log(hi), searchEps))
}

// Onset bisects for the lowest energy in [lo, hi] where the channel turns on.
func Onset(src Source, c Channel, lo, hi float64) (float64, bool) {
	on := func(e float64) bool { return src.CrossSectionsAt(e)[c] > 0 }
	if !on(hi) {
		return 0, false
	}
	if on(lo) {
		return lo, true
	}
	_, at := utils.BinarySearch(on, lo, hi, searchEps)
	return at, true
}

type IonizationRatio struct {
	Energy float64
	Table  float64
	BEB    float64
	Ratio  float64
}

// CompareIonization evaluates BEB against the tabulated ionization on the
// grid. Points where the table is zero are skipped.
func CompareIonization(t *Table, m *AnalyticModel, grid []float64) []IonizationRatio {
	var out []IonizationRatio
	for _, e := range grid {
		tab := t.CrossSectionsAt(e)[Ionization]
		if tab == 0 {
			continue
		}
		beb := m.Ionization(e)
		out = append(out, IonizationRatio{Energy: e, Table: tab, BEB: beb, Ratio: beb / tab})
	}
	return out
}
