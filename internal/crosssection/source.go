package crosssection

import (
	"github.com/wildstyl3r/argonmc/internal/kinetics"
)

// Sigmas holds one cross section [m^2] per channel.
type Sigmas [NumChannels]float64

// Total sums every channel.
func (s Sigmas) Total() (total float64) {
	for _, c := range Channels {
		total += s[c]
	}
	return
}

// Select walks the cumulative sums in enumeration order and returns the
// first channel whose running sum exceeds u*total. Elastic is returned
// when every channel is zero.
func (s Sigmas) Select(u float64) Channel {
	total := s.Total()
	if total == 0 {
		return Elastic
	}
	choice := u * total
	var accum float64
	last := Elastic
	for _, c := range Channels {
		if s[c] == 0 {
			continue
		}
		accum += s[c]
		last = c
		if choice < accum {
			return c
		}
	}
	return last
}

// Source is anything that yields per-channel cross sections at an energy:
// a tabulated Table or the closed-form AnalyticModel.
type Source interface {
	CrossSectionsAt(energy float64) Sigmas
	TotalCrossSectionAt(energy float64) float64
	MeanFreePath(energy, gasDensity float64) float64
	CollisionFrequency(energy, gasDensity float64) float64
	SelectChannel(energy, u float64) Channel
}

// sourceOps derives the Source methods beyond CrossSectionsAt.
type sourceOps struct {
	at func(energy float64) Sigmas
}

func (o sourceOps) TotalCrossSectionAt(energy float64) float64 {
	return o.at(energy).Total()
}

func (o sourceOps) MeanFreePath(energy, gasDensity float64) float64 {
	return kinetics.MeanFreePath(gasDensity, o.TotalCrossSectionAt(energy))
}

func (o sourceOps) CollisionFrequency(energy, gasDensity float64) float64 {
	return kinetics.CollisionFrequency(energy, gasDensity, o.TotalCrossSectionAt(energy))
}

func (o sourceOps) SelectChannel(energy, u float64) Channel {
	return o.at(energy).Select(u)
}
