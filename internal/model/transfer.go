package model

import (
	"math"
	"math/rand/v2"

	"github.com/wildstyl3r/argonmc/internal/constants"
	"github.com/wildstyl3r/argonmc/internal/crosssection"
)

// Bounds of the sampled secondary-electron energy [eV]. The upper bound is
// half the available energy.
const SecondaryMinEnergy = 0.1

// Outcome is the result of one collision on the electron's energy.
type Outcome struct {
	Energy    float64 // after the collision, never negative
	Secondary float64 // ejected electron energy, 0 without ionization
	Ionized   bool
	Excited   bool
	Absorbed  bool
}

type rule func(r *Rules, c crosssection.Channel, rng *rand.Rand, energy float64) Outcome

// indexed by channel, one rule each
var rules = [crosssection.NumChannels]rule{
	crosssection.Elastic:        elastic,
	crosssection.ExcitationLow1: excitation,
	crosssection.ExcitationLow2: excitation,
	crosssection.ExcitationHigh: excitation,
	crosssection.Ionization:     ionization,
}

// Rules holds what the per-channel energy updates depend on.
type Rules struct {
	gas       *constants.Gas
	massRatio float64
	minEnergy float64
	scatter   ScatteringFunction
}

func NewRules(gas *constants.Gas, massRatio, minEnergy float64, scatter ScatteringFunction) *Rules {
	if gas == nil {
		gas = constants.Argon()
	}
	if massRatio <= 0 {
		massRatio = gas.MassRatio()
	}
	if scatter == nil {
		scatter = averageAngle
	}
	return &Rules{gas: gas, massRatio: massRatio, minEnergy: minEnergy, scatter: scatter}
}

// Apply updates energy for a collision in channel c.
func (r *Rules) Apply(c crosssection.Channel, rng *rand.Rand, energy float64) Outcome {
	return rules[c](r, c, rng, energy)
}

func elastic(r *Rules, _ crosssection.Channel, rng *rand.Rand, energy float64) Outcome {
	cos := r.scatter(rng, energy)
	loss := 2. * r.massRatio * energy * (1. - cos)
	return Outcome{Energy: math.Max(energy-loss, 0)}
}

func excitation(r *Rules, c crosssection.Channel, _ *rand.Rand, energy float64) Outcome {
	threshold := crosssection.Threshold(r.gas, c)
	if energy < threshold {
		return Outcome{Energy: 0, Absorbed: true}
	}
	after := energy - threshold
	return Outcome{Energy: after, Excited: true, Absorbed: after < r.minEnergy}
}

func ionization(r *Rules, _ crosssection.Channel, rng *rand.Rand, energy float64) Outcome {
	available := energy - r.gas.IonizationThreshold
	if available <= 0 {
		return Outcome{Energy: 0, Absorbed: true}
	}
	primary, secondary := SplitIonizationEnergy(available, rng.Float64())
	return Outcome{Energy: primary, Secondary: secondary, Ionized: true}
}

// SplitIonizationEnergy shares the available energy A between the scattered
// primary and the ejected secondary. The secondary is drawn by inverse
// transform from a 1/E^2 density on [SecondaryMinEnergy, A/2]; below that
// range the energy is split evenly.
func SplitIonizationEnergy(available, u float64) (primary, secondary float64) {
	if available <= 0 {
		return 0, 0
	}
	emin, emax := SecondaryMinEnergy, available/2.
	if emax <= emin {
		secondary = available / 2.
	} else {
		secondary = emin / (1. - u*(1.-emin/emax))
	}
	secondary = math.Min(math.Max(secondary, 0), available)
	primary = math.Max(available-secondary, 0)
	return
}
