package model

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/wildstyl3r/argonmc/internal/config"
)

// ScatteringFunction samples the cosine of the elastic deflection angle at
// energy [eV].
type ScatteringFunction func(rng *rand.Rand, energy float64) (cos float64)

// averageAngle keeps the mean deflection <cos> = 0.5 and draws nothing.
func averageAngle(rng *rand.Rand, energy float64) float64 {
	return 0.5
}

func isotropic(rng *rand.Rand, energy float64) float64 {
	return 1. - 2.*rng.Float64()
}

// surendra is the screened-Coulomb angular distribution of Surendra et al.
func surendra(rng *rand.Rand, energy float64) float64 {
	if energy <= 0 {
		return 1.
	}
	return (2. + energy - 2.*math.Pow(1.+energy, rng.Float64())) / energy
}

var scatteringFunctions = map[string]ScatteringFunction{
	config.ScatteringAverage:   averageAngle,
	config.ScatteringIsotropic: isotropic,
	config.ScatteringSurendra:  surendra,
}

func LookupScattering(name string) (ScatteringFunction, error) {
	if name == "" {
		return averageAngle, nil
	}
	f, ok := scatteringFunctions[name]
	if !ok {
		return nil, fmt.Errorf("unknown scattering model %q", name)
	}
	return f, nil
}
