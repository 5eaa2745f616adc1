package crosssection

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

const samplePoints = 100

// SampleTable builds a demonstration table: 100 log-spaced points between
// 0.1 and 1000 eV with exponentially decaying excitations and a
// ln(E/I)/E ionization shape. Elastic is derived.
func SampleTable(gas *constants.Gas) *Table {
	if gas == nil {
		gas = constants.Argon()
	}
	energy := make([]float64, samplePoints)
	floats.LogSpan(energy, 0.1, 1000)

	decaying := func(e, threshold, peak, width float64) float64 {
		if e <= threshold {
			return 0
		}
		return peak * math.Exp(-(e-threshold)/width)
	}
	columns := Columns{}
	for _, c := range Channels[1:] {
		columns[c] = make([]float64, samplePoints)
	}
	for i, e := range energy {
		columns[ExcitationLow1][i] = decaying(e, gas.Low1.Threshold, 1e-20, 10)
		columns[ExcitationLow2][i] = decaying(e, gas.Low2.Threshold, 8e-21, 15)
		columns[ExcitationHigh][i] = decaying(e, gas.High.Threshold, 5e-21, 20)
		if e > gas.IonizationThreshold {
			columns[Ionization][i] = 3e-20 * math.Log(e/gas.IonizationThreshold) / e
		}
	}
	t, err := NewTable(gas, energy, columns)
	if err != nil {
		panic(err)
	}
	return t
}
