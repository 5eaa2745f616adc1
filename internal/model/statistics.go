package model

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wildstyl3r/argonmc/internal/kinetics"
	"github.com/wildstyl3r/argonmc/internal/utils"
)

// FieldStats summarizes one per-electron quantity. Std is the population
// standard deviation.
type FieldStats struct {
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

func newFieldStats(values []float64) FieldStats {
	if len(values) == 0 {
		return FieldStats{}
	}
	mean, variance := utils.MeanAndVariance(values, false)
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return FieldStats{
		Mean:   mean,
		Std:    math.Sqrt(variance),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
}

type Statistics struct {
	Electrons int

	Ionizations FieldStats
	Excitations FieldStats
	EnergyLoss  FieldStats // [eV]
	Collisions  FieldStats
	FinalEnergy FieldStats // [eV]
	Distance    FieldStats // [m]
	Time        FieldStats // [s]

	// SurvivalRate is the fraction ending with energy >= MinEnergy.
	SurvivalRate       float64
	WallAbsorptionRate float64
	Reasons            [numReasons]int

	// Histogram[k] counts electrons with exactly k ionizations, k = 0..max.
	Histogram        []int
	ModalIonizations int

	TotalIonizations int
	TotalExcitations int
	TotalCollisions  int

	Ejected           int
	MeanEjectedEnergy float64 // [eV]

	// ElectronTemperature is 2/3 of the mean final energy [eV].
	ElectronTemperature float64
}

func NewStatistics(electrons []*Electron, minEnergy float64) Statistics {
	s := Statistics{Electrons: len(electrons)}
	if len(electrons) == 0 {
		return s
	}
	n := len(electrons)
	ionizations := make([]float64, n)
	excitations := make([]float64, n)
	losses := make([]float64, n)
	collisions := make([]float64, n)
	finals := make([]float64, n)
	distances := make([]float64, n)
	times := make([]float64, n)
	var survived, wall int
	var ejectedEnergy float64
	maxIonizations := 0
	for i, e := range electrons {
		ionizations[i] = float64(e.Ionizations)
		excitations[i] = float64(e.Excitations)
		losses[i] = e.EnergyLoss()
		collisions[i] = float64(e.Collisions)
		finals[i] = e.Energy
		distances[i] = e.Distance
		times[i] = e.Time
		if e.Energy >= minEnergy {
			survived++
		}
		if e.Reason == ReasonWall {
			wall++
		}
		s.Reasons[e.Reason]++
		s.TotalIonizations += e.Ionizations
		s.TotalExcitations += e.Excitations
		s.TotalCollisions += e.Collisions
		maxIonizations = max(maxIonizations, e.Ionizations)
		for _, ej := range e.Ejections {
			s.Ejected++
			ejectedEnergy += ej.Energy
		}
	}
	s.Ionizations = newFieldStats(ionizations)
	s.Excitations = newFieldStats(excitations)
	s.EnergyLoss = newFieldStats(losses)
	s.Collisions = newFieldStats(collisions)
	s.FinalEnergy = newFieldStats(finals)
	s.Distance = newFieldStats(distances)
	s.Time = newFieldStats(times)

	s.SurvivalRate = float64(survived) / float64(n)
	s.WallAbsorptionRate = float64(wall) / float64(n)

	s.Histogram = make([]int, maxIonizations+1)
	for _, e := range electrons {
		s.Histogram[e.Ionizations]++
	}
	s.ModalIonizations = utils.Argmax(s.Histogram)

	if s.Ejected > 0 {
		s.MeanEjectedEnergy = ejectedEnergy / float64(s.Ejected)
	}
	s.ElectronTemperature = kinetics.ElectronTemperature(s.FinalEnergy.Mean)
	return s
}
