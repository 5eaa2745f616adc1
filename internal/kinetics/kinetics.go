// Package kinetics holds the pure conversions between electron energy,
// speed, collision frequency and mean free path, plus a handful of plasma
// parameters derived from them.
package kinetics

import (
	"math"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

// Velocity returns the electron speed [m/s] for a kinetic energy in eV.
func Velocity(energy float64) float64 {
	return math.Sqrt(2 * energy * constants.ElectronCharge / constants.ElectronMass)
}

// EnergyFromVelocity is the inverse of Velocity.
func EnergyFromVelocity(v float64) float64 {
	return 0.5 * constants.ElectronMass * v * v / constants.ElectronCharge
}

func EV2J(val float64) float64 {
	return val * constants.ElectronCharge
}

// MeanFreePath is 1/(N sigma); +Inf when either factor vanishes.
func MeanFreePath(gasDensity, crossSection float64) float64 {
	if gasDensity == 0 || crossSection == 0 {
		return math.Inf(1)
	}
	return 1. / (gasDensity * crossSection)
}

// CollisionFrequency is N sigma v [1/s].
func CollisionFrequency(energy, gasDensity, crossSection float64) float64 {
	return gasDensity * crossSection * Velocity(energy)
}

// ChannelFrequency is CollisionFrequency restricted to a thresholded process.
func ChannelFrequency(energy, threshold, gasDensity, crossSection float64) float64 {
	if energy < threshold {
		return 0
	}
	return CollisionFrequency(energy, gasDensity, crossSection)
}

// MeanCollisionTime is the mean free path divided by the speed.
func MeanCollisionTime(energy, gasDensity, crossSection float64) float64 {
	return MeanFreePath(gasDensity, crossSection) / Velocity(energy)
}

// GasDensity from the ideal gas law, N = P/(k T).
func GasDensity(pressure, temperature float64) float64 {
	return pressure / (constants.KBolzmann * temperature)
}

// PlasmaFrequency [rad/s] for an electron density in m^-3.
func PlasmaFrequency(electronDensity float64) float64 {
	return math.Sqrt(electronDensity * constants.ElectronCharge * constants.ElectronCharge /
		(constants.FreeSpacePermittivityE0 * constants.ElectronMass))
}

// DebyeLength [m] for an electron temperature in eV.
func DebyeLength(electronTemperature, electronDensity float64) float64 {
	return math.Sqrt(constants.FreeSpacePermittivityE0 * EV2J(electronTemperature) /
		(electronDensity * constants.ElectronCharge * constants.ElectronCharge))
}

// ElectronTemperature is 2/3 of the mean energy, both in eV.
func ElectronTemperature(meanEnergy float64) float64 {
	return 2. / 3. * meanEnergy
}
