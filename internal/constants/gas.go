package constants

import (
	"fmt"
	"strings"
)

// Shell is one atomic shell entering the Binary-Encounter-Bethe sum.
type Shell struct {
	Name          string
	Binding       float64 // B [eV]
	KineticEnergy float64 // U [eV]
	Electrons     int     // N
}

// ExcitationLevel is a discrete (or lumped) excitation channel of the target gas.
type ExcitationLevel struct {
	Threshold          float64 // [eV]
	OscillatorStrength float64 // Born-Bethe f
}

// Gas collects every species-dependent constant of the collision model.
// Swapping the record swaps the target gas; nothing else in the engine
// refers to argon directly.
type Gas struct {
	Name         string
	Mass         float64 // [kg]
	AtomicNumber int

	IonizationThreshold float64 // [eV]
	Low1                ExcitationLevel
	Low2                ExcitationLevel
	High                ExcitationLevel

	Shells []Shell

	ScreeningLength float64 // [m]

	// empirical elastic baseline used when a table carries no elastic column:
	// sigma_el(E) = max(ElasticBaseline*exp(-E/ElasticDecay), 0.1*sum(inelastic))
	ElasticBaseline float64 // [m^2]
	ElasticDecay    float64 // [eV]
}

// MassRatio is m_e/M of the electron and the target atom.
func (g *Gas) MassRatio() float64 {
	return ElectronMass / g.Mass
}

// Argon returns a fresh copy of the argon record.
func Argon() *Gas {
	return &Gas{
		Name:                "Ar",
		Mass:                39.948 * AtomicMassUnit,
		AtomicNumber:        18,
		IonizationThreshold: 15.76,
		Low1:                ExcitationLevel{Threshold: 11.55, OscillatorStrength: 0.25},
		Low2:                ExcitationLevel{Threshold: 12.91, OscillatorStrength: 0.15},
		High:                ExcitationLevel{Threshold: 13.5, OscillatorStrength: 0},
		Shells: []Shell{
			{Name: "3p", Binding: 15.76, KineticEnergy: 13.48, Electrons: 6},
			{Name: "3s", Binding: 29.24, KineticEnergy: 24.1, Electrons: 2},
		},
		ScreeningLength: 0.5 * BohrRadius,
		ElasticBaseline: 1e-19,
		ElasticDecay:    100,
	}
}

var species = map[string]func() *Gas{
	"ar":    Argon,
	"argon": Argon,
}

// LookupGas resolves a species name (case-insensitive); empty means argon.
func LookupGas(name string) (*Gas, error) {
	if name == "" {
		return Argon(), nil
	}
	if f, ok := species[strings.ToLower(name)]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown gas species %q", name)
}
