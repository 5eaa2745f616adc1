package crosssection

import (
	"math"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

// AnalyticModel evaluates closed-form cross sections for a gas: BEB
// ionization, Born-Bethe excitation and a screened-Coulomb elastic term.
type AnalyticModel struct {
	sourceOps
	gas *constants.Gas
}

func NewAnalyticModel(gas *constants.Gas) *AnalyticModel {
	if gas == nil {
		gas = constants.Argon()
	}
	m := &AnalyticModel{gas: gas}
	m.sourceOps = sourceOps{at: m.CrossSectionsAt}
	return m
}

func (m *AnalyticModel) Gas() *constants.Gas {
	return m.gas
}

var fourPiA0Squared = 4. * math.Pi * constants.BohrRadius * constants.BohrRadius

// BEB is the Binary-Encounter-Bethe ionization cross section [m^2] of a
// single shell at incident energy T [eV].
func BEB(T float64, shell constants.Shell) float64 {
	B := shell.Binding
	if T < B {
		return 0
	}
	t := T / B
	lnt := math.Log(t)
	S := lnt/2.*(1.-1./(t*t)) + (1. - 1./t - lnt/(t+1.))
	return fourPiA0Squared * float64(shell.Electrons) / (B * B) * S
}

// BornBethe is the excitation estimate 4 pi a0^2 (R/E) f ln(T/E), clamped at zero.
func BornBethe(T float64, level constants.ExcitationLevel) float64 {
	E := level.Threshold
	if T < E {
		return 0
	}
	return math.Max(fourPiA0Squared*(constants.Rydberg/E)*level.OscillatorStrength*math.Log(T/E), 0)
}

// ScreenedCoulomb is pi a^2 Z^2 / (1 + (k a)^2) with k = sqrt(2 m_e E)/hbar.
func ScreenedCoulomb(T float64, screeningLength float64, atomicNumber int) float64 {
	a := screeningLength
	Z := float64(atomicNumber)
	k := math.Sqrt(2.*constants.ElectronMass*T*constants.ElectronCharge) / constants.ReducedPlanck
	ka := k * a
	return math.Pi * a * a * Z * Z / (1. + ka*ka)
}

// Ionization sums BEB over every shell of the gas.
func (m *AnalyticModel) Ionization(T float64) (sigma float64) {
	for _, shell := range m.gas.Shells {
		sigma += BEB(T, shell)
	}
	return
}

func (m *AnalyticModel) Excitation(T float64, c Channel) float64 {
	level, ok := Level(m.gas, c)
	if !ok {
		return 0
	}
	return BornBethe(T, level)
}

func (m *AnalyticModel) Elastic(T float64) float64 {
	return ScreenedCoulomb(T, m.gas.ScreeningLength, m.gas.AtomicNumber)
}

func (m *AnalyticModel) CrossSectionsAt(energy float64) (s Sigmas) {
	s[Elastic] = m.Elastic(energy)
	s[ExcitationLow1] = m.Excitation(energy, ExcitationLow1)
	s[ExcitationLow2] = m.Excitation(energy, ExcitationLow2)
	s[ExcitationHigh] = m.Excitation(energy, ExcitationHigh)
	s[Ionization] = m.Ionization(energy)
	return
}

// Tabulate evaluates every channel on the grid and builds a Table from it.
func (m *AnalyticModel) Tabulate(energies []float64) (*Table, error) {
	return tabulate(m, m.gas, energies)
}
