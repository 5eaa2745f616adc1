package model

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wildstyl3r/argonmc/internal/crosssection"
	"github.com/wildstyl3r/argonmc/internal/kinetics"
	"github.com/wildstyl3r/argonmc/internal/utils"
)

type State int

const (
	Flying State = iota
	Colliding
	Absorbed
	Terminated
)

func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Colliding:
		return "colliding"
	case Absorbed:
		return "absorbed"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Reason tells why a trajectory ended.
type Reason int

const (
	Running Reason = iota
	ReasonMinEnergy
	ReasonMaxCollisions
	ReasonMaxTime
	ReasonNoCrossSection
	ReasonWall
	ReasonThermalized
	numReasons
)

var reasonNames = [numReasons]string{
	Running:              "running",
	ReasonMinEnergy:      "min-energy",
	ReasonMaxCollisions:  "max-collisions",
	ReasonMaxTime:        "max-time",
	ReasonNoCrossSection: "no-cross-section",
	ReasonWall:           "wall",
	ReasonThermalized:    "thermalized",
}

func (r Reason) String() string {
	if r < 0 || r >= numReasons {
		return "unknown"
	}
	return reasonNames[r]
}

// Event is one logged collision.
type Event struct {
	Channel      crosssection.Channel
	EnergyBefore float64 // [eV]
	EnergyAfter  float64 // [eV]
	Secondary    float64 // [eV]
	Position     r3.Vec  // [m]
	Time         float64 // [s]
}

// Ejection is a secondary electron created by ionization.
type Ejection struct {
	Energy   float64
	Position r3.Vec
	Time     float64
}

type Electron struct {
	ID         int
	Generation int // 0 for primaries

	// Parent indexes the secondaries traced for the same primary; -1 means
	// the primary itself.
	Parent int

	InitialEnergy float64 // [eV]
	Energy        float64 // [eV]
	Position      r3.Vec  // [m]
	Velocity      r3.Vec  // [m/s]

	Ionizations     int
	Excitations     int
	Collisions      int
	WallReflections int
	Time            float64 // [s]
	Distance        float64 // [m]

	State  State
	Reason Reason

	Events      []Event
	Ejections   []Ejection
	keepHistory bool
}

func (m *Model) newElectron(id int, energy float64, position r3.Vec, time float64, rng *rand.Rand) *Electron {
	e := &Electron{
		ID:            id,
		InitialEnergy: energy,
		Energy:        energy,
		Position:      position,
		Time:          time,
		Parent:        -1,
		State:         Flying,
		keepHistory:   m.Parameters.KeepHistory,
	}
	e.setDirection(utils.IsotropicDirection(rng))
	return e
}

func (e *Electron) Active() bool {
	return e.State == Flying || e.State == Colliding
}

// EnergyLoss is the energy the electron no longer carries.
func (e *Electron) EnergyLoss() float64 {
	return e.InitialEnergy - e.Energy
}

func (e *Electron) setDirection(direction r3.Vec) {
	e.Velocity = r3.Scale(kinetics.Velocity(e.Energy), r3.Unit(direction))
}

// setEnergy keeps |v| consistent with the energy along the current direction.
func (e *Electron) setEnergy(energy float64) {
	e.Energy = math.Max(energy, 0)
	if r3.Norm(e.Velocity) == 0 {
		e.Velocity = r3.Vec{Z: kinetics.Velocity(e.Energy)}
		return
	}
	e.setDirection(e.Velocity)
}

func (e *Electron) stop(state State, reason Reason) {
	e.State = state
	e.Reason = reason
}

// Step advances the electron by one free flight and, unless the flight ends
// at an absorbing wall, one collision.
func (m *Model) Step(e *Electron, rng *rand.Rand) {
	if !e.Active() {
		return
	}
	switch {
	case e.Energy <= 0 || e.Energy < m.Parameters.MinEnergy:
		e.stop(Terminated, ReasonMinEnergy)
		return
	case e.Collisions >= m.Parameters.MaxCollisions:
		e.stop(Terminated, ReasonMaxCollisions)
		return
	case e.Time > m.Parameters.MaxTime:
		e.stop(Terminated, ReasonMaxTime)
		return
	}

	sigmas := m.Source.CrossSectionsAt(e.Energy)
	total := sigmas.Total()
	if total == 0 {
		e.stop(Terminated, ReasonNoCrossSection)
		return
	}
	meanFreePath := kinetics.MeanFreePath(m.Parameters.GasDensity, total)
	distance := meanFreePath * utils.R(rng)
	speed := kinetics.Velocity(e.Energy)
	e.Position = r3.Add(e.Position, r3.Scale(distance, r3.Unit(e.Velocity)))
	e.Distance += distance
	e.Time += distance / speed

	if m.hitWall(e, rng) {
		e.setEnergy(0)
		e.stop(Absorbed, ReasonWall)
		return
	}

	e.State = Colliding
	channel := sigmas.Select(rng.Float64())
	before := e.Energy
	out := m.rules.Apply(channel, rng, e.Energy)
	e.Collisions++
	if out.Ionized {
		e.Ionizations++
		e.Ejections = append(e.Ejections, Ejection{Energy: out.Secondary, Position: e.Position, Time: e.Time})
	}
	if out.Excited {
		e.Excitations++
	}
	e.setEnergy(out.Energy)
	if e.keepHistory {
		e.Events = append(e.Events, Event{
			Channel:      channel,
			EnergyBefore: before,
			EnergyAfter:  e.Energy,
			Secondary:    out.Secondary,
			Position:     e.Position,
			Time:         e.Time,
		})
	}
	if out.Absorbed {
		e.stop(Absorbed, ReasonThermalized)
		return
	}
	e.setDirection(utils.IsotropicDirection(rng))
	e.State = Flying
}

// hitWall checks the cube of side cbrt(ChamberVolume) centred on the origin.
// An escaping electron is absorbed with WallAbsorptionProbability, otherwise
// it is clamped to the wall and its velocity component along every violated
// axis is inverted. A reflected electron still collides at the wall, and that
// collision draws a new isotropic direction, so the inverted velocity only
// survives when the collision ends the trajectory.
func (m *Model) hitWall(e *Electron, rng *rand.Rand) bool {
	h := m.halfSize
	outside := math.Abs(e.Position.X) > h || math.Abs(e.Position.Y) > h || math.Abs(e.Position.Z) > h
	if !outside {
		return false
	}
	if rng.Float64() < m.Parameters.WallAbsorptionProbability {
		e.Position = clampToBox(e.Position, h)
		return true
	}
	e.WallReflections++
	if math.Abs(e.Position.X) > h {
		e.Velocity.X = -e.Velocity.X
	}
	if math.Abs(e.Position.Y) > h {
		e.Velocity.Y = -e.Velocity.Y
	}
	if math.Abs(e.Position.Z) > h {
		e.Velocity.Z = -e.Velocity.Z
	}
	e.Position = clampToBox(e.Position, h)
	return false
}

func clampToBox(p r3.Vec, h float64) r3.Vec {
	clamp := func(v float64) float64 { return math.Max(-h, math.Min(h, v)) }
	return r3.Vec{X: clamp(p.X), Y: clamp(p.Y), Z: clamp(p.Z)}
}

// Trace steps the electron until it is absorbed or terminated.
func (m *Model) Trace(e *Electron, rng *rand.Rand) {
	for e.Active() {
		m.Step(e, rng)
	}
}
