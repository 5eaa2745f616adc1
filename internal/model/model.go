package model

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wildstyl3r/argonmc/internal/config"
	"github.com/wildstyl3r/argonmc/internal/constants"
	"github.com/wildstyl3r/argonmc/internal/crosssection"
)

// Model runs a population of independent electron trajectories through one
// gas with one cross-section source. Nothing in it is mutated by Run.
type Model struct {
	Parameters config.SimulationParameters
	Gas        *constants.Gas
	Source     crosssection.Source

	rules    *Rules
	halfSize float64 // [m]
	seed     uint64
	logger   *slog.Logger
}

// NewModel validates the parameters and fixes the seed. A massRatio of zero
// takes m_e/M from the gas.
func NewModel(parameters config.SimulationParameters, source crosssection.Source, gas *constants.Gas, massRatio float64, logger *slog.Logger) (*Model, error) {
	if source == nil {
		return nil, errors.New("model: no cross section source")
	}
	if err := parameters.Validate(); err != nil {
		return nil, err
	}
	if gas == nil {
		var err error
		if gas, err = constants.LookupGas(parameters.Gas); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	scatter, err := LookupScattering(parameters.Scattering)
	if err != nil {
		return nil, err
	}
	m := &Model{
		Parameters: parameters,
		Gas:        gas,
		Source:     source,
		rules:      NewRules(gas, massRatio, parameters.MinEnergy, scatter),
		halfSize:   math.Cbrt(parameters.ChamberVolume) / 2.,
		seed:       uint64(parameters.Seed),
		logger:     logger,
	}
	if m.seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("model: seeding: %w", err)
		}
		m.seed = binary.LittleEndian.Uint64(b[:]) | 1
		logger.Info("random seed chosen", "seed", m.seed)
	}
	if parameters.Verbose() {
		mfp := source.MeanFreePath(parameters.InitialEnergy, parameters.GasDensity)
		logger.Debug("model ready",
			"meanFreePath", mfp,
			"chamberHalfSize", m.halfSize,
			"massRatio", m.rules.massRatio,
			"threads", parameters.Threads())
	}
	return m, nil
}

func (m *Model) Seed() uint64 {
	return m.seed
}

// HalfSize is half the side of the cubic chamber [m].
func (m *Model) HalfSize() float64 {
	return m.halfSize
}

// SeededRand is the random stream of electron i, independent of scheduling.
func SeededRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)))
}

// Result is immutable once Run returns it.
type Result struct {
	Seed        uint64
	Electrons   []*Electron
	Secondaries []*Electron
	Stats       Statistics
	// SecondaryStats is nil unless secondaries were traced.
	SecondaryStats *Statistics
}

// Run traces NElectrons primaries in batches of BatchSize on up to
// Threads() goroutines. onProgress, if set, receives the completed
// percentage after each batch from the calling goroutine only. The context
// is checked once per batch.
func (m *Model) Run(ctx context.Context, onProgress func(percent int)) (*Result, error) {
	n := m.Parameters.NElectrons
	batch := m.Parameters.BatchSize
	numBatches := (n + batch - 1) / batch
	threads := max(m.Parameters.Threads(), 1)

	electrons := make([]*Electron, n)
	secondaries := make([][]*Electron, n)

	done := make(chan int, numBatches)
	finished := make(chan error, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	go func() {
		for b := range numBatches {
			first, last := b*batch, min((b+1)*batch, n)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for i := first; i < last; i++ {
					electrons[i], secondaries[i] = m.traceElectron(i)
				}
				done <- last - first
				return nil
			})
		}
		finished <- g.Wait()
		close(done)
	}()

	completed := 0
	for count := range done {
		completed += count
		if onProgress != nil {
			onProgress(completed * 100 / n)
		}
	}
	if err := <-finished; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Seed: m.seed, Electrons: electrons}
	for i := range secondaries {
		res.Secondaries = append(res.Secondaries, secondaries[i]...)
	}
	res.Stats = NewStatistics(electrons, m.Parameters.MinEnergy)
	if m.Parameters.TraceSecondaries {
		s := NewStatistics(res.Secondaries, m.Parameters.MinEnergy)
		res.SecondaryStats = &s
	}
	m.logger.Debug("run finished",
		"electrons", n,
		"meanIonizations", res.Stats.Ionizations.Mean,
		"survivalRate", res.Stats.SurvivalRate,
		"secondariesTraced", len(res.Secondaries))
	return res, nil
}

// traceElectron runs primary i and, if enabled, its secondaries depth-first
// on the same random stream.
func (m *Model) traceElectron(i int) (*Electron, []*Electron) {
	rng := SeededRand(m.seed, i)
	primary := m.newElectron(i, m.Parameters.InitialEnergy, r3.Vec{}, 0, rng)
	m.Trace(primary, rng)
	if !m.Parameters.TraceSecondaries {
		return primary, nil
	}

	type pending struct {
		Ejection
		parent     int
		generation int
	}
	var stack []pending
	push := func(e *Electron, id int) {
		for j := len(e.Ejections) - 1; j >= 0; j-- {
			stack = append(stack, pending{e.Ejections[j], id, e.Generation + 1})
		}
	}
	push(primary, -1)

	var traced []*Electron
	for len(stack) > 0 && len(traced) < m.Parameters.MaxSecondaries {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next.Energy < m.Parameters.MinEnergy {
			continue
		}
		s := m.newElectron(i, next.Energy, next.Position, next.Time, rng)
		s.Generation = next.generation
		s.Parent = next.parent
		m.Trace(s, rng)
		traced = append(traced, s)
		push(s, len(traced)-1)
	}
	if len(stack) > 0 {
		m.logger.Debug("secondary cap reached", "electron", i, "untraced", len(stack))
	}
	return primary, traced
}
