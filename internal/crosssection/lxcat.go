package crosssection

import (
	"fmt"
	"log/slog"

	"github.com/wildstyl3r/lxgata"
	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

// LXCat sampling grid, log-spaced.
const (
	GridMinEnergy = 0.01 // [eV]
	GridMaxEnergy = 1000 // [eV]
	GridPoints    = 1000
)

// ClassifyProcess folds an LXCat process into one of the five channels.
// Excitations are binned by threshold against the gas levels; attachment
// and rotation have no channel.
func ClassifyProcess(gas *constants.Gas, kind lxgata.CollisionType, threshold float64) (Channel, bool) {
	switch kind {
	case lxgata.ELASTIC, lxgata.EFFECTIVE:
		return Elastic, true
	case lxgata.IONIZATION:
		return Ionization, true
	case lxgata.EXCITATION:
		switch {
		case threshold < gas.Low2.Threshold:
			return ExcitationLow1, true
		case threshold < gas.High.Threshold:
			return ExcitationLow2, true
		default:
			return ExcitationHigh, true
		}
	}
	return 0, false
}

// ImportLXCat loads an LXCat cross-section set and samples it on the
// log-spaced grid. The returned mass ratio comes from the elastic or
// effective process (zero when the file carries none).
func ImportLXCat(path string, gas *constants.Gas, logger *slog.Logger) (*Table, float64, error) {
	if gas == nil {
		gas = constants.Argon()
	}
	if logger == nil {
		logger = slog.Default()
	}
	collisions, err := lxgata.LoadCrossSections(path)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid cross section file: %w", err)
	}
	cs := &collisions
	if len(*cs) == 0 {
		return nil, 0, formatError("no processes in %s", path)
	}

	var massRatio float64
	channelOf := make([]int, len(*cs))
	for i, collision := range *cs {
		channel, ok := ClassifyProcess(gas, collision.Type, collision.Threshold)
		if !ok {
			channelOf[i] = -1
			logger.Debug("skipping LXCat process", "type", collision.Type, "threshold", collision.Threshold)
			continue
		}
		channelOf[i] = int(channel)
		if channel == Elastic && collision.MassRatio > 0 {
			massRatio = collision.MassRatio
		}
	}

	grid := make([]float64, GridPoints)
	floats.LogSpan(grid, GridMinEnergy, GridMaxEnergy)
	columns := Columns{}
	for _, c := range Channels {
		columns[c] = make([]float64, GridPoints)
	}
	for i, e := range grid {
		for j, sigma := range cs.CrossSectionsAt(e) {
			if channelOf[j] >= 0 {
				columns[Channel(channelOf[j])][i] += sigma
			}
		}
	}
	table, err := NewTable(gas, grid, columns)
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("imported LXCat set", "path", path, "processes", len(*cs), "massRatio", massRatio)
	return table, massRatio, nil
}
