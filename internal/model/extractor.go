package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/argonmc/internal/constants"
	"github.com/wildstyl3r/argonmc/internal/crosssection"
	"github.com/wildstyl3r/argonmc/internal/kinetics"
	"github.com/wildstyl3r/argonmc/internal/utils"
)

type DataExtractor struct {
	model  *Model
	result *Result
	logger *slog.Logger

	tabulated *crosssection.Table
}

// Grid for sources that are not tables already.
const (
	tableMinEnergy = 0.1   // [eV]
	tableMaxEnergy = 1000. // [eV]
	tablePoints    = 200
)

func NewDataExtractor(model *Model, result *Result) *DataExtractor {
	return &DataExtractor{model: model, result: result, logger: model.logger}
}

type quantity struct {
	name  string
	value float64
}

func fieldQuantities(prefix string, f FieldStats) []quantity {
	return []quantity{
		{prefix + "_mean", f.Mean},
		{prefix + "_std", f.Std},
		{prefix + "_min", f.Min},
		{prefix + "_max", f.Max},
		{prefix + "_median", f.Median},
	}
}

func (de *DataExtractor) quantities() []quantity {
	s := de.result.Stats
	q := []quantity{
		{"electrons", float64(s.Electrons)},
		{"initial_energy_eV", de.model.Parameters.InitialEnergy},
		{"gas_density_m-3", de.model.Parameters.GasDensity},
	}
	q = append(q, fieldQuantities("ionizations", s.Ionizations)...)
	q = append(q, fieldQuantities("excitations", s.Excitations)...)
	q = append(q, fieldQuantities("energy_loss_eV", s.EnergyLoss)...)
	q = append(q, fieldQuantities("collisions", s.Collisions)...)
	q = append(q, fieldQuantities("final_energy_eV", s.FinalEnergy)...)
	q = append(q, fieldQuantities("distance_m", s.Distance)...)
	q = append(q, fieldQuantities("time_s", s.Time)...)
	q = append(q,
		quantity{"survival_rate", s.SurvivalRate},
		quantity{"wall_absorption_rate", s.WallAbsorptionRate},
		quantity{"modal_ionizations", float64(s.ModalIonizations)},
		quantity{"total_ionizations", float64(s.TotalIonizations)},
		quantity{"total_excitations", float64(s.TotalExcitations)},
		quantity{"total_collisions", float64(s.TotalCollisions)},
		quantity{"ejected_secondaries", float64(s.Ejected)},
		quantity{"ejected_mean_energy_eV", s.MeanEjectedEnergy},
		quantity{"electron_temperature_eV", s.ElectronTemperature},
	)
	q = append(q, quantity{"ionizations_mean_ci95", constants.Quantile95 * s.Ionizations.Std / math.Sqrt(float64(s.Electrons))})
	q = append(q, de.plasmaQuantities()...)
	for r := Running; r < numReasons; r++ {
		q = append(q, quantity{"ended_" + r.String(), float64(s.Reasons[r])})
	}
	if ss := de.result.SecondaryStats; ss != nil {
		q = append(q,
			quantity{"secondaries_traced", float64(ss.Electrons)},
			quantity{"secondaries_ionizations_total", float64(ss.TotalIonizations)},
			quantity{"secondaries_ionizations_mean", ss.Ionizations.Mean},
			quantity{"secondaries_initial_energy_mean_eV", ss.EnergyLoss.Mean + ss.FinalEnergy.Mean},
		)
	}
	return q
}

// plasmaQuantities evaluates the gas and beam scales at the initial energy.
// The beam density is the primary count spread over the chamber.
func (de *DataExtractor) plasmaQuantities() []quantity {
	p := de.model.Parameters
	sigmas := de.model.Source.CrossSectionsAt(p.InitialEnergy)
	total := sigmas.Total()
	beamDensity := float64(p.NElectrons) / p.ChamberVolume
	temperature := kinetics.ElectronTemperature(p.InitialEnergy)
	return []quantity{
		{"mean_free_path_m", kinetics.MeanFreePath(p.GasDensity, total)},
		{"collision_frequency_s-1", kinetics.CollisionFrequency(p.InitialEnergy, p.GasDensity, total)},
		{"mean_collision_time_s", kinetics.MeanCollisionTime(p.InitialEnergy, p.GasDensity, total)},
		{"ionization_frequency_s-1", kinetics.ChannelFrequency(p.InitialEnergy, de.model.Gas.IonizationThreshold, p.GasDensity, sigmas[crosssection.Ionization])},
		{"beam_density_m-3", beamDensity},
		{"beam_plasma_frequency_rad_s-1", kinetics.PlasmaFrequency(beamDensity)},
		{"beam_debye_length_m", kinetics.DebyeLength(temperature, beamDensity)},
	}
}

// table is the run's cross-section source in tabulated form.
func (de *DataExtractor) table() (*crosssection.Table, error) {
	if de.tabulated != nil {
		return de.tabulated, nil
	}
	grid := make([]float64, tablePoints)
	floats.LogSpan(grid, tableMinEnergy, tableMaxEnergy)
	t, err := crosssection.AsTable(de.model.Source, de.model.Gas, grid)
	if err != nil {
		return nil, fmt.Errorf("unable to tabulate cross sections: %w", err)
	}
	de.tabulated = t
	return t, nil
}

func (de *DataExtractor) summaryRows() [][]string {
	rows := [][]string{{"seed", strconv.FormatUint(de.result.Seed, 10)}}
	for _, q := range de.quantities() {
		rows = append(rows, []string{q.name, formatFloat(q.value)})
	}
	return rows
}

// SummaryColumns heads the cross-run summary file.
var SummaryColumns = []string{
	"run", "seed", "initial energy (eV)", "gas density (m^-3)", "electrons",
	"ionizations mean", "ionizations std", "ionizations max",
	"excitations mean", "energy loss mean (eV)", "collisions mean",
	"survival rate", "wall absorption rate",
}

// SummaryRow is this run's line of the cross-run summary.
func (de *DataExtractor) SummaryRow(runName string) []string {
	s := de.result.Stats
	return []string{
		runName,
		strconv.FormatUint(de.result.Seed, 10),
		formatFloat(de.model.Parameters.InitialEnergy),
		formatFloat(de.model.Parameters.GasDensity),
		strconv.Itoa(s.Electrons),
		formatFloat(s.Ionizations.Mean),
		formatFloat(s.Ionizations.Std),
		formatFloat(s.Ionizations.Max),
		formatFloat(s.Excitations.Mean),
		formatFloat(s.EnergyLoss.Mean),
		formatFloat(s.Collisions.Mean),
		formatFloat(s.SurvivalRate),
		formatFloat(s.WallAbsorptionRate),
	}
}

// Save writes every selected table for the run.
func (de *DataExtractor) Save(runName string, df DataFlags) error {
	names := make([]string, 0, len(df.tables))
	for name := range df.tables {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		output := df.tables[name]
		if !*output.saveFlag && !*df.all {
			continue
		}
		if err := de.saveTable(runName, df.outputPath, output); err != nil {
			errs = append(errs, fmt.Errorf("unable to save %s: %w", name, err))
			continue
		}
		de.logger.Debug(name+" saved", "run", runName)
	}
	return errors.Join(errs...)
}

func (de *DataExtractor) saveTable(runName, outputPath string, output TableDataItem) error {
	file, err := utils.OpenFile(de.model.Parameters.MakeDir, outputPath, output.fileSuffix, runName, ".csv")
	if err != nil {
		return err
	}
	defer file.Close()
	if output.write != nil {
		return output.write(de, file)
	}
	rows, err := output.rows(de)
	if err != nil {
		return err
	}
	w := csv.NewWriter(file)
	if err := w.Write(output.columnNames); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}
