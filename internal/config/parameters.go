package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/facette/natsort"

	"github.com/wildstyl3r/argonmc/internal/constants"
	"github.com/wildstyl3r/argonmc/internal/crosssection"
	"github.com/wildstyl3r/argonmc/internal/kinetics"
	"github.com/wildstyl3r/argonmc/internal/utils"
)

type Config struct {
	OutputDir string
	Runs      map[string]SimulationParameters
	SimulationParameters
	Sweep        string
	isDefinedMap map[string]struct{}

	InputUnits []string
}

func (c *Config) isDefined(path []string, meta *toml.MetaData) bool {
	if _, sureDefined := c.isDefinedMap[strings.Join(path, "#")]; sureDefined {
		return true
	} else {
		return meta.IsDefined(path...)
	}
}

// LoadConfig decodes a TOML run file. Top-level keys are defaults for every
// run; [Runs.<name>] tables override them. A Sweep file of
// "initialEnergy gasDensity" lines, relative to the run file, expands into
// runs <file>_l<N>, and a file with neither becomes one run named after the
// file.
func LoadConfig(configFileName string) (Config, toml.MetaData, error) {
	var config Config
	config.isDefinedMap = map[string]struct{}{}
	if filepath.Ext(configFileName) == "" {
		configFileName += ".toml"
	}
	meta, err := toml.DecodeFile(configFileName, &config)
	if err != nil {
		return config, meta, fmt.Errorf("error loading config: %w", err)
	}

	var errs []error
	for _, key := range meta.Undecoded() {
		errs = append(errs, &ParameterValidationError{Field: key.String(), Reason: "unknown key"})
	}

	var unitsConflict []string
	config.InputUnits, unitsConflict = checkUnits(config.InputUnits)
	if len(unitsConflict) > 0 {
		errs = append(errs, unitConflictError("input", unitsConflict))
	}
	if len(errs) > 0 {
		return config, meta, errors.Join(errs...)
	}

	if len(config.Sweep) > 0 {
		if len(config.Runs) > 0 {
			return config, meta, &ParameterValidationError{Field: "Sweep", Value: config.Sweep, Reason: "sweep file and explicit runs are mutually exclusive"}
		}
		sweepPath := config.Sweep
		if !filepath.IsAbs(sweepPath) {
			sweepPath = filepath.Join(filepath.Dir(configFileName), sweepPath)
		}
		sweep, err := utils.ReadFloatPairs(sweepPath)
		if err != nil {
			return config, meta, fmt.Errorf("sweep file reading error: %w", err)
		}
		filename := utils.GetFilename(config.Sweep)
		config.Runs = make(map[string]SimulationParameters, len(sweep))
		for line := range sweep {
			runName := filename + "_l" + strconv.Itoa(line+1)
			config.Runs[runName] = SimulationParameters{
				InitialEnergy: sweep[line][0],
				GasDensity:    sweep[line][1],
			}
			config.isDefinedMap[strings.Join([]string{"Runs", runName, "InitialEnergy"}, "#")] = struct{}{}
			config.isDefinedMap[strings.Join([]string{"Runs", runName, "GasDensity"}, "#")] = struct{}{}
		}
	} else if len(config.Runs) == 0 {
		config.Runs = map[string]SimulationParameters{utils.GetFilename(configFileName): {}}
	}

	return config, meta, nil
}

// RunNames lists the runs in natural order.
func (c *Config) RunNames() []string {
	names := make([]string, 0, len(c.Runs))
	for name := range c.Runs {
		names = append(names, name)
	}
	natsort.Sort(names)
	return names
}

// Resolve unifies a run with the globals and defaults and validates it.
func (c *Config) Resolve(runName string, meta *toml.MetaData) (SimulationParameters, error) {
	p, ok := c.Runs[runName]
	if !ok {
		return p, &ParameterValidationError{Field: "Runs", Value: runName, Reason: "no such run"}
	}
	if err := p.CheckAndUnify(runName, c, meta); err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

type SimulationParameters struct {
	CrossSections       string // table (.csv) or LXCat file; empty selects the analytic model
	CrossSectionsFormat string
	Gas                 string

	InitialEnergy             float64 // [eV]
	GasDensity                float64 // [m^-3]
	Pressure                  float64 // [Pa]
	Temperature               float64 // [K]
	ChamberVolume             float64 // [m^3]
	WallAbsorptionProbability float64

	NElectrons    int
	MaxCollisions int
	MinEnergy     float64 // [eV]
	MaxTime       float64 // [s]
	BatchSize     int
	Seed          int64

	Scattering       string
	TraceSecondaries bool
	MaxSecondaries   int
	KeepHistory      bool
	MakeDir          bool

	_verbose bool
	_threads int
}

func (p *SimulationParameters) Verbose() bool {
	return p._verbose
}

func (p *SimulationParameters) SetVerbosity(verbose bool) {
	p._verbose = verbose
}

func (p *SimulationParameters) Threads() int {
	return p._threads
}

func (p *SimulationParameters) SetThreads(threads int) {
	p._threads = threads
}

// Scattering angle models.
const (
	ScatteringAverage   = "average"
	ScatteringIsotropic = "isotropic"
	ScatteringSurendra  = "surendra"
)

var scatteringModels = []string{ScatteringAverage, ScatteringIsotropic, ScatteringSurendra}

var crossSectionFormats = []string{
	crosssection.FormatAuto,
	crosssection.FormatCSV,
	crosssection.FormatLXCat,
	crosssection.FormatAnalytic,
	crosssection.FormatSample,
}

var defaultValues = map[string]any{ // in SI
	"Gas":                       "Ar",
	"InitialEnergy":             90.,     //[eV]
	"GasDensity":                3.22e22, //[m^-3]
	"Temperature":               300.,    //[K]
	"ChamberVolume":             1e-3,    //[m^3]
	"WallAbsorptionProbability": 0.9,
	"NElectrons":                10000,
	"MaxCollisions":             1000,
	"MinEnergy":                 0.1,  //[eV]
	"MaxTime":                   1e-6, //[s]
	"BatchSize":                 100,
	"Scattering":                ScatteringAverage,
	"MaxSecondaries":            1000,
	"MakeDir":                   true,
}

var fieldsXor = map[string][]string{
	"GasDensity": {"Pressure"},
	"Pressure":   {"GasDensity"},
}

var fieldsDerivable = map[string][]string{
	"Pressure": {"GasDensity"},
}

var valueUnits = map[string][]UnitElement{
	"ChamberVolume": {
		{Class: Length, Power: 3},
	},
	"GasDensity": {
		{Class: Length, Power: -3},
	},
	"Pressure": {
		{Class: Pressure, Power: 1},
	},
}

var calculableFields = map[string]func(*SimulationParameters, []string) []string{
	"Pressure": func(sp *SimulationParameters, definedFields []string) []string {
		if slices.Contains(definedFields, "Temperature") && sp.Temperature > 0 {
			sp.GasDensity = kinetics.GasDensity(sp.Pressure, sp.Temperature)
			return []string{"GasDensity"}
		}
		return nil
	},
}

func (runConfig *SimulationParameters) toSI(parameterNames, units []string) {
	runConfigReflect := reflect.ValueOf(runConfig).Elem()
	for _, name := range parameterNames {
		if field := runConfigReflect.FieldByName(name); field.CanFloat() {
			field.SetFloat(SI(field.Float(), valueUnits[name], units, true))
		}
	}
}

func (runConfig *SimulationParameters) checkFieldProblems(path []string, meta *toml.MetaData, globalConfig *Config) (ambiguities []error) {
	runConfigReflect := reflect.ValueOf(runConfig).Elem()
	for field, alternatives := range fieldsXor {
		if !globalConfig.isDefined(append(slices.Clone(path), field), meta) {
			continue
		}
		if runConfigReflect.FieldByName(field).Kind() == reflect.Bool && !runConfigReflect.FieldByName(field).Bool() {
			continue
		}
		for _, alternative := range alternatives {
			if globalConfig.isDefined(append(slices.Clone(path), alternative), meta) && field < alternative {
				ambiguities = append(ambiguities, &ParameterValidationError{
					Field:  strings.Join(append(slices.Clone(path), field), "."),
					Reason: "ambiguous with " + alternative,
				})
			}
		}
	}
	return
}

/*
field value priority:
1. run
2. run-calculable
3. global
4. global-calculable
5. default
*/

func (runConfig *SimulationParameters) CheckAndUnify(runName string, config *Config, meta *toml.MetaData) error {
	ambiguities := config.checkFieldProblems([]string{}, meta, config)
	ambiguities = append(ambiguities, runConfig.checkFieldProblems([]string{"Runs", runName}, meta, config)...)
	if len(ambiguities) > 0 {
		return errors.Join(ambiguities...)
	}

	var discoveredParameters []string
	exclude := make(map[string]struct{})
	local := reflect.ValueOf(runConfig).Elem()
	localType := local.Type()
	for i := range local.NumField() {
		fieldName := localType.Field(i).Name
		if config.isDefined([]string{"Runs", runName, fieldName}, meta) {
			discoveredParameters = append(discoveredParameters, fieldName)
			for _, x := range fieldsXor[fieldName] {
				exclude[x] = struct{}{}
			}
			for _, x := range fieldsDerivable[fieldName] {
				exclude[x] = struct{}{}
			}
		}
	}

	global := reflect.ValueOf(&config.SimulationParameters).Elem()
	for i := range global.NumField() {
		fieldName := localType.Field(i).Name
		if _, some := exclude[fieldName]; some || slices.Contains(discoveredParameters, fieldName) || !meta.IsDefined(fieldName) {
			continue
		}
		local.Field(i).Set(global.Field(i))
		discoveredParameters = append(discoveredParameters, fieldName)
		exclude[fieldName] = struct{}{}
		for _, x := range fieldsXor[fieldName] {
			exclude[x] = struct{}{}
		}
		for _, x := range fieldsDerivable[fieldName] {
			exclude[x] = struct{}{}
		}
	}

	runConfig.toSI(discoveredParameters, config.InputUnits)

	for fieldName, value := range defaultValues {
		if _, x := exclude[fieldName]; !x && !slices.Contains(discoveredParameters, fieldName) {
			local.FieldByName(fieldName).Set(reflect.ValueOf(value))
			discoveredParameters = append(discoveredParameters, fieldName)
		}
	}

	calculatedAnything := true
	for calculatedAnything {
		calculatedAnything = false
		for initialFieldName, calculate := range calculableFields {
			if slices.Contains(discoveredParameters, initialFieldName) {
				calculated := calculate(runConfig, discoveredParameters)
				if len(calculated) != 0 {
					calculatedAnything = true
					discoveredParameters = slices.DeleteFunc(discoveredParameters, func(elem string) bool {
						return elem == initialFieldName
					})
					discoveredParameters = append(discoveredParameters, calculated...)
				}
			}
		}
	}
	for initialFieldName := range calculableFields {
		if slices.Contains(discoveredParameters, initialFieldName) {
			return &ParameterValidationError{Field: initialFieldName, Reason: "cannot be converted: Temperature must be positive"}
		}
	}
	return nil
}

// Validate checks every parameter range. All failures are joined.
func (p *SimulationParameters) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any, reason string) {
		if !ok {
			errs = append(errs, &ParameterValidationError{Field: field, Value: value, Reason: reason})
		}
	}
	finitePositive := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

	check(finitePositive(p.InitialEnergy), "InitialEnergy", p.InitialEnergy, "must be positive")
	check(finitePositive(p.GasDensity), "GasDensity", p.GasDensity, "must be positive")
	if p.Pressure > 0 {
		check(finitePositive(p.Temperature), "Temperature", p.Temperature, "must be positive when Pressure is given")
	} else {
		check(p.Temperature >= 0 && !math.IsInf(p.Temperature, 0), "Temperature", p.Temperature, "must be non-negative")
	}
	check(finitePositive(p.ChamberVolume), "ChamberVolume", p.ChamberVolume, "must be positive")
	check(p.WallAbsorptionProbability >= 0 && p.WallAbsorptionProbability <= 1, "WallAbsorptionProbability", p.WallAbsorptionProbability, "must be within [0, 1]")
	check(p.NElectrons > 0, "NElectrons", p.NElectrons, "must be positive")
	check(p.MaxCollisions > 0, "MaxCollisions", p.MaxCollisions, "must be positive")
	check(p.MinEnergy >= 0 && !math.IsInf(p.MinEnergy, 0), "MinEnergy", p.MinEnergy, "must be non-negative")
	check(finitePositive(p.MaxTime), "MaxTime", p.MaxTime, "must be positive")
	check(p.BatchSize > 0, "BatchSize", p.BatchSize, "must be positive")
	check(p.MaxSecondaries >= 0, "MaxSecondaries", p.MaxSecondaries, "must be non-negative")
	check(p.Scattering == "" || slices.Contains(scatteringModels, p.Scattering), "Scattering", p.Scattering, fmt.Sprintf("must be one of %v", scatteringModels))
	check(slices.Contains(crossSectionFormats, strings.ToLower(p.CrossSectionsFormat)), "CrossSectionsFormat", p.CrossSectionsFormat, "unknown format")
	if _, err := constants.LookupGas(p.Gas); err != nil {
		check(false, "Gas", p.Gas, err.Error())
	}
	return errors.Join(errs...)
}

// Warnings lists plausible-but-unusual settings; they never fail a run.
func (p *SimulationParameters) Warnings() []string {
	var w []string
	if p.NElectrons > 50000 {
		w = append(w, fmt.Sprintf("%d electrons may take a long time", p.NElectrons))
	}
	if p.InitialEnergy < 1 || p.InitialEnergy > 500 {
		w = append(w, fmt.Sprintf("initial energy %g eV is outside the usual 1-500 eV range", p.InitialEnergy))
	}
	if p.GasDensity < 1e20 || p.GasDensity > 1e24 {
		w = append(w, fmt.Sprintf("gas density %g m^-3 is outside the usual 1e20-1e24 m^-3 range", p.GasDensity))
	}
	return w
}

func (p *SimulationParameters) LogWarnings(logger *slog.Logger, runName string) {
	for _, w := range p.Warnings() {
		logger.Warn(w, "run", runName)
	}
}
