package model

import (
	"flag"
	"io"
	"math"
	"strconv"

	"github.com/wildstyl3r/argonmc/internal/crosssection"
)

type DataItem struct {
	saveFlag   *bool
	fileSuffix string
}

type TableDataItem struct {
	DataItem
	columnNames []string
	rows        func(*DataExtractor) ([][]string, error)

	// write replaces columnNames and rows when the file has its own layout
	write func(*DataExtractor, io.Writer) error
}

type DataFlags struct {
	all        *bool
	tables     map[string]TableDataItem
	outputPath string
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func electronRows(electrons []*Electron) (rows [][]string) {
	for i, e := range electrons {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(e.ID),
			strconv.Itoa(e.Generation),
			formatFloat(e.InitialEnergy),
			formatFloat(e.Energy),
			strconv.Itoa(e.Ionizations),
			strconv.Itoa(e.Excitations),
			strconv.Itoa(e.Collisions),
			strconv.Itoa(e.WallReflections),
			formatFloat(e.Distance),
			formatFloat(e.Time),
			e.State.String(),
			e.Reason.String(),
		})
	}
	return
}

var electronColumns = []string{
	"index", "electron", "generation", "initial energy (eV)", "final energy (eV)",
	"ionizations", "excitations", "collisions", "wall reflections",
	"distance (m)", "time (s)", "state", "reason",
}

// NewDataFlags registers the output selection flags on fs.
func NewDataFlags(fs *flag.FlagSet) DataFlags {
	return DataFlags{
		all: fs.Bool("all", false, "save every available output"),
		tables: map[string]TableDataItem{
			"Summary": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("summary", true, "save population statistics"),
					fileSuffix: "summary",
				},
				columnNames: []string{"quantity", "value"},
				rows: func(de *DataExtractor) ([][]string, error) {
					return de.summaryRows(), nil
				},
			},
			"Ionization histogram": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("ih", true, "save ionization-count histogram"),
					fileSuffix: "ih",
				},
				columnNames: []string{"ionizations", "electrons", "fraction"},
				rows: func(de *DataExtractor) (rows [][]string, err error) {
					n := float64(de.result.Stats.Electrons)
					for k, count := range de.result.Stats.Histogram {
						rows = append(rows, []string{strconv.Itoa(k), strconv.Itoa(count), formatFloat(float64(count) / n)})
					}
					return
				},
			},
			"Electrons": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("el", false, "save per-electron results"),
					fileSuffix: "el",
				},
				columnNames: electronColumns,
				rows: func(de *DataExtractor) ([][]string, error) {
					return electronRows(de.result.Electrons), nil
				},
			},
			"Secondaries": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("sec", false, "save traced secondary electrons"),
					fileSuffix: "sec",
				},
				columnNames: electronColumns,
				rows: func(de *DataExtractor) ([][]string, error) {
					return electronRows(de.result.Secondaries), nil
				},
			},
			"Events": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("ev", false, "save the collision event log (keeps history in memory)"),
					fileSuffix: "ev",
				},
				columnNames: []string{"electron", "event", "channel", "energy before (eV)", "energy after (eV)", "secondary (eV)", "x (m)", "y (m)", "z (m)", "time (s)"},
				rows: func(de *DataExtractor) (rows [][]string, err error) {
					for _, e := range de.result.Electrons {
						for j, ev := range e.Events {
							rows = append(rows, []string{
								strconv.Itoa(e.ID),
								strconv.Itoa(j),
								ev.Channel.String(),
								formatFloat(ev.EnergyBefore),
								formatFloat(ev.EnergyAfter),
								formatFloat(ev.Secondary),
								formatFloat(ev.Position.X),
								formatFloat(ev.Position.Y),
								formatFloat(ev.Position.Z),
								formatFloat(ev.Time),
							})
						}
					}
					return
				},
			},
			"Cross sections": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("cs", false, "save the cross sections used, in the loadable table layout"),
					fileSuffix: "cs",
				},
				write: func(de *DataExtractor, w io.Writer) error {
					table, err := de.table()
					if err != nil {
						return err
					}
					return table.WriteCSV(w)
				},
			},
			"Cross section summary": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("css", false, "save per-channel cross section extremes and onsets"),
					fileSuffix: "css",
				},
				columnNames: []string{"channel", "max (m^2)", "average (m^2)", "peak energy (eV)", "refined peak energy (eV)", "onset (eV)"},
				rows: func(de *DataExtractor) (rows [][]string, err error) {
					table, err := de.table()
					if err != nil {
						return nil, err
					}
					summary := table.Summary()
					for _, c := range crosssection.Channels {
						cs := summary.Channels[c]
						refined := math.NaN()
						if cs.Max > 0 {
							refined = crosssection.Peak(de.model.Source, c, summary.MinEnergy, summary.MaxEnergy)
						}
						rows = append(rows, []string{
							c.String(),
							formatFloat(cs.Max),
							formatFloat(cs.Average),
							formatFloat(cs.PeakEnergy),
							formatFloat(refined),
							formatFloat(cs.Onset),
						})
					}
					return
				},
			},
			"BEB comparison": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("beb", false, "save the BEB to tabulated ionization ratio"),
					fileSuffix: "beb",
				},
				columnNames: []string{"energy (eV)", "table (m^2)", "BEB (m^2)", "ratio"},
				rows: func(de *DataExtractor) (rows [][]string, err error) {
					table, err := de.table()
					if err != nil {
						return nil, err
					}
					beb := crosssection.NewAnalyticModel(de.model.Gas)
					for _, r := range crosssection.CompareIonization(table, beb, table.Energies()) {
						rows = append(rows, []string{formatFloat(r.Energy), formatFloat(r.Table), formatFloat(r.BEB), formatFloat(r.Ratio)})
					}
					return
				},
			},
		},
	}
}

// NeedsHistory reports whether an enabled output reads the event log.
func (df *DataFlags) NeedsHistory() bool {
	return *df.all || *df.tables["Events"].saveFlag
}

func (df *DataFlags) SetOutputPath(path string) {

	if path != "" && path[len(path)-1] != '/' {
		df.outputPath = path + "/"
	} else {
		df.outputPath = path
	}
}

func (df *DataFlags) GetOutputPath() string {
	return df.outputPath
}
