package crosssection

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

// Source formats accepted by Open.
const (
	FormatAuto     = ""
	FormatCSV      = "csv"
	FormatLXCat    = "lxcat"
	FormatAnalytic = "analytic"
	FormatSample   = "sample"
)

// Open picks the cross-section source for a run. An empty path selects the
// analytic model; in auto format a .csv extension selects the delimited
// loader and anything else is read as LXCat. The mass ratio is nonzero only
// when an LXCat elastic process supplies one.
func Open(path, format string, gas *constants.Gas, logger *slog.Logger) (Source, float64, error) {
	if logger == nil {
		logger = slog.Default()
	}
	format = strings.ToLower(format)
	if format == FormatAuto {
		switch {
		case path == "":
			format = FormatAnalytic
		case strings.EqualFold(filepath.Ext(path), ".csv"):
			format = FormatCSV
		default:
			format = FormatLXCat
		}
	}
	switch format {
	case FormatAnalytic:
		logger.Debug("using analytic cross sections", "gas", gasName(gas))
		return NewAnalyticModel(gas), 0, nil
	case FormatSample:
		return SampleTable(gas), 0, nil
	case FormatCSV:
		t, err := LoadCSV(path, gas)
		if err != nil {
			return nil, 0, err
		}
		if t.ElasticDerived() {
			logger.Info("elastic column absent, using derived estimate", "path", path)
		}
		return t, 0, nil
	case FormatLXCat:
		t, massRatio, err := ImportLXCat(path, gas, logger)
		if err != nil {
			return nil, 0, err
		}
		return t, massRatio, nil
	}
	return nil, 0, fmt.Errorf("unknown cross section format %q", format)
}

func gasName(gas *constants.Gas) string {
	if gas == nil {
		return constants.Argon().Name
	}
	return gas.Name
}
