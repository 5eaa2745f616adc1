package config

import (
	"fmt"

	"github.com/wildstyl3r/argonmc/internal/utils"
)

var unitToSI = map[string]float64{
	"Pa":    1,                     // [Pa]
	"kPa":   1e3,                   // [Pa]
	"bar":   1e5,                   // [Pa]
	"mbar":  1e2,                   // [Pa]
	"Torr":  101325. / 760.,        // [Pa]
	"mTorr": 101325. / 760. * 1e-3, // [Pa]
	"m":     1,                     // [m]
	"cm":    1e-2,                  // [m]
	"mm":    1e-3,                  // [m]
}

type UnitClass int

const (
	Length UnitClass = iota
	Pressure
)

var unitsInClass = map[UnitClass][]string{
	Length:   {"mm", "cm", "m"},
	Pressure: {"mTorr", "Torr", "mbar", "bar", "kPa", "Pa"},
}

var classesOfUnits = map[string]UnitClass{
	"Pa":    Pressure,
	"kPa":   Pressure,
	"bar":   Pressure,
	"mbar":  Pressure,
	"Torr":  Pressure,
	"mTorr": Pressure,
	"m":     Length,
	"cm":    Length,
	"mm":    Length,
}

type UnitElement = struct {
	Class UnitClass
	Power int
}

var defaultUnits = []string{"m", "Pa"}

// checkUnits appends the SI default for every class the list leaves out.
// Two units of one class, or an unknown unit, are conflicts.
func checkUnits(units []string) (extended, conflicts []string) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			conflicts = append(conflicts, unit)
			continue
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string(nil), units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// SI converts v expressed in units to SI (direct) or back (inverse).
func SI(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for i := range classes {
		uc := classes[i]
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		absPower := utils.IntAbs(uc.Power)
		if direct == (uc.Power > 0) {
			for range absPower {
				v *= unitToSI[*unit]
			}
		} else {
			for range absPower {
				v /= unitToSI[*unit]
			}
		}
	}
	return v
}

func unitConflictError(kind string, conflicts []string) error {
	return &ParameterValidationError{Field: "InputUnits", Value: conflicts, Reason: fmt.Sprintf("%s unit conflict", kind)}
}
