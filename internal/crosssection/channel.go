package crosssection

import (
	"fmt"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

// Channel is one of the five electron-neutral collision processes.
type Channel int

const (
	Elastic Channel = iota
	ExcitationLow1
	ExcitationLow2
	ExcitationHigh
	Ionization
	NumChannels
)

// Channels lists every channel in selection order.
var Channels = [NumChannels]Channel{Elastic, ExcitationLow1, ExcitationLow2, ExcitationHigh, Ionization}

var channelNames = [NumChannels]string{
	Elastic:        "elastic",
	ExcitationLow1: "excitation_low_1",
	ExcitationLow2: "excitation_low_2",
	ExcitationHigh: "excitation_high",
	Ionization:     "ionization",
}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// Threshold is the energy a channel removes from the electron; elastic has none.
func Threshold(gas *constants.Gas, c Channel) float64 {
	switch c {
	case ExcitationLow1:
		return gas.Low1.Threshold
	case ExcitationLow2:
		return gas.Low2.Threshold
	case ExcitationHigh:
		return gas.High.Threshold
	case Ionization:
		return gas.IonizationThreshold
	}
	return 0
}

// Level returns the excitation level record behind an excitation channel.
func Level(gas *constants.Gas, c Channel) (constants.ExcitationLevel, bool) {
	switch c {
	case ExcitationLow1:
		return gas.Low1, true
	case ExcitationLow2:
		return gas.Low2, true
	case ExcitationHigh:
		return gas.High, true
	}
	return constants.ExcitationLevel{}, false
}
