package crosssection

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

const energyColumn = "energy"

var columnAliases = map[string][]string{
	energyColumn:            {"ENERGY", "E"},
	ExcitationLow1.String(): {"1S", "EXCITATION_1S", "EXC1S", "EXCITATION_LOW_1"},
	ExcitationLow2.String(): {"2P", "EXCITATION_2P", "EXC2P", "EXCITATION_LOW_2"},
	ExcitationHigh.String(): {"HIGH", "EXCITATION_HIGH", "EXCHIGH"},
	Ionization.String():     {"IZ", "IONIZATION", "ION"},
	Elastic.String():        {"ELASTIC", "EL"},
}

// LoadCSV reads a delimited cross-section file from disk.
func LoadCSV(path string, gas *constants.Gas) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening cross sections: %w", err)
	}
	defer file.Close()
	return ParseCSV(file, gas)
}

// ParseCSV reads a header row naming the columns energy, 1S, 2P, HIGH, IZ
// (optionally ELASTIC) in any order and case, followed by numeric rows.
// Comma, semicolon, tab or whitespace delimiters are accepted; blank lines
// and lines starting with '#' are skipped.
func ParseCSV(r io.Reader, gas *constants.Gas) (*Table, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading cross sections: %w", err)
	}
	if len(lines) < 2 {
		return nil, formatError("expected a header and at least one data row, got %d lines", len(lines))
	}

	delimiter := detectDelimiter(lines[0])
	header := splitRow(lines[0], delimiter)

	index := map[string]int{}
	for name, aliases := range columnAliases {
		if i := findColumn(header, aliases); i >= 0 {
			index[name] = i
		} else if name != Elastic.String() {
			return nil, &DataFormatError{Reason: "required column not found", Row: -1, Column: name}
		}
	}

	energy := make([]float64, 0, len(lines)-1)
	columns := Columns{}
	for _, c := range Channels {
		if _, ok := index[c.String()]; ok {
			columns[c] = make([]float64, 0, len(lines)-1)
		}
	}
	for row, line := range lines[1:] {
		fields := splitRow(line, delimiter)
		if len(fields) != len(header) {
			return nil, &DataFormatError{
				Reason: fmt.Sprintf("has %d values, expected %d", len(fields), len(header)),
				Row:    row + 1,
			}
		}
		value := func(name string) (float64, error) {
			v, err := strconv.ParseFloat(fields[index[name]], 64)
			if err != nil {
				return 0, &DataFormatError{Reason: fmt.Sprintf("not a number: %q", fields[index[name]]), Row: row + 1, Column: name}
			}
			return v, nil
		}
		e, err := value(energyColumn)
		if err != nil {
			return nil, err
		}
		energy = append(energy, e)
		for c := range columns {
			v, err := value(c.String())
			if err != nil {
				return nil, err
			}
			columns[c] = append(columns[c], v)
		}
	}
	return NewTable(gas, energy, columns)
}

func detectDelimiter(header string) rune {
	for _, d := range []rune{',', ';', '\t'} {
		if strings.ContainsRune(header, d) {
			return d
		}
	}
	return ' '
}

func splitRow(line string, delimiter rune) []string {
	var fields []string
	if delimiter == ' ' {
		fields = strings.Fields(line)
	} else {
		fields = strings.Split(line, string(delimiter))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func findColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if strings.EqualFold(h, alias) {
				return i
			}
		}
	}
	return -1
}

// WriteCSV writes the table back in the loader's column layout.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"Energy", "1S", "2P", "HIGH", "IZ", "ELASTIC"}}
	order := []Channel{ExcitationLow1, ExcitationLow2, ExcitationHigh, Ionization, Elastic}
	for i, e := range t.energy {
		row := []string{strconv.FormatFloat(e, 'g', -1, 64)}
		for _, c := range order {
			row = append(row, strconv.FormatFloat(t.sigma[c][i], 'g', -1, 64))
		}
		rows = append(rows, row)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}
