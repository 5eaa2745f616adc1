package crosssection

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wildstyl3r/lxgata"

	"github.com/wildstyl3r/argonmc/internal/constants"
)

func TestParseCSVDelimitersAndAliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"comma", "Energy,1S,2P,HIGH,IZ\n1,0,0,0,0\n100,0,0,0,1e-20\n"},
		{"semicolon reordered", "iz;high;2p;1s;energy\n0;0;0;0;1\n1e-20;0;0;0;100\n"},
		{"tab", "E\tEXCITATION_1S\tEXCITATION_2P\tEXCITATION_HIGH\tIONIZATION\n1\t0\t0\t0\t0\n100\t0\t0\t0\t1e-20\n"},
		{"whitespace with comments", "# argon\nenergy exc1s exc2p exchigh ion\n\n1 0 0 0 0\n  100   0 0 0 1e-20\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := ParseCSV(strings.NewReader(tc.input), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table.Len() != 2 {
				t.Fatalf("expected 2 rows, got %d", table.Len())
			}
			if got := table.CrossSectionsAt(100)[Ionization]; got != 1e-20 {
				t.Fatalf("expected 1e-20, got %g", got)
			}
			if !table.ElasticDerived() {
				t.Fatal("expected derived elastic")
			}
		})
	}
}

func TestParseCSVElasticColumn(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("energy,1S,2P,HIGH,IZ,EL\n1,0,0,0,0,2e-20\n2,0,0,0,0,3e-20\n"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.ElasticDerived() {
		t.Fatal("expected supplied elastic")
	}
	if got := table.CrossSectionsAt(1)[Elastic]; got != 2e-20 {
		t.Fatalf("expected 2e-20, got %g", got)
	}
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		row    int
		column string
	}{
		{"missing column", "energy,1S,2P,IZ\n1,0,0,0\n", -1, ExcitationHigh.String()},
		{"not a number", "energy,1S,2P,HIGH,IZ\n1,0,0,0,0\n2,0,x,0,0\n", 2, ExcitationLow2.String()},
		{"short row", "energy,1S,2P,HIGH,IZ\n1,0,0,0\n", 1, ""},
		{"header only", "energy,1S,2P,HIGH,IZ\n", -1, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.input), constants.Argon())
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("expected *DataFormatError, got %v", err)
			}
			if dfe.Row != tc.row || dfe.Column != tc.column {
				t.Fatalf("expected row %d column %q, got row %d column %q", tc.row, tc.column, dfe.Row, dfe.Column)
			}
			if !errors.Is(err, ErrDataFormat) {
				t.Fatal("expected error to wrap ErrDataFormat")
			}
		})
	}
}

func TestWriteCSVReloads(t *testing.T) {
	original := SampleTable(nil)
	var buf bytes.Buffer
	if err := original.WriteCSV(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded, err := ParseCSV(&buf, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.ElasticDerived() {
		t.Fatal("expected the exported elastic column to be read back")
	}
	for _, e := range original.Energies() {
		if got, want := reloaded.CrossSectionsAt(e), original.CrossSectionsAt(e); got != want {
			t.Fatalf("at %g eV expected %v, got %v", e, want, got)
		}
	}
}

func TestClassifyProcess(t *testing.T) {
	gas := constants.Argon()
	tests := []struct {
		kind      lxgata.CollisionType
		threshold float64
		want      Channel
		ok        bool
	}{
		{lxgata.ELASTIC, 0, Elastic, true},
		{lxgata.EFFECTIVE, 0, Elastic, true},
		{lxgata.IONIZATION, 15.76, Ionization, true},
		{lxgata.EXCITATION, 11.55, ExcitationLow1, true},
		{lxgata.EXCITATION, 11.83, ExcitationLow1, true},
		{lxgata.EXCITATION, 13.2, ExcitationLow2, true},
		{lxgata.EXCITATION, 14.1, ExcitationHigh, true},
		{lxgata.ATTACHMENT, 0, 0, false},
		{lxgata.ROTATION, 0, 0, false},
	}
	for _, tc := range tests {
		got, ok := ClassifyProcess(gas, tc.kind, tc.threshold)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("%s at %g eV: expected (%v, %v), got (%v, %v)", tc.kind, tc.threshold, tc.want, tc.ok, got, ok)
		}
	}
}
