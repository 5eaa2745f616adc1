package crosssection

import (
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"
)

var lxcatFixture = filepath.Join("testdata", "argon_lxcat.txt")

func TestImportLXCat(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table, massRatio, err := ImportLXCat(lxcatFixture, nil, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if massRatio != 1.36e-5 {
		t.Fatalf("expected mass ratio 1.36e-5, got %g", massRatio)
	}
	if table.Len() != GridPoints || table.ElasticDerived() {
		t.Fatalf("expected %d points with an elastic column, got %d", GridPoints, table.Len())
	}
	lo, hi := table.Range()
	if math.Abs(lo-GridMinEnergy) > 1e-12 || math.Abs(hi-GridMaxEnergy) > 1e-9 {
		t.Fatalf("expected range [%v, %v], got [%g, %g]", GridMinEnergy, GridMaxEnergy, lo, hi)
	}

	want := Sigmas{
		Elastic:        1e-20,
		ExcitationLow1: 3e-21,
		ExcitationLow2: 0,
		ExcitationHigh: 5e-22,
		Ionization:     3e-21,
	}
	got := table.CrossSectionsAt(500)
	for _, c := range Channels {
		if math.Abs(got[c]-want[c]) > 1e-30 {
			t.Fatalf("%v at 500 eV: expected %g, got %g", c, want[c], got[c])
		}
	}

	low := table.CrossSectionsAt(5)
	if low[Elastic] != 1e-20 || low.Total() != low[Elastic] {
		t.Fatalf("expected only elastic at 5 eV, got %v", low)
	}
}

func TestImportLXCatErrors(t *testing.T) {
	if _, _, err := ImportLXCat(filepath.Join("testdata", "missing.txt"), nil, nil); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestOpenSelectsLXCat(t *testing.T) {
	src, massRatio, err := Open(lxcatFixture, FormatAuto, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*Table); !ok || massRatio != 1.36e-5 {
		t.Fatalf("expected an LXCat table with its mass ratio, got %T and %g", src, massRatio)
	}
}
