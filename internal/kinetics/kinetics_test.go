package kinetics

import (
	"math"
	"testing"
)

func TestVelocityRoundTrip(t *testing.T) {
	for _, energy := range []float64{0, 0.1, 1, 15.76, 90, 1000} {
		got := EnergyFromVelocity(Velocity(energy))
		if math.Abs(got-energy) > 1e-9*math.Max(1, energy) {
			t.Fatalf("expected %g eV after round trip, got %g", energy, got)
		}
	}
}

func TestVelocityKnownValue(t *testing.T) {
	// 1 eV electron moves at ~5.93e5 m/s
	v := Velocity(1)
	if math.Abs(v-5.93e5)/5.93e5 > 1e-3 {
		t.Fatalf("expected ~5.93e5 m/s, got %g", v)
	}
}

func TestMeanFreePathZero(t *testing.T) {
	if !math.IsInf(MeanFreePath(0, 1e-20), 1) {
		t.Fatal("expected +Inf for zero density")
	}
	if !math.IsInf(MeanFreePath(1e22, 0), 1) {
		t.Fatal("expected +Inf for zero cross section")
	}
	if got := MeanFreePath(1e22, 1e-20); math.Abs(got-0.01) > 1e-15 {
		t.Fatalf("expected 0.01 m, got %g", got)
	}
}

func TestCollisionFrequency(t *testing.T) {
	n, sigma := 3.22e22, 1e-20
	want := n * sigma * Velocity(10)
	if got := CollisionFrequency(10, n, sigma); got != want {
		t.Fatalf("expected %g, got %g", want, got)
	}
	if got := ChannelFrequency(10, 15.76, n, sigma); got != 0 {
		t.Fatalf("expected zero below threshold, got %g", got)
	}
	if got := MeanCollisionTime(10, n, sigma); math.Abs(got*want-1) > 1e-12 {
		t.Fatalf("expected collision time to invert the frequency, got %g", got)
	}
}

func TestPlasmaParameters(t *testing.T) {
	// 1e16 m^-3 -> f_pe ~ 0.9 GHz
	omega := PlasmaFrequency(1e16)
	if f := omega / (2 * math.Pi); math.Abs(f-8.98e8)/8.98e8 > 1e-2 {
		t.Fatalf("expected ~8.98e8 Hz, got %g", f)
	}
	// 1 eV, 1e16 m^-3 -> ~74 um
	if d := DebyeLength(1, 1e16); math.Abs(d-7.43e-5)/7.43e-5 > 1e-2 {
		t.Fatalf("expected ~7.43e-5 m, got %g", d)
	}
	if got := ElectronTemperature(3); got != 2 {
		t.Fatalf("expected 2 eV, got %g", got)
	}
	if n := GasDensity(101325, 300); math.Abs(n-2.446e25)/2.446e25 > 1e-3 {
		t.Fatalf("expected ~2.446e25 m^-3, got %g", n)
	}
}
