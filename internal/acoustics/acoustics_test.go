package acoustics

import (
	"math"
	"testing"
)

func TestOctaveRangeIsSubsetAndIncreasing(t *testing.T) {
	got := Octave(63, 4000)
	want := []float64{63, 125, 250, 500, 1000, 2000, 4000}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, v := range got {
		if v != want[i] {
			t.Errorf("index %d: got %v, want %v", i, v, want[i])
		}
		if v < 63 || v > 4000 {
			t.Errorf("value %v outside requested range", v)
		}
		if i > 0 && got[i] <= got[i-1] {
			t.Errorf("octave values must be strictly increasing, got %v", got)
		}
	}
}

func TestInterpolateLogEndpoints(t *testing.T) {
	if got := InterpolateLog(100, 1, 1000, 2, 100); got != 1 {
		t.Errorf("at x1, got %v want 1", got)
	}
	if got := InterpolateLog(100, 1, 1000, 2, 1000); got != 2 {
		t.Errorf("at x2, got %v want 2", got)
	}
}

func TestInterpolateLogMonotone(t *testing.T) {
	y1, y2 := 0.1, 0.9
	got := InterpolateLog(100, y1, 1000, y2, 300)
	if got < y1 || got > y2 {
		t.Errorf("interpolated value %v not between %v and %v", got, y1, y2)
	}
}

func TestAbsorptionFunctionClamps(t *testing.T) {
	m := Material{Frequencies: []float64{100, 1000}, Absorption: []float64{0.2, 0.8}}
	if got := m.AbsorptionFunction(10); got != 0.2 {
		t.Errorf("below lowest band: got %v want 0.2", got)
	}
	if got := m.AbsorptionFunction(10000); got != 0.8 {
		t.Errorf("above highest band: got %v want 0.8", got)
	}
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	if len(m.Frequencies) != 9 {
		t.Fatalf("expected 9 octave bands, got %d", len(m.Frequencies))
	}
	for _, a := range m.Absorption {
		if a != 0.01 {
			t.Errorf("expected 0.01 absorption, got %v", a)
		}
	}
}

func TestUnitRoundTrips(t *testing.T) {
	p := 0.05
	if got := SPLToPressure(PressureToSPL(p)); math.Abs(got-p)/p > 1e-5 {
		t.Errorf("SPL round trip: got %v want %v", got, p)
	}
	i := PressureToIntensity(p, Z0)
	if got := IntensityToPressure(i, Z0); math.Abs(got-p)/p > 1e-5 {
		t.Errorf("intensity round trip: got %v want %v", got, p)
	}
}

func TestAirAttenuationMonotoneIncreasing(t *testing.T) {
	a := DefaultAtmosphere()
	prev := -math.MaxFloat64
	for _, f := range Octave(63, 8000) {
		v := AirAttenuation(f, a)
		if v <= prev {
			t.Errorf("air attenuation not strictly increasing at %v Hz: %v <= %v", f, v, prev)
		}
		prev = v
	}
}

func TestAtmosphericValidation(t *testing.T) {
	bad := AtmosphericConditions{TemperatureC: 20, HumidityPct: -1, PressurePa: 101325}
	if err := bad.Validate(); err != ErrNegativeHumidity {
		t.Errorf("expected ErrNegativeHumidity, got %v", err)
	}
	bad2 := AtmosphericConditions{TemperatureC: -300, HumidityPct: 40, PressurePa: 101325}
	if err := bad2.Validate(); err != ErrNonPositiveTemperature {
		t.Errorf("expected ErrNonPositiveTemperature, got %v", err)
	}
}
