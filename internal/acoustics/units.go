package acoustics

import "math"

// Standard acoustic references used throughout the conversions below (spec
// §4.U).
const (
	PRef = 2e-5  // reference pressure, Pa
	IRef = 1e-12 // reference intensity, W/m^2
	WRef = 1e-12 // reference power, W

	// Z0 is the characteristic acoustic impedance this system uses
	// (spec §4.U): 400 N·s/m³.
	Z0 = 400.0
)

// PressureToSPL converts sound pressure (Pa) to SPL (dB): Lp = 20*log10(p/p_ref).
func PressureToSPL(p float64) float64 {
	return 20 * math.Log10(p/PRef)
}

// SPLToPressure converts SPL (dB) to sound pressure (Pa): p = p_ref*10^(Lp/20).
func SPLToPressure(lp float64) float64 {
	return PRef * math.Pow(10, lp/20)
}

// PressureToIntensity converts pressure (Pa) to intensity (W/m^2) at
// characteristic impedance z0: I = p^2/z0.
func PressureToIntensity(p, z0 float64) float64 {
	return (p * p) / z0
}

// IntensityToPressure converts intensity (W/m^2) to pressure (Pa) at
// characteristic impedance z0: p = sqrt(I*z0).
func IntensityToPressure(i, z0 float64) float64 {
	return math.Sqrt(i * z0)
}

// PressureToSPLVec, SPLToPressureVec, PressureToIntensityVec, and
// IntensityToPressureVec apply the scalar conversions element-wise over a
// per-band vector, matching the original implementation's vectorized
// conversion helpers.
func PressureToSPLVec(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = PressureToSPL(v)
	}
	return out
}

func SPLToPressureVec(lp []float64) []float64 {
	out := make([]float64, len(lp))
	for i, v := range lp {
		out[i] = SPLToPressure(v)
	}
	return out
}

func PressureToIntensityVec(p []float64, z0 float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = PressureToIntensity(v, z0)
	}
	return out
}

func IntensityToPressureVec(i []float64, z0 float64) []float64 {
	out := make([]float64, len(i))
	for idx, v := range i {
		out[idx] = IntensityToPressure(v, z0)
	}
	return out
}
