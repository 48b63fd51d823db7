package acoustics

import "math"

// MaterialFrequencyClamp is the upper bound the path tracer applies before
// querying a material's absorption_function, to avoid extrapolating the
// measured bands beyond their calibrated range (spec §4.M, §9).
const MaterialFrequencyClamp = 8000

// Material is the frequency-indexed absorption coefficient table attached
// to every scene node (spec §3). Frequencies and Absorption are parallel,
// equal-length, strictly increasing in frequency.
type Material struct {
	Frequencies []float64
	Absorption  []float64
}

// DefaultMaterial is nine octave bands 63..16000 Hz, all at a 0.01
// absorption coefficient (spec §3).
func DefaultMaterial() Material {
	freqs := Octave(63, 16000)
	abs := make([]float64, len(freqs))
	for i := range abs {
		abs[i] = 0.01
	}
	return Material{Frequencies: freqs, Absorption: abs}
}

// AbsorptionFunction returns the interpolated absorption coefficient at
// frequency f (spec §4.M): log-frequency linear interpolation between the
// bracketing bands, clamped flat below the lowest and above the highest.
func (m Material) AbsorptionFunction(f float64) float64 {
	return m.absorptionFunction(f)
}

func (m Material) absorptionFunction(f float64) float64 {
	n := len(m.Frequencies)
	i := 0
	for i < n && f > m.Frequencies[i] {
		i++
	}
	if i > 0 && i < n {
		x1, y1 := m.Frequencies[i-1], m.Absorption[i-1]
		x2, y2 := m.Frequencies[i], m.Absorption[i]
		return InterpolateLog(x1, y1, x2, y2, f)
	}
	if i == 0 {
		return m.Absorption[0]
	}
	return m.Absorption[n-1]
}

// InterpolateLog performs log-frequency linear interpolation between two
// points (x1,y1) and (x2,y2), evaluated at xi (spec §4.M, §8).
func InterpolateLog(x1, y1, x2, y2, xi float64) float64 {
	return y1 + (math.Log10(xi)-math.Log10(x1))/(math.Log10(x2)-math.Log10(x1))*(y2-y1)
}

// ClampedAbsorption is the tracer/accumulator's material query: frequencies
// above MaterialFrequencyClamp are treated as exactly the clamp (spec §4.M,
// §4.A step 5).
func (m Material) ClampedAbsorption(f float64) float64 {
	if f > MaterialFrequencyClamp {
		f = MaterialFrequencyClamp
	}
	return m.absorptionFunction(f)
}
