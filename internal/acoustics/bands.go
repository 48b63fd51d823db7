// Package acoustics provides the frequency-domain primitives of the
// simulation: band definitions, per-surface absorption lookup, and the
// pressure/intensity/SPL conversions and air-attenuation model used while
// accumulating ray arrivals.
package acoustics

// WholeOctave lists the nominal whole-octave band center frequencies (Hz)
// from 63 Hz to 16 kHz.
var WholeOctave = []float64{63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// ThirdOctave lists the nominal third-octave band center frequencies (Hz)
// from 25 Hz to 20 kHz, a wider range than WholeOctave.
var ThirdOctave = []float64{
	25, 31.5, 40, 50, 63, 80, 100, 125, 160, 200, 250, 315, 400, 500, 630, 800,
	1000, 1250, 1600, 2000, 2500, 3150, 4000, 5000, 6300, 8000, 10000, 12500,
	16000, 20000,
}

// Octave returns the nominal whole-octave centers in [start, end] inclusive,
// strictly increasing (spec §4.B, §8 "octave(a,b)" law).
func Octave(start, end float64) []float64 {
	return filterRange(WholeOctave, start, end)
}

// ThirdOctaveRange returns the nominal third-octave centers in [start, end]
// inclusive.
func ThirdOctaveRange(start, end float64) []float64 {
	return filterRange(ThirdOctave, start, end)
}

func filterRange(nominal []float64, start, end float64) []float64 {
	out := make([]float64, 0, len(nominal))
	for _, f := range nominal {
		if f >= start && f <= end {
			out = append(out, f)
		}
	}
	return out
}

// EngineBands are the band centers the tracer and filter bank actually
// operate on, 63 Hz through 8 kHz inclusive (spec §4.B): 63, 125, 250, 500,
// 1000, 2000, 4000, 8000.
var EngineBands = Octave(63, 8000)
