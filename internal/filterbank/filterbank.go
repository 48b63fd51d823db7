// Package filterbank builds the perfect-reconstruction bandpass filter bank
// used to reshape each octave-band accumulation buffer before the bands are
// summed into the final impulse response (spec §4.F).
package filterbank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// steepness is the band-edge shape parameter l; spec §4.F fixes it at 0.
const steepness = 0.0

// FilterBank holds one precomputed magnitude mask per band, built for a
// fixed buffer length L and sample rate. Masks are computed once by New and
// reused by every Apply call; they depend on the band layout, sample rate and
// length, not on the buffer contents.
type FilterBank struct {
	sampleRate int
	length     int
	masks      [][]float64 // [band][bin]
	fft        *fourier.CmplxFFT
}

// Config parameterizes filter bank construction (spec §4.F and §7's
// configuration-error rule on Overlap).
type Config struct {
	MinFreq    float64 // f_min, Hz
	MaxFreq    float64 // f_max, Hz
	Bands      int     // B
	Overlap    float64 // must be in [0, 1]
	SampleRate int
	Length     int // L, samples per band buffer
}

// New builds a FilterBank for the given configuration, computing band edges
// via geometric spacing, the shared transition-width factor, and one
// mirrored magnitude mask per band (spec §4.F).
func New(cfg Config) (*FilterBank, error) {
	if cfg.Overlap < 0 || cfg.Overlap > 1 {
		return nil, fmt.Errorf("filterbank: overlap %v outside [0,1]", cfg.Overlap)
	}
	if cfg.Bands <= 0 {
		return nil, fmt.Errorf("filterbank: bands must be positive")
	}
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("filterbank: length must be positive")
	}

	edges := make([]float64, cfg.Bands+1)
	for b := 0; b <= cfg.Bands; b++ {
		edges[b] = bandEdgeFrequency(float64(b), float64(cfg.Bands), cfg.MinFreq, cfg.MaxFreq)
	}

	wf := maxWidthFactor(cfg.MinFreq, cfg.MaxFreq, 1.0/float64(cfg.Bands)) * cfg.Overlap

	freqs := make([]float64, cfg.Length)
	for i := range freqs {
		freqs[i] = float64(i) * float64(cfg.SampleRate) / float64(cfg.Length)
	}

	masks := make([][]float64, cfg.Bands)
	for b := 0; b < cfg.Bands; b++ {
		mask := make([]float64, cfg.Length)
		for i, f := range freqs {
			mask[i] = bandpassMagnitude(f, edges[b], edges[b+1], wf)
		}
		mirrorMask(mask)
		masks[b] = mask
	}

	return &FilterBank{
		sampleRate: cfg.SampleRate,
		length:     cfg.Length,
		masks:      masks,
		fft:        fourier.NewCmplxFFT(cfg.Length),
	}, nil
}

// Bands returns the number of bands this filter bank was built for.
func (fb *FilterBank) Bands() int { return len(fb.masks) }

// Apply filters one real-valued time-domain buffer per band, in place
// (logically — a new slice is returned per band): forward FFT, multiply by
// the band's magnitude mask, inverse FFT, keep the real part (spec §4.F
// "Filtering procedure").
func (fb *FilterBank) Apply(bandSamples [][]float64) ([][]float64, error) {
	if len(bandSamples) != len(fb.masks) {
		return nil, fmt.Errorf("filterbank: got %d band buffers, want %d", len(bandSamples), len(fb.masks))
	}

	out := make([][]float64, len(bandSamples))
	buf := make([]complex128, fb.length)

	for b, samples := range bandSamples {
		if len(samples) != fb.length {
			return nil, fmt.Errorf("filterbank: band %d has length %d, want %d", b, len(samples), fb.length)
		}
		for i, s := range samples {
			buf[i] = complex(s, 0)
		}

		coeffs := fb.fft.Coefficients(nil, buf)
		mask := fb.masks[b]
		for j := range coeffs {
			coeffs[j] *= complex(mask[j], 0)
		}

		timeDomain := fb.fft.Sequence(nil, coeffs)
		real := make([]float64, fb.length)
		for i, c := range timeDomain {
			real[i] = realPart(c)
		}
		out[b] = real
	}
	return out, nil
}

func realPart(c complex128) float64 { return float64(real(c)) }

// mirrorMask mirrors bins above Nyquist onto their reflection, matching the
// reconstruction filter's symmetric real-FFT mask construction: bin j > L/2
// receives the mask value that bin L-j had (spec §4.F).
func mirrorMask(mask []float64) {
	n := len(mask)
	half := n / 2
	for j := half + 1; j < n; j++ {
		mask[j] = mask[n-j]
	}
}

// maxWidthFactor computes (ρ^step - 1)/(ρ^step + 1) with ρ = max/min of the
// [minFreq,maxFreq] range (spec §4.F).
func maxWidthFactor(minFreq, maxFreq, step float64) float64 {
	rho := math.Max(minFreq, maxFreq) / math.Min(minFreq, maxFreq)
	base := math.Pow(rho, step)
	return (base - 1) / (base + 1)
}

// bandEdgeFrequency computes edge(b) = f_min * (f_max/f_min)^(b/bands),
// spanning the geometric [minFreq, maxFreq] range (spec §4.F).
func bandEdgeFrequency(band, bands, minFreq, maxFreq float64) float64 {
	r0 := math.Min(minFreq, maxFreq)
	r1 := math.Max(minFreq, maxFreq)
	return r0 * math.Pow(r1/r0, band/bands)
}

// bandEdgeShape implements spec §4.F's φ(p,P,l) recursion, with l fixed at
// the system's steepness of 0.
func bandEdgeShape(relativeFreq, relativeWidth, l float64) float64 {
	if l != 0 {
		return math.Sin(math.Pi * bandEdgeShape(relativeFreq, relativeWidth, l-1) / 2)
	}
	return ((relativeFreq / relativeWidth) + 1) / 2
}

// lowerBandEdge is the rising (sin²) transition shape used by the high-pass
// half of a band's magnitude response.
func lowerBandEdge(relativeFreq, relativeWidth, l float64) float64 {
	if relativeWidth == 0 {
		if relativeFreq >= 0 {
			return 1
		}
		return 0
	}
	s := math.Sin(math.Pi * bandEdgeShape(relativeFreq, relativeWidth, l) / 2)
	return s * s
}

// upperBandEdge is the falling (cos²) transition shape used by the low-pass
// half of a band's magnitude response.
func upperBandEdge(relativeFreq, relativeWidth, l float64) float64 {
	if relativeWidth == 0 {
		if relativeFreq < 0 {
			return 1
		}
		return 0
	}
	c := math.Cos(math.Pi * bandEdgeShape(relativeFreq, relativeWidth, l) / 2)
	return c * c
}

func lopassMagnitude(f, edge, widthFactor float64) float64 {
	absoluteWidth := edge * widthFactor
	switch {
	case f < edge-absoluteWidth:
		return 1
	case f < edge+absoluteWidth:
		return upperBandEdge(f-edge, absoluteWidth, steepness)
	default:
		return 0
	}
}

func hipassMagnitude(f, edge, widthFactor float64) float64 {
	absoluteWidth := edge * widthFactor
	switch {
	case f < edge-absoluteWidth:
		return 0
	case f < edge+absoluteWidth:
		return lowerBandEdge(f-edge, absoluteWidth, steepness)
	default:
		return 1
	}
}

// bandpassMagnitude is |H_b(f)| = hipass(f, low) * lopass(f, high) (spec §4.F).
func bandpassMagnitude(f, lowEdge, highEdge, widthFactor float64) float64 {
	return lopassMagnitude(f, highEdge, widthFactor) * hipassMagnitude(f, lowEdge, widthFactor)
}
