// Package ir assembles a set of successful ray paths into a final impulse
// response: per-band accumulation, the frequency-dependent reflection and
// air-attenuation losses along each path, reconstruction filtering, and
// peak normalization (spec §4.A).
package ir

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/gregzanch/rirtrace/internal/acoustics"
	"github.com/gregzanch/rirtrace/internal/filterbank"
	"github.com/gregzanch/rirtrace/internal/scene"
	"github.com/gregzanch/rirtrace/internal/tracer"
)

// Config parameterizes impulse response assembly (spec §4.A, §6, §7).
type Config struct {
	SampleRate    int
	SpeedOfSound  float64
	InitialSPL    float64
	SafetyMargin  float64 // seconds appended past the last arrival
	Atmosphere    acoustics.AtmosphericConditions
	FilterOverlap float64
}

// DefaultConfig matches the original implementation's constants.
func DefaultConfig() Config {
	return Config{
		SampleRate:    44100,
		SpeedOfSound:  343,
		InitialSPL:    100,
		SafetyMargin:  0.05,
		Atmosphere:    acoustics.DefaultAtmosphere(),
		FilterOverlap: 1.0,
	}
}

// Assemble turns a set of receiver-reaching ray paths into a single
// peak-normalized impulse response sampled at cfg.SampleRate (spec §4.A).
func Assemble(root *scene.Node, paths []tracer.RayPath, cfg Config) ([]float64, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("ir: no ray paths reached the receiver")
	}

	sorted := make([]tracer.RayPath, len(paths))
	copy(sorted, paths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })

	frequencies := acoustics.EngineBands
	totalTime := sorted[len(sorted)-1].TotalTime(cfg.SpeedOfSound) + cfg.SafetyMargin

	// Doubled so the reconstruction filter's circular convolution doesn't
	// wrap the tail of the response back onto its head (spec §4.A, §4.F).
	numSamples := int(math.Floor(float64(cfg.SampleRate)*totalTime) * 2)
	if numSamples <= 0 {
		return nil, fmt.Errorf("ir: computed non-positive sample count")
	}

	samples := make([][]float64, len(frequencies))
	for b := range samples {
		samples[b] = make([]float64, numSamples)
	}

	initialSPLs := make([]float64, len(frequencies))
	for i := range initialSPLs {
		initialSPLs[i] = cfg.InitialSPL
	}

	rng := rand.New(rand.NewPCG(0x9e3779b97f4a7c15, 0xbf58476d1ce4e5b9))
	for _, path := range sorted {
		sign := 1.0
		if rng.Float64() < 0.5 {
			sign = -1.0
		}

		t := path.TotalTime(cfg.SpeedOfSound)
		pressures := arrivalPressure(root, initialSPLs, frequencies, path, cfg.Atmosphere)

		sampleIndex := int(math.Floor(t * float64(cfg.SampleRate)))
		if sampleIndex < 0 || sampleIndex >= numSamples {
			continue
		}
		for b, p := range pressures {
			samples[b][sampleIndex] += p * sign
		}
	}

	fb, err := filterbank.New(filterbank.Config{
		MinFreq:    acoustics.WholeOctave[0],
		MaxFreq:    acoustics.WholeOctave[len(acoustics.WholeOctave)-1],
		Bands:      len(frequencies),
		Overlap:    cfg.FilterOverlap,
		SampleRate: cfg.SampleRate,
		Length:     numSamples,
	})
	if err != nil {
		return nil, fmt.Errorf("ir: building filter bank: %w", err)
	}

	filtered, err := fb.Apply(samples)
	if err != nil {
		return nil, fmt.Errorf("ir: filtering bands: %w", err)
	}

	// The second half of the doubled buffer is discarded now that filtering
	// is done (spec §4.A).
	signal := make([]float64, numSamples/2)
	for _, band := range filtered {
		for j := range signal {
			signal[j] += band[j]
		}
	}
	max := 0.0
	for _, v := range signal {
		if abs := math.Abs(v); abs > max {
			max = abs
		}
	}
	if max > 0 {
		for i := range signal {
			signal[i] /= max
		}
	}

	return signal, nil
}

// arrivalPressure computes the per-band pressure a ray path delivers at the
// receiver: start from a flat InitialSPL, multiply intensities by each
// intermediate reflecting surface's frequency-dependent reflection
// coefficient, convert back to SPL, subtract air attenuation over the
// path's total distance, and convert back to pressure (spec §4.A).
func arrivalPressure(root *scene.Node, initialSPL []float64, freqs []float64, path tracer.RayPath, atmo acoustics.AtmosphericConditions) []float64 {
	intensities := acoustics.PressureToIntensityVec(acoustics.SPLToPressureVec(initialSPL), acoustics.Z0)

	// The last hit in the path is the receiver itself, not a reflecting
	// surface, so it is excluded from the absorption loop.
	for i := 0; i < len(path.Hits)-1; i++ {
		surface := root.FindByID(path.Hits[i].NodeID)
		if surface == nil {
			continue
		}
		for idx, f := range freqs {
			r := 1 - surface.Material.ClampedAbsorption(f)
			intensities[idx] *= r
		}
	}

	arrivalSPL := acoustics.PressureToSPLVec(acoustics.IntensityToPressureVec(intensities, acoustics.Z0))

	airAttenuationDB := acoustics.AirAttenuationVec(freqs, atmo)
	for i := range arrivalSPL {
		arrivalSPL[i] -= airAttenuationDB[i] * path.Distance
	}

	return acoustics.SPLToPressureVec(arrivalSPL)
}
