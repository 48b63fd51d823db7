// Package render ties the scene loader, tracer, and impulse response
// assembler into the two entry points the CLI exposes, and reports tracer
// progress as line-delimited JSON while a render is in flight (spec §4.C,
// §4.P).
package render

import "errors"

// Sentinel configuration errors (spec §7's configuration-error rule).
var (
	ErrInvalidSampleRate   = errors.New("render: sample rate must be positive")
	ErrInvalidSpeedOfSound = errors.New("render: speed of sound must be positive")
	ErrInvalidOverlap      = errors.New("render: filter overlap must be in [0,1]")
)

// Config holds the settings a render run can override on top of whatever a
// scene file itself specifies for MaxOrder and RayCount.
type Config struct {
	SampleRate   int     `json:"sampleRate"`
	SpeedOfSound float64 `json:"speedOfSound"`
	Overlap      float64 `json:"overlap"`

	// MaxOrder and RayCount are CLI overrides; zero means "use the value
	// the scene file carries in its extras" (spec §4.L, §9).
	MaxOrder uint32 `json:"maxOrder,omitempty"`
	RayCount uint64 `json:"rayCount,omitempty"`

	// Workers caps tracer concurrency; zero means runtime.NumCPU().
	Workers int `json:"workers,omitempty"`
}

// DefaultConfig matches the original implementation's fixed constants.
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		SpeedOfSound: 343,
		Overlap:      1.0,
	}
}

// Validate enforces spec §7's configuration-error rule on the fields this
// layer owns; MaxOrder and RayCount are validated once resolved against the
// scene, in Render.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if c.SpeedOfSound <= 0 {
		return ErrInvalidSpeedOfSound
	}
	if c.Overlap < 0 || c.Overlap > 1 {
		return ErrInvalidOverlap
	}
	return nil
}
