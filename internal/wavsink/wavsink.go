// Package wavsink encodes a mono impulse response as a 16-bit PCM WAV file
// (spec §4.I, §6 "WAV output").
package wavsink

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth       = 16
	numChannels    = 1
	audioFormatPCM = 1
	int16Scale     = 32767
)

// Write encodes signal (expected peak-normalized to [-1, 1]) as mono,
// 16-bit PCM at sampleRate, truncating each sample with an explicit
// *32767 scale rather than relying on the encoder's own scaling.
func Write(w io.WriteSeeker, sampleRate int, signal []float64) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChannels, audioFormatPCM)

	data := make([]int, len(signal))
	for i, s := range signal {
		data[i] = int(clamp(s, -1, 1) * int16Scale)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: numChannels},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavsink: writing samples: %w", err)
	}
	return enc.Close()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
