package filterbank

import (
	"math"
	"testing"
)

func testConfig(length int) Config {
	return Config{
		MinFreq:    63,
		MaxFreq:    16000,
		Bands:      8,
		Overlap:    1,
		SampleRate: 44100,
		Length:     length,
	}
}

func TestRejectsBadOverlap(t *testing.T) {
	cfg := testConfig(1024)
	cfg.Overlap = 1.5
	if _, err := New(cfg); err == nil {
		t.Errorf("expected an error for overlap outside [0,1]")
	}
}

func TestBandEdgesSpanRangeAndIncrease(t *testing.T) {
	bands := 8
	edges := make([]float64, bands+1)
	for b := 0; b <= bands; b++ {
		edges[b] = bandEdgeFrequency(float64(b), float64(bands), 63, 16000)
	}
	if math.Abs(edges[0]-63) > 1e-6 {
		t.Errorf("edges[0] = %v, want 63", edges[0])
	}
	if math.Abs(edges[bands]-16000) > 1e-3 {
		t.Errorf("edges[%d] = %v, want 16000", bands, edges[bands])
	}
	for i := 1; i <= bands; i++ {
		if edges[i] <= edges[i-1] {
			t.Errorf("band edges must strictly increase, got %v", edges)
		}
	}
}

func TestBandpassMagnitudeUnityInPassband(t *testing.T) {
	wf := maxWidthFactor(63, 16000, 1.0/8)
	// Far from either edge, the passband response should be ~1.
	mag := bandpassMagnitude(300, 125, 600, wf)
	if math.Abs(mag-1) > 1e-6 {
		t.Errorf("expected ~1 in the passband interior, got %v", mag)
	}
}

func TestBandpassMagnitudeZeroInStopband(t *testing.T) {
	wf := maxWidthFactor(63, 16000, 1.0/8)
	mag := bandpassMagnitude(10, 125, 250, wf)
	if mag > 1e-6 {
		t.Errorf("expected ~0 well outside the passband, got %v", mag)
	}
}

func TestApplyPreservesShapeAndIsFinite(t *testing.T) {
	fb, err := New(testConfig(256))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	in := make([][]float64, fb.Bands())
	for b := range in {
		in[b] = make([]float64, 256)
		in[b][0] = 1 // dirac at t=0
	}
	out, err := fb.Apply(in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != fb.Bands() {
		t.Fatalf("got %d output bands, want %d", len(out), fb.Bands())
	}
	for b, band := range out {
		if len(band) != 256 {
			t.Errorf("band %d: got length %d, want 256", b, len(band))
		}
		for i, v := range band {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("band %d sample %d is not finite: %v", b, i, v)
			}
		}
	}
}

func TestApplyRejectsWrongBandCount(t *testing.T) {
	fb, err := New(testConfig(256))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := fb.Apply(make([][]float64, fb.Bands()-1)); err == nil {
		t.Errorf("expected an error for mismatched band count")
	}
}
