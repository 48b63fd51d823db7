package wavsink

import (
	"os"
	"testing"
)

func TestWriteProducesNonEmptyFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "ir-*.wav")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	signal := []float64{0, 0.5, -0.5, 1, -1, 0.25}
	if err := Write(f, 44100, signal); err != nil {
		t.Fatalf("Write: %v", err)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("expected a non-empty WAV file")
	}
}

func TestClampKeepsSamplesInRange(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{2, 1},
		{-2, -1},
		{0.3, 0.3},
	}
	for _, c := range cases {
		if got := clamp(c.in, -1, 1); got != c.want {
			t.Errorf("clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
