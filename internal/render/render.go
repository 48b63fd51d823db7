package render

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/gregzanch/rirtrace/internal/ir"
	"github.com/gregzanch/rirtrace/internal/sceneio"
	"github.com/gregzanch/rirtrace/internal/tracer"
)

// Render traces rays through sc and assembles them into a peak-normalized
// impulse response, writing JSON progress lines to progressOut (nil to
// disable) while tracing is in flight (spec §4.C "Orchestration").
func Render(ctx context.Context, sc *sceneio.Scene, cfg Config, progressOut io.Writer) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxOrder := cfg.MaxOrder
	if maxOrder == 0 {
		maxOrder = sc.MaxOrder
	}
	rayCount := cfg.RayCount
	if rayCount == 0 {
		rayCount = sc.RayCount
	}
	if maxOrder == 0 {
		return nil, fmt.Errorf("render: max order must be positive")
	}
	if rayCount == 0 {
		return nil, fmt.Errorf("render: ray count must be positive")
	}

	emitProgress(progressOut, PhaseInitializing, 0)

	t := tracer.New(sc.Root, sc.Source, sc.Receiver, maxOrder)

	var counter atomic.Int64
	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		reportProgress(progressOut, &counter, int64(rayCount), done)
		close(reporterDone)
	}()

	paths := tracer.TraceRays(ctx, t, rayCount, cfg.Workers, &counter)
	close(done)
	<-reporterDone

	emitProgress(progressOut, PhaseProcessing, 0)

	irCfg := ir.DefaultConfig()
	irCfg.SampleRate = cfg.SampleRate
	irCfg.SpeedOfSound = cfg.SpeedOfSound
	irCfg.FilterOverlap = cfg.Overlap

	signal, err := ir.Assemble(sc.Root, paths, irCfg)
	if err != nil {
		return nil, fmt.Errorf("render: assembling impulse response: %w", err)
	}

	emitProgress(progressOut, PhaseFinishing, 100)
	return signal, nil
}
