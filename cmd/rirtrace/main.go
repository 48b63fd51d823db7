// Command rirtrace renders a room impulse response by stochastically
// tracing acoustic rays through a glTF scene (spec §1 overview).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gregzanch/rirtrace/internal/render"
	"github.com/gregzanch/rirtrace/internal/sceneio"
	"github.com/gregzanch/rirtrace/internal/wavsink"
)

// commonFlags are the overrides shared by both the fs and io entry points
// (spec §6 "CLI surface" optional flags).
type commonFlags struct {
	MaxOrder     uint32 `help:"Override the scene's maximum bounce order." default:"0"`
	RayCount     uint64 `help:"Override the scene's ray count." default:"0"`
	SingleThread bool   `help:"Trace with a single worker instead of one per CPU."`
	Output       string `help:"Output WAV file." required:"" type:"path"`
}

func (f commonFlags) renderConfig() render.Config {
	cfg := render.DefaultConfig()
	cfg.MaxOrder = f.MaxOrder
	cfg.RayCount = f.RayCount
	if f.SingleThread {
		cfg.Workers = 1
	}
	return cfg
}

// run renders the already-loaded sc under the flags' render config, with
// progress reported to stdout
// (spec §6 "Progress log"), and writes the result to f.Output.
func (f commonFlags) run(sc *sceneio.Scene) error {
	cfg := f.renderConfig()
	signal, err := render.Render(context.Background(), sc, cfg, os.Stdout)
	if err != nil {
		return err
	}

	out, err := os.Create(f.Output)
	if err != nil {
		return fmt.Errorf("rirtrace: creating %s: %w", f.Output, err)
	}
	defer out.Close()

	return wavsink.Write(out, cfg.SampleRate, signal)
}

// FSCmd loads a glTF file from disk and writes a WAV file to disk
// (spec §6 "fs --model <FILE.gltf> --output <FILE.wav>").
type FSCmd struct {
	commonFlags
	Model string `help:"Input glTF scene file." required:"" type:"existingfile"`
}

func (c *FSCmd) Run() error {
	sc, err := sceneio.Load(c.Model)
	if err != nil {
		return err
	}
	return c.run(sc)
}

// IOCmd reads a self-contained (binary) glTF document from stdin and writes
// the resulting WAV file to disk (spec §6 "io --output <FILE.wav>").
type IOCmd struct {
	commonFlags
}

func (c *IOCmd) Run() error {
	sc, err := sceneio.LoadFromReader(os.Stdin)
	if err != nil {
		return err
	}
	return c.run(sc)
}

var cli struct {
	FS FSCmd `cmd:"" help:"Render an impulse response from a glTF file on disk."`
	IO IOCmd `cmd:"" help:"Render an impulse response from a glTF stream on stdin."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("rirtrace"),
		kong.Description("Stochastic ray-traced room impulse response renderer."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
