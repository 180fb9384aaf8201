package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/app"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/internal/figure"
	"github.com/cwbudde/algo-modscope/internal/render"
	"github.com/cwbudde/algo-modscope/measure/snr"
)

func renderCommand(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	out := fs.StringP("out", "o", "", "output PNG file, - for stdout (required)")
	schemeName := fs.StringP("scheme", "s", "", "modulation scheme for the SNR pane (DSB, VSB, SSB, LSSB, USSB, AM, FM, PM)")
	seed := fs.Uint64("seed", 0, "noise seed for the SNR sweep; 0 picks a random one")

	// Field values stay text so they go through the same validation as
	// the form.
	fields := app.Fields()
	texts := make(map[string]*string, len(fields))
	for _, f := range fields {
		texts[f.Key] = fs.String(f.Key, "", f.Label+" (default from config)")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("render: --out is required")
	}

	cfg, err := common.load(fs)
	if err != nil {
		return err
	}
	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	values := app.Values(cfg.Defaults.Params())
	for key, text := range texts {
		if fs.Changed(key) {
			values[key] = *text
		}
	}
	params, err := app.ParseForm(values)
	if err != nil {
		if title, msg, ok := app.Dialog(err); ok {
			return fmt.Errorf("%s: %s", title, msg)
		}
		return err
	}

	scheme := cfg.Defaults.SchemeValue()
	if fs.Changed("scheme") {
		if scheme, err = modulation.ParseScheme(*schemeName); err != nil {
			return err
		}
	}

	var sweeperOpts []snr.Option
	if *seed != 0 {
		sweeperOpts = append(sweeperOpts, snr.WithSeed(*seed))
	}
	pipe := compute.New(
		compute.WithSweeper(snr.NewSweeper(sweeperOpts...)),
		compute.WithMaxSamples(cfg.MaxSamples),
	)
	res, err := pipe.Run(params, scheme)
	if err != nil {
		return err
	}
	logger.Debug("computed", "scheme", scheme, "samples", humanize.Comma(int64(res.Signals.Len())))

	renderer, err := render.NewRenderer(render.Config{
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		DPI:    cfg.Canvas.DPI,
	})
	if err != nil {
		return err
	}

	n, err := writePNG(*out, stdout, renderer, figure.FromResult(res))
	if err != nil {
		return err
	}
	logger.Info("wrote plot", "path", *out, "scheme", scheme, "size", humanize.Bytes(uint64(n)))
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func writePNG(path string, stdout io.Writer, r *render.Renderer, fig figure.Figure) (int64, error) {
	if path == "-" {
		cw := &countingWriter{w: stdout}
		if err := r.EncodePNG(cw, fig); err != nil {
			return 0, err
		}
		return cw.n, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	bw := bufio.NewWriter(f)
	cw := &countingWriter{w: bw}
	if err := r.EncodePNG(cw, fig); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("render: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return cw.n, nil
}
