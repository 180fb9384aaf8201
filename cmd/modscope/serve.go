package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-modscope/internal/app"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/internal/config"
	"github.com/cwbudde/algo-modscope/internal/render"
	"github.com/cwbudde/algo-modscope/internal/webui"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(args []string, stderr io.Writer) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	addr := fs.StringP("addr", "a", "", "listen address; overrides the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load(fs)
	if err != nil {
		return err
	}
	if fs.Changed("addr") {
		cfg.Listen = *addr
	}

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("limits", describeLimits(cfg)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return listen(ctx, srv.NewHTTPServer(cfg.Listen), logger)
}

func newServer(cfg config.Config, logger *log.Logger) (*webui.Server, error) {
	renderer, err := render.NewRenderer(render.Config{
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		DPI:    cfg.Canvas.DPI,
	})
	if err != nil {
		return nil, err
	}

	session := app.NewSession(
		app.WithPipeline(compute.New(compute.WithMaxSamples(cfg.MaxSamples))),
		app.WithDefaults(cfg.Defaults.Params(), cfg.Defaults.SchemeValue()),
		app.WithLogger(logger.With("component", "session")),
	)
	return webui.New(session, renderer, logger.With("component", "http")), nil
}

func listen(ctx context.Context, hs *http.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "url", "http://"+hs.Addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}

func describeLimits(cfg config.Config) []any {
	return []any{
		"max_samples", humanize.Comma(int64(cfg.MaxSamples)),
		"canvas", fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height),
	}
}
