package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"tailscale.com/tsweb"

	"github.com/banshee-data/velocity.hud/internal/config"
	"github.com/banshee-data/velocity.hud/internal/feed"
	"github.com/banshee-data/velocity.hud/internal/httputil"
	"github.com/banshee-data/velocity.hud/internal/hud"
	"github.com/banshee-data/velocity.hud/internal/monitoring"
	"github.com/banshee-data/velocity.hud/internal/plots"
	"github.com/banshee-data/velocity.hud/internal/recorder"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
	"github.com/banshee-data/velocity.hud/internal/stream"
	"github.com/banshee-data/velocity.hud/internal/timeutil"
	"github.com/banshee-data/velocity.hud/internal/version"
)

// loadConfig reads path when it exists and falls back to built-in
// defaults otherwise. HUD_* environment variables apply either way.
func loadConfig(path string) (*config.TuningConfig, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return config.LoadTuningConfig(path)
		} else if path != config.DefaultConfigPath {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		monitoring.Logf("config: %s not found, using built-in defaults", path)
	}
	return config.LoadFromEnv()
}

// daemon holds everything run wires together.
type daemon struct {
	cfg      *config.TuningConfig
	store    *snapshot.Store
	feed     *feed.Feed
	runner   *hud.Runner
	stream   *stream.Publisher
	recorder *recorder.Recorder
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	d := &daemon{cfg: cfg, store: snapshot.NewStore()}
	d.feed = feed.New(d.store)
	clock := timeutil.RealClock{}
	d.runner = hud.NewRunner(d.store, clock, hud.SettingsFrom(cfg), cfg.FrameInterval())

	var src io.ReadCloser
	if !opts.synthetic {
		if opts.port == "-" {
			src = io.NopCloser(os.Stdin)
		} else {
			src, err = feed.OpenSerial(opts.port, feed.PortOptions{BaudRate: opts.baud, Parity: opts.parity}, nil)
			if err != nil {
				return err
			}
		}
		defer src.Close()
	}

	if opts.grpcListen != "" {
		scfg := stream.DefaultConfig()
		scfg.ListenAddr = opts.grpcListen
		scfg.MaxClients = opts.maxClients
		d.stream = stream.NewPublisher(scfg)
		if err := d.stream.Start(); err != nil {
			return fmt.Errorf("start overlay stream: %w", err)
		}
		defer d.stream.Stop()
		d.runner.AddSink(d.stream)
	}

	if opts.dbPath != "" {
		d.recorder, err = recorder.Open(opts.dbPath, recorder.Options{Every: opts.recordEvery, Clock: clock})
		if err != nil {
			return err
		}
		defer d.recorder.Close()
		d.runner.AddSink(d.recorder)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		wg.Wait()
	}()

	if opts.listen != "" {
		mux := http.NewServeMux()
		if err := d.attachDebugRoutes(mux); err != nil {
			return err
		}
		server := &http.Server{Addr: opts.listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				monitoring.Logf("debug server: %v", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer done()
			server.Shutdown(shutdownCtx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if opts.synthetic {
			err = feed.NewGenerator(opts.seed).Run(ctx, d.feed, clock, cfg.FrameInterval())
		} else {
			err = d.feed.Monitor(ctx, src)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			monitoring.Logf("feed: %v", err)
		}
		monitoring.Logf("feed stopped: %+v", d.feed.Stats())
	}()

	return d.runner.Run(ctx)
}

// status is the /debug/hud payload.
type status struct {
	Version  string                 `json:"version"`
	Runner   hud.Stats              `json:"runner"`
	Feed     feed.Stats             `json:"feed"`
	Stream   *stream.PublisherStats `json:"stream,omitempty"`
	Recorder *recorder.Stats        `json:"recorder,omitempty"`
}

func (d *daemon) status() status {
	s := status{Version: version.String(), Runner: d.runner.Stats(), Feed: d.feed.Stats()}
	if d.stream != nil {
		st := d.stream.Stats()
		s.Stream = &st
	}
	if d.recorder != nil {
		rs := d.recorder.Stats()
		s.Recorder = &rs
	}
	return s
}

func (d *daemon) attachDebugRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)
	debug.KV("Version", version.String())
	debug.KV("Frame interval", d.cfg.FrameInterval().String())
	debug.Handle("hud", "Render loop, feed and sink counters", httputil.JSONHandler(func(*http.Request) (any, error) {
		return d.status(), nil
	}))
	debug.Handle("config", "Effective tuning config", httputil.JSONHandler(func(*http.Request) (any, error) {
		return d.cfg, nil
	}))
	debug.Handle("ramps", "Colour and opacity ramps", plots.Handler(plots.Ramps()))
	if d.recorder != nil {
		return d.recorder.AttachAdminRoutes(mux)
	}
	return nil
}
