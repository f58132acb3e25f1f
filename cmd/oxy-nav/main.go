package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine"
	"github.com/Carmen-Shannon/oxy-nav/engine/config"
	"github.com/Carmen-Shannon/oxy-nav/engine/loader"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-nav/engine/logger"
	"github.com/Carmen-Shannon/oxy-nav/engine/viewer"
	"github.com/Carmen-Shannon/oxy-nav/engine/window"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "oxy-nav:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	startAt := flag.String("goto", "", "preset location to travel to on startup")
	flag.Parse()

	// ── Config + Logging ────────────────────────────────────────────────
	cfg := config.Default()
	if path := common.Coalesce(*configPath, os.Getenv("OXY_NAV_CONFIG")); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	base, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = base.Sync() }()
	log, sessionID := logger.WithSession(base)
	log.Info("starting", zap.String("session_id", sessionID), zap.Strings("assets", cfg.World.Assets))

	// ── Window + Engine ─────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, cfg.Window.MaxWidth, cfg.Window.MaxHeight),
	)
	if err != nil {
		return err
	}
	if win.SurfaceDescriptor() == nil {
		log.Warn("window has no render surface")
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithRenderFrameLimit(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(log.Named("engine")),
	)

	// ── Viewer ──────────────────────────────────────────────────────────
	v := viewer.NewViewer(
		viewer.WithConfig(cfg),
		viewer.WithLogger(log),
	)
	v.Resize(win.Width(), win.Height())
	viewer.Bind(win, v)
	logLocations(log, v.Locations())
	goToStart := func() {}
	if *startAt != "" {
		goToStart = v.LocationCallback(*startAt)
	}

	var lastMode locomotion.Mode
	eng.SetTickCallback(v.Tick)
	eng.SetResizeCallback(v.Resize)
	eng.SetRenderCallback(func(float32) {
		f := v.Frame()
		if f.State.Mode != lastMode {
			log.Debug("frame", zap.Uint64("tick", f.Tick), zap.Stringer("mode", f.State.Mode), zap.Bool("immersive", f.Immersive))
			lastMode = f.State.Mode
		}
	})

	// ── World ───────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if len(cfg.World.Assets) == 0 {
		log.Warn("no world assets configured; navigating without collision surfaces")
		goToStart()
	} else {
		ld := loader.NewLoader(
			loader.WithMeshPrefix(cfg.World.MeshPrefix),
			loader.WithWorkers(cfg.World.Workers),
			loader.WithLogger(log.Named("loader")),
		)
		// Travel to the start location once loading finishes, successful or not.
		ld.LoadAsync(ctx, cfg.World.Assets, v.Surfaces(), func(error) { goToStart() })
	}

	eng.Run()
	log.Info("stopped")
	return win.Close()
}

// logLocations lists the preset locations with their number-row hotkeys.
func logLocations(log *zap.Logger, locations []locomotion.NamedLocation) {
	for i, loc := range locations {
		fields := []zap.Field{zap.String("label", loc.Label), zap.Float32s("position", loc.Position[:])}
		if i < 9 {
			fields = append(fields, zap.Int("key", i+1))
		}
		log.Info("location", fields...)
	}
}
