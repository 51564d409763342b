package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/neon-skyline/internal/audio"
	"github.com/Garsondee/neon-skyline/internal/city"
	"github.com/Garsondee/neon-skyline/internal/config"
	"github.com/Garsondee/neon-skyline/internal/control"
	"github.com/Garsondee/neon-skyline/internal/logging"
	"github.com/Garsondee/neon-skyline/internal/render"
	"github.com/Garsondee/neon-skyline/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skyline-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfgPath, shotDir, logPath string
	var seed int64
	var ppc int
	flag.StringVar(&cfgPath, "config", "", "TOML config file (defaults when empty)")
	flag.StringVar(&shotDir, "screenshots", "screenshots", "directory for PNG exports")
	flag.StringVar(&logPath, "log", "", "JSON log file (the terminal is the display, so no console logging)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed, overrides the config (0 keeps the config value)")
	flag.IntVar(&ppc, "ppc", term.DefaultPixelsPerCell, "scene pixels per terminal column")
	flag.Parse()

	cfg := config.Defaults()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	if seed != 0 {
		cfg.Scene.Seed = seed
	}

	log, err := logging.ToFile(cfg.Logging, logPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	palette, err := config.LoadTheme(cfg.Theme)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	p := term.NewPresenter(screen, render.NewCompositor(nil), ppc)
	w, h := p.Viewport()
	scene := city.NewScene(cfg.Settings(), palette, city.WithViewport(w, h), city.WithSeed(cfg.Scene.Seed))

	ctlOpts := []control.Option{
		control.WithExporter(func() (string, error) { return p.Export(shotDir) }),
	}
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume, log.Named("audio"))
		if err := player.Initialize(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			defer player.Close()
			ctlOpts = append(ctlOpts, control.WithSound(player))
		}
	}
	ctl := control.New(city.NewDriver(scene, log), log, ctlOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("terminal skyline ready", zap.Int("width", w), zap.Int("height", h))
	return term.Run(ctx, screen, p, ctl, log)
}
