package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/neon-skyline/internal/audio"
	"github.com/Garsondee/neon-skyline/internal/config"
	"github.com/Garsondee/neon-skyline/internal/game"
	"github.com/Garsondee/neon-skyline/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skyline: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfgPath, shotDir string
	var seed int64
	flag.StringVar(&cfgPath, "config", "", "TOML config file (defaults when empty)")
	flag.StringVar(&shotDir, "screenshots", "screenshots", "directory for PNG exports")
	flag.Int64Var(&seed, "seed", 0, "RNG seed, overrides the config (0 keeps the config value)")
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

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	palette, err := config.LoadTheme(cfg.Theme)
	if err != nil {
		return err
	}

	opts := game.Options{
		Config:        cfg,
		Palette:       palette,
		Logger:        log,
		ScreenshotDir: shotDir,
	}
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume, log.Named("audio"))
		if err := player.Initialize(); err != nil {
			// Non-fatal, the skyline runs silent.
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			defer player.Close()
			opts.Sound = player
		}
	}

	g, err := game.New(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
