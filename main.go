package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "fitcam.yaml", "configuration file")
	statePath := flag.String("state", "state.yaml", "camera state file written by Ctrl+S")
	watch := flag.Bool("watch", true, "reload the configuration file when it changes")
	flag.Parse()

	level := new(slog.LevelVar)
	cfg, err := LoadConfig(*configPath)
	configFound := true
	if errors.Is(err, fs.ErrNotExist) {
		configFound = false
		cfg, err = DefaultConfig(), nil
	}
	logger := NewLogger(os.Stderr, cfg.Log, level)
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}
	if !configFound {
		logger.Info("no config file, using defaults", "path", *configPath)
	}

	var reloads <-chan Config
	if *watch && configFound {
		w, err := NewConfigWatcher(*configPath, DefaultWatchDebounce, logger)
		if err != nil {
			logger.Warn("config watcher disabled", "err", err)
		} else {
			w.Start()
			defer w.Stop()
			reloads = w.Reloads()
		}
	}

	g, err := NewGame(cfg, logger, level, reloads)
	if err != nil {
		logger.Error("start", "err", err)
		os.Exit(1)
	}
	g.input.StatePath = *statePath
	if err := g.LoadState(*statePath); err == nil {
		logger.Info("state restored", "path", *statePath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("state not restored", "path", *statePath, "err", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(resizingMode(cfg.Window.Resizable))

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
