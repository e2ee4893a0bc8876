// Package main provides the entry point for the gatos circuit editor.
package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime/debug"

	"gatos/internal/app"
	"gatos/internal/assets"
	"gatos/internal/config"
	"gatos/internal/version"
	"gatos/ui/mainwindow"
	"gatos/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "configuration file")
	debugLog := flag.Bool("debug", false, "enable debug logging")
	logPath := flag.String("log", "", "write the log to this file as well as stderr")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Config: %v (using defaults)", err)
	}
	if *logPath == "" {
		*logPath = cfg.LogFile
	}
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("Failed to open log file %s: %v", *logPath, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}
	if *debugLog || cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	log.Printf("Starting %s %s", cfg.Title, version.String())

	appPrefs := prefs.Load()
	cfg.Zoom = appPrefs.Float(prefs.KeyZoom, cfg.Zoom)
	size := fyne.NewSize(
		float32(appPrefs.Float(prefs.KeyWindowWidth, cfg.Width)),
		float32(appPrefs.Float(prefs.KeyWindowHeight, cfg.Height)),
	)

	state := app.NewState(cfg)
	style := cfg.MustStyle()
	symbols := assets.NewProvider(cfg.SymbolPixels, assets.DefaultInk, assets.DefaultBody)
	log.Printf("Assets: %d px symbols, wire colour %v", symbols.Size(), style.Wire)

	fyneApp := fyneapp.NewWithID("io.gatos.editor")
	fyneApp.Settings().SetTheme(&app.GatosTheme{})

	win := mainwindow.New(fyneApp, state, appPrefs, symbols, cfg.Title, size)
	win.Start(cfg.TickInterval)

	if w := watchConfig(*configPath, state); w != nil {
		win.OnClose(w.Stop)
	}

	win.ShowAndRun()
}

// watchConfig applies edits to the configuration file while running. It
// returns nil when the file cannot be watched.
func watchConfig(path string, state *app.State) *config.Watcher {
	w, err := config.NewWatcher(path)
	if err != nil {
		log.Printf("Config: not watching %s: %v", path, err)
		return nil
	}
	w.OnChange(state.ApplyConfig)
	w.Start()
	log.Printf("Config: watching %s", path)
	return w
}
