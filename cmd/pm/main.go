package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/pm/internal/auth"
	"github.com/tgienger/pm/internal/config"
	"github.com/tgienger/pm/internal/db"
	"github.com/tgienger/pm/internal/kv"
	"github.com/tgienger/pm/internal/lib/logger"
	"github.com/tgienger/pm/internal/lib/logger/sl"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("pm %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg := config.MustLoad()

	// the terminal belongs to the UI, so logs go to a file
	log, logFile, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.Info("starting pm", slog.String("version", version), slog.String("backend", cfg.Storage.Backend))

	medium, closeMedium, err := openMedium(cfg)
	if err != nil {
		log.Error("failed to open storage", sl.Err(err))
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	defer closeMedium()

	st := store.New(medium, log)
	svc := auth.NewStub(cfg.Auth.Latency, log)

	app := ui.NewApp(st, svc, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error("application stopped", sl.Err(err))
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
	log.Info("stopped")
}

func setupLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.Log.Disabled {
		return logger.Discard(), nil, nil
	}

	path := cfg.Log.Path
	if path == "" {
		dir, err := db.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "pm.log")
	}

	f, err := logger.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	return logger.New(cfg.Env, cfg.Log.Level, f), f, nil
}

// openMedium selects the storage backend named in the config
func openMedium(cfg *config.Config) (store.Medium, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), func() error { return nil }, nil

	case config.BackendRedis:
		r, err := kv.NewRedis(kv.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	}

	database, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return database, database.Close, nil
}
