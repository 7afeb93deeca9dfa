package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/erazemk/garderoba/internal/api"
	"github.com/erazemk/garderoba/internal/config"
	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/metrics"
	"github.com/erazemk/garderoba/internal/seed"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. If logPath is non-empty, all
// levels are also written to that file. The returned function closes it.
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	cleanup := func() {}
	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Getenv, os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	var database *sql.DB
	if cfg.DBPath != "" {
		var err error
		database, err = openJournal(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()
	}

	s, err := loadWardrobe(database, cfg.Seed)
	if err != nil {
		return err
	}

	snap := s.Snapshot()
	collector.SetCounts(len(snap.Items), len(snap.Outfits))
	slog.Info("wardrobe ready", "items", len(snap.Items), "outfits", len(snap.Outfits))

	s.Subscribe(collector.ObserveChange)
	if database != nil {
		s.Subscribe(store.Listener(database, func(c wardrobe.Change, err error) {
			slog.Error("journal write failed", "kind", c.Kind, "version", c.Version, "error", err)
			collector.RecordJournalFailure()
		}))
	}

	handler := api.NewRouter(s, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		Rate:        cfg.Rate,
		Burst:       cfg.Burst,
		Recorder:    collector,
		Metrics:     metrics.Handler(reg),
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func openJournal(path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("journal ready", "path", path)
	return database, nil
}

// loadWardrobe restores the wardrobe from the journal when there is one,
// then loads the sample data if asked to and nothing was restored.
func loadWardrobe(database *sql.DB, withSeed bool) (*wardrobe.Store, error) {
	ctx := context.Background()

	var opts wardrobe.Options
	if database != nil {
		items, outfits, err := store.Load(ctx, database)
		if err != nil {
			return nil, fmt.Errorf("restoring wardrobe: %w", err)
		}
		opts.Items, opts.Outfits = items, outfits
	}

	if withSeed && len(opts.Items) == 0 && len(opts.Outfits) == 0 {
		sample, err := seed.Default()
		if err != nil {
			return nil, fmt.Errorf("loading sample wardrobe: %w", err)
		}
		opts.Items, opts.Outfits = sample.Items, sample.Outfits

		if database != nil {
			if err := store.SaveAll(ctx, database, sample.Items, sample.Outfits); err != nil {
				return nil, fmt.Errorf("saving sample wardrobe: %w", err)
			}
		}
		slog.Info("loaded sample wardrobe")
	}

	s, err := wardrobe.New(opts)
	if err != nil {
		return nil, fmt.Errorf("building wardrobe: %w", err)
	}
	return s, nil
}
