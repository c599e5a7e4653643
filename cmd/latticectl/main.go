package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/lattice3d/internal/config"
	"github.com/udisondev/lattice3d/internal/coordset"
	"github.com/udisondev/lattice3d/internal/db"
	"github.com/udisondev/lattice3d/internal/model"
)

const ConfigPath = "config/lattice.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, paths []string, out io.Writer) error {
	cfgPath := ConfigPath
	if p := os.Getenv("LATTICE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr; stdout carries the coordinate list.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("config loaded",
		"extent", cfg.Extent,
		"cells", cfg.Extent.Size(),
		"workers", cfg.Workers,
		"files", len(paths))

	if len(paths) == 0 {
		return errors.New("usage: latticectl FILE...")
	}

	cells, err := process(ctx, cfg, paths)
	if err != nil {
		return err
	}

	if err := printCells(out, cells); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if cfg.Checkpoint == "" {
		return nil
	}
	return saveCheckpoint(ctx, cfg, cells)
}

// process loads every file, wraps coordinates into the lattice and returns
// them sorted without duplicates.
func process(ctx context.Context, cfg config.Simulation, paths []string) ([]model.Coord3D, error) {
	cells, err := coordset.LoadAll(ctx, paths, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("loading coordinates: %w", err)
	}

	_, outside := coordset.Partition(cfg.Extent, cells)
	if len(outside) > 0 {
		slog.Warn("coordinates outside extent, wrapping",
			"count", len(outside),
			"first", outside[0],
			"extent", cfg.Extent)
	}

	loaded := len(cells)
	cells = coordset.SortUnique(coordset.Wrap(cfg.Extent, cells))
	slog.Info("coordinates processed", "loaded", loaded, "unique", len(cells))

	return cells, nil
}

func printCells(w io.Writer, cells []model.Coord3D) error {
	bw := bufio.NewWriter(w)
	for _, c := range cells {
		if _, err := fmt.Fprintln(bw, c); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func saveCheckpoint(ctx context.Context, cfg config.Simulation, cells []model.Coord3D) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	cp := model.NewCheckpoint(cfg.Checkpoint, cfg.Extent, cells)
	if err := db.NewCheckpointRepository(database.Pool()).Save(ctx, cp); err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	slog.Info("checkpoint saved", "name", cp.Name, "cells", len(cp.Cells), "digest", fmt.Sprintf("%x", cp.Digest[:8]))
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info for unknown values.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
