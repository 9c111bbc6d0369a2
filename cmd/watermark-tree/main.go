// Command watermark-tree recursively applies a semi-transparent image
// watermark to every image under a source directory tree, writing the
// watermarked copies to a parallel destination tree.
//
// It parses flags, validates configuration and paths, loads the watermark
// overlay once, and runs the sequential compositing pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/watermark-tree/internal/config"
	"github.com/ironsheep/watermark-tree/internal/imaging"
	"github.com/ironsheep/watermark-tree/internal/logging"
	"github.com/ironsheep/watermark-tree/internal/pipeline"
)

// Version information - set by ldflags during build.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	// Catch-all: any unexpected panic outside the per-file guard becomes a
	// logged fatal error and a nonzero exit instead of a bare crash.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "watermark-tree: unexpected error: %v\n", r)
			code = 1
		}
	}()

	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr. Once logging.New succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "watermark-tree: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "watermark-tree: %v\n", err)
		return 1
	}

	log, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watermark-tree: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Path validation — source must be an existing directory,
	// the watermark an existing file. Any failure here is fatal.
	if fi, err := os.Stat(cfg.SourceDir); err != nil || !fi.IsDir() {
		log.Error("Source directory %q does not exist or is not a directory", cfg.SourceDir)
		return 1
	}
	if fi, err := os.Stat(cfg.WatermarkPath); err != nil || fi.IsDir() {
		log.Error("Watermark image %q does not exist or is not a file", cfg.WatermarkPath)
		return 1
	}

	overlay, err := imaging.LoadOverlay(cfg.WatermarkPath, cfg.Opacity)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	log.Debug("Loaded watermark overlay %s (%dx%d), opacity %g",
		cfg.WatermarkPath, overlay.Bounds().Dx(), overlay.Bounds().Dy(), cfg.Opacity)

	// Phase 3: Signal handling — cancel the context on SIGINT/SIGTERM so
	// the pipeline stops between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping after current file…")
		cancel()
	}()

	// Phase 4: Run the pipeline. Per-file skips and failures do not affect
	// the exit code; only an interrupt or a discovery failure does.
	if _, err := pipeline.Run(ctx, &cfg, log, overlay); err != nil {
		return 1
	}

	if ctx.Err() != nil {
		return 1
	}
	return 0
}
