package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/watermark-tree/internal/config"
	"github.com/ironsheep/watermark-tree/internal/imaging"
	"github.com/ironsheep/watermark-tree/internal/logging"
)

// Run is the top-level batch entry point. It discovers image files under
// the source root, applies the shared overlay to each one sequentially,
// and returns aggregate stats. A discovery failure on the root itself
// aborts the run and is returned to the caller. The context cancels the
// loop between files (e.g. on SIGINT); no partial file is ever left behind
// since each output is encoded in memory and written whole.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, overlay *image.NRGBA) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.SourceDir, log)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats, err
	}
	stats.Total = len(files)

	log.Info("Found %d image files under %s", stats.Total, cfg.SourceDir)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processFile(cfg, log, path, overlay, &stats)
	}

	log.Success("Done: %d processed, %d skipped, %d failed", stats.Processed, stats.Skipped, stats.Failed)
	return stats, nil
}

// processFile watermarks one source image and writes it to the mirrored
// destination path. All failures are per-file recoverable: they are logged
// with the path and operation, counted, and the walk continues.
func processFile(cfg *config.Config, log *logging.Logger, path string, overlay *image.NRGBA, stats *RunStats) {
	// Malformed files can make a decoder panic rather than return an
	// error; treat that the same as any other per-file failure.
	defer func() {
		if r := recover(); r != nil {
			log.Error("Unexpected failure processing %q: %v", path, r)
			stats.Failed++
		}
	}()

	log.Debug("[%d/%d] %s", stats.Current, stats.Total, path)

	src, err := imaging.DecodeSource(path)
	if err != nil {
		log.Error("Cannot read %q: %v", path, err)
		stats.Failed++
		return
	}

	if !cfg.Position.Known() {
		log.Warn("Unknown position %q for %q, defaulting to bottom-right", cfg.Position, path)
	}

	out, err := imaging.Composite(src, overlay, cfg.Size, cfg.Position)
	if err != nil {
		if errors.Is(err, imaging.ErrZeroWatermark) {
			log.Warn("Watermark width is 0 for %q, skipping", path)
			stats.Skipped++
			return
		}
		log.Error("Cannot composite %q: %v", path, err)
		stats.Failed++
		return
	}

	destPath, err := mirrorPath(cfg.SourceDir, cfg.DestDir, path)
	if err != nil {
		log.Error("Cannot resolve destination for %q: %v", path, err)
		stats.Failed++
		return
	}

	if cfg.DryRun {
		log.Info("[DRY] Would write %s (%s)", destPath, src.Format)
		stats.Processed++
		return
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		log.Error("Cannot create destination directory for %q: %v", path, err)
		stats.Failed++
		return
	}

	var buf bytes.Buffer
	if err := imaging.EncodeTo(&buf, out, src.Format); err != nil {
		log.Error("Cannot encode %q: %v", path, err)
		stats.Failed++
		return
	}
	if err := os.WriteFile(destPath, buf.Bytes(), 0o644); err != nil {
		log.Error("Cannot write %q: %v", destPath, err)
		stats.Failed++
		return
	}

	log.Info("Saved watermarked image to %s", destPath)
	stats.Processed++
}

// mirrorPath maps a source file path to its destination: the file's
// directory relative to the source root, recreated under the destination
// root, with the original filename.
func mirrorPath(sourceDir, destDir, path string) (string, error) {
	rel, err := filepath.Rel(sourceDir, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.Join(destDir, rel, filepath.Base(path)), nil
}
