// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation. Defaults match the original watermarking tool (opacity
// 0.5, bottom-right placement, size 0.2).
package config

import (
	"errors"
	"fmt"

	"github.com/ironsheep/watermark-tree/internal/imaging"
)

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then mutated by [ParseFlags] before being passed (by pointer) to the
// packages that need it.
type Config struct {
	// Required paths.
	SourceDir     string // root of the tree to scan
	DestDir       string // root the output tree is mirrored into
	WatermarkPath string // overlay image file

	// Compositing parameters.
	Opacity  float64        // alpha multiplier in [0, 1]
	Position imaging.Anchor // one of the five named anchors
	Size     float64        // watermark width as a fraction of image width, (0, 1]

	// Behavior and logging.
	DryRun  bool
	LogFile string // optional duplicate log sink; console logging always occurs
	Verbose bool
}

// DefaultConfig returns a Config with the tool defaults applied. Used as
// the base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Opacity:  0.5,
		Position: imaging.AnchorBottomRight,
		Size:     0.2,
	}
}

// Validate checks required fields and value ranges. Path existence is
// checked separately in main, after the logger exists.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return errors.New("source directory is required (--source_dir)")
	}
	if c.DestDir == "" {
		return errors.New("destination directory is required (--dest_dir)")
	}
	if c.WatermarkPath == "" {
		return errors.New("watermark image is required (--watermark)")
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0 and 1 (got %g)", c.Opacity)
	}
	if c.Size <= 0 || c.Size > 1 {
		return fmt.Errorf("size must be greater than 0 and up to 1 (got %g)", c.Size)
	}
	if _, err := imaging.ParseAnchor(string(c.Position)); err != nil {
		return err
	}
	return nil
}
