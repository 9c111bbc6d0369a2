package config

// CLI flag parsing and help text. Long and short spellings are registered
// as separate flags bound to the same field, matching the original tool's
// argument surface.

import (
	"flag"
	"fmt"
	"os"

	"github.com/ironsheep/watermark-tree/internal/imaging"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error (unknown flag, unparseable value) it returns non-nil.
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("watermark-tree", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var showHelp, showVersion bool

	fs.StringVar(&cfg.SourceDir, "source_dir", "", "Path to the source directory")
	fs.StringVar(&cfg.SourceDir, "s", "", "Same as --source_dir")
	fs.StringVar(&cfg.DestDir, "dest_dir", "", "Path to the destination directory")
	fs.StringVar(&cfg.DestDir, "d", "", "Same as --dest_dir")
	fs.StringVar(&cfg.WatermarkPath, "watermark", "", "Path to the watermark image")
	fs.StringVar(&cfg.WatermarkPath, "w", "", "Same as --watermark")
	fs.Float64Var(&cfg.Opacity, "opacity", cfg.Opacity, "Watermark opacity, 0 to 1")
	fs.Float64Var(&cfg.Opacity, "o", cfg.Opacity, "Same as --opacity")
	fs.Var(&anchorValue{&cfg.Position}, "position", "Watermark position: top-left | top-right | center | bottom-right | bottom-left")
	fs.Var(&anchorValue{&cfg.Position}, "p", "Same as --position")
	fs.Float64Var(&cfg.Size, "size", cfg.Size, "Watermark width as a fraction of image width, 0 to 1")
	fs.Float64Var(&cfg.Size, "z", cfg.Size, "Same as --size")
	fs.StringVar(&cfg.LogFile, "log_file", "", "Duplicate log output to file")
	fs.StringVar(&cfg.LogFile, "lf", "", "Same as --log_file")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose (debug) logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Discover and plan only; write nothing")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "watermark-tree v"+version)
		os.Exit(0)
	}
	return nil
}

// anchorValue adapts imaging.Anchor to flag.Value so invalid positions are
// rejected during parsing.
type anchorValue struct{ p *imaging.Anchor }

func (a *anchorValue) String() string {
	if a.p == nil {
		return ""
	}
	return string(*a.p)
}

func (a *anchorValue) Set(s string) error {
	anchor, err := imaging.ParseAnchor(s)
	if err != nil {
		return err
	}
	*a.p = anchor
	return nil
}

// printUsage writes the help text to stderr.
func printUsage(fs *flag.FlagSet) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "watermark-tree — apply a watermark to every image under a directory tree"},
		{"", ""},
		{"  watermark-tree --source_dir <dir> --dest_dir <dir> --watermark <file> [OPTIONS]", ""},
		{"", ""},
		{"Required", ""},
		{"  -s, --source_dir <dir>", "Root directory to scan for images"},
		{"  -d, --dest_dir <dir>", "Root directory to mirror output into"},
		{"  -w, --watermark <file>", "Watermark overlay image"},
		{"", ""},
		{"Compositing", ""},
		{"  -o, --opacity <0..1>", "Watermark opacity (default: 0.5)"},
		{"  -p, --position <name>", "top-left | top-right | center | bottom-right | bottom-left (default: bottom-right)"},
		{"  -z, --size <0..1>", "Watermark width as fraction of image width (default: 0.2)"},
		{"", ""},
		{"Behavior & logging", ""},
		{"  --dry-run", "Discover and plan only; write nothing"},
		{"  -lf, --log_file <path>", "Duplicate log output to file"},
		{"  -v, --verbose", "Verbose (debug) logging"},
		{"  --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(os.Stderr)
		case l.desc == "":
			fmt.Fprintln(os.Stderr, l.flags)
		case l.flags == "":
			fmt.Fprintln(os.Stderr, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}
