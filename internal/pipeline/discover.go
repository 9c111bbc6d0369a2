package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/watermark-tree/internal/logging"
)

// Supported image file extensions (lowercase, with leading dot). Files with
// any other extension are skipped without error.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// Discover walks sourceDir recursively, collects files whose extension
// matches the image allow-list (case-insensitive), and returns the paths
// sorted lexicographically for deterministic processing order. Unreadable
// subtrees are logged and skipped; only a failure on the root itself is an
// error.
func Discover(sourceDir string, log *logging.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == sourceDir {
				return err
			}
			log.Warn("Skipping unreadable path %q: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
