// Package license removes the license side files bundlers emit next to a
// production bundle.
package license

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Suffixes appended to the bundle file name by webpack (terser) and esbuild
// (external legal comments).
var Suffixes = []string{".LICENSE.txt", ".LEGAL.txt"}

// Cleanup deletes every regular file directly under outputDir whose name
// contains filename followed by one of Suffixes. Nothing is removed when
// keep is true. A missing outputDir is not an error.
// It returns the removed paths.
func Cleanup(outputDir, filename string, keep bool) ([]string, error) {
	if keep || filename == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", outputDir, err)
	}

	var removed []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !isLicenseFile(entry.Name(), filename) {
			continue
		}
		path := filepath.Join(outputDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func isLicenseFile(base, filename string) bool {
	for _, suffix := range Suffixes {
		if strings.Contains(base, filename+suffix) {
			return true
		}
	}
	return false
}
