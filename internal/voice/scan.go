package voice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDirectory returns the clip files in dir whose names match any of the
// glob patterns, sorted by name. Matching is case-insensitive.
func ScanDirectory(dir string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		// Skip directories and hidden files
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name := strings.ToLower(entry.Name())
		for _, pattern := range patterns {
			ok, err := filepath.Match(strings.ToLower(pattern), name)
			if err != nil {
				return nil, fmt.Errorf("bad voice pattern %q: %w", pattern, err)
			}
			if ok {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}

	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoClips, dir)
	}
	return files, nil
}

// ClipName returns the display name for a clip file: the base name without
// extension.
func ClipName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
