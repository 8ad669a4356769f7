// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover walks directory trees and collects the source files to
// scan for deadline annotations.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/deadliner/pkg/types"
)

// defaultExtensions are the file extensions scanned when the configuration
// does not list any.
var defaultExtensions = []string{".dart"}

// Files walks each root and returns the paths matching the configured
// extensions, sorted. A root that is itself a file is returned as-is when
// its extension matches. Dot-directories and configured exclude directories
// are skipped.
func Files(roots []string, cfg types.ScanConfig) ([]string, error) {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	excluded := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		excluded[name] = true
	}

	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if matchesExtension(root, extensions) {
				files = append(files, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || excluded[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			if matchesExtension(path, extensions) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchesExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
