// Package security validates filesystem paths that arrive from the
// environment before they reach the database layer.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// forbidden holds shell metacharacters that have no business in a database
// path and usually indicate an injection attempt.
const forbidden = ";&|$`(){}<>!\n\r"

// ValidateFilePath normalizes a path for safe use: it rejects empty paths
// and shell metacharacters, collapses . and .. segments, anchors relative
// paths at the working directory and resolves symlinks when the target
// exists.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	if i := strings.IndexAny(path, forbidden); i >= 0 {
		return "", fmt.Errorf("file path contains forbidden character %q: %s", rune(path[i]), path)
	}

	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		clean = filepath.Join(cwd, clean)
	}

	resolved, err := filepath.EvalSymlinks(clean)
	if err != nil {
		if os.IsNotExist(err) {
			// The database file may not exist yet.
			return clean, nil
		}
		return "", fmt.Errorf("resolve file path: %w", err)
	}
	return resolved, nil
}
