// Package filex has local file helpers for downloaded exports.
package filex

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// EnsureSubDir creates name under base (the working directory when base
// is empty) and returns its absolute path.
func EnsureSubDir(base, name string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, name)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// LocalName maps an object key such as "exports/2025/3/1/<id>.json" to a
// file name inside dir.
func LocalName(dir, key string) string {
	return filepath.Join(dir, path.Base(key))
}
