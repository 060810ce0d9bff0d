package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ResolveAbsolutePath returns a cleaned absolute form of path, relative paths
// being taken from the working directory.
func ResolveAbsolutePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	return filepath.Join(cwd, path), nil
}
