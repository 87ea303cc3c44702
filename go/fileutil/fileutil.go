// Package fileutil contains filesystem helpers.
package fileutil

import (
	"os"
	"path/filepath"
)

// EnsureDirExists checks whether the given path to a directory exists and
// creates it if necessary. Returns the absolute path that corresponds to the
// input path and an error indicating a problem.
func EnsureDirExists(dirPath string) (string, error) {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return "", err
	}
	return absPath, os.MkdirAll(absPath, 0700)
}

// FileExists returns true if the given path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
