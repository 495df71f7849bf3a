package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateFile checks that path names an existing regular file.
// what describes the file in error messages (e.g. "corpus").
func ValidateFile(path, what string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "%s path cannot be empty", what)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "%s not found: %s", what, path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot read %s %s", what, path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory: %s", what, path)
	}
	return nil
}

// ValidateDir checks that path names an existing directory.
func ValidateDir(path, what string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "%s path cannot be empty", what)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "%s not found: %s", what, path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot read %s %s", what, path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is not a directory: %s", what, path)
	}
	return nil
}

// ValidateOutputDir rejects output locations that are empty, contain control
// characters, or already exist as a regular file.
func ValidateOutputDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains control characters")
		}
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return New(ErrCodeInvalidPath, "output path exists and is not a directory: %s", path)
	}
	return nil
}
