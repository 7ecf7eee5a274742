// Package security checks file locations taken from configuration.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// forbiddenChars are shell metacharacters that never appear in a database
// file name we create.
const forbiddenChars = ";&|$`(){}<>!\n\r"

// ErrInvalidPath is returned for empty paths and paths with forbidden
// characters.
var ErrInvalidPath = errors.New("invalid file path")

// ValidateFilePath cleans path and makes it absolute. Symlinks are resolved
// when the file already exists.
func ValidateFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if i := strings.IndexAny(path, forbiddenChars); i >= 0 {
		return "", fmt.Errorf("%w: forbidden character %q in %s", ErrInvalidPath, path[i], path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return abs, nil
		}
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}
