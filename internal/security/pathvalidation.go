// Package security holds path hygiene helpers for the pieces of the
// service that turn user-supplied strings into filesystem paths: hint
// lookups and plot output directories.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathWithinDirectory rejects paths that resolve outside the
// given directory, including via .. components or symlinked parents.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absSafeDir, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory: %w", err)
	}

	// Resolve symlinks where the paths exist; a hint corpus dir may be a
	// symlink itself (deployments link it into the data volume).
	if resolved, err := filepath.EvalSymlinks(absSafeDir); err == nil {
		absSafeDir = resolved
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	} else if resolved, err := filepath.EvalSymlinks(filepath.Dir(absPath)); err == nil {
		absPath = filepath.Join(resolved, filepath.Base(absPath))
	}

	rel, err := filepath.Rel(absSafeDir, absPath)
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path traversal detected: %s escapes %s", filePath, safeDir)
	}
	return nil
}

// SanitizeName makes a safe path component from an arbitrary string,
// such as a dataset name embedded in a plot directory. Characters
// outside [A-Za-z0-9._-] become single underscores; the result is
// trimmed and capped.
func SanitizeName(s string) string {
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
