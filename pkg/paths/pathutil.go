package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ValidateLogical checks a manifest's logical path: forward-slash
// separated, relative, and not climbing out of its package.
func ValidateLogical(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("empty path")
	case strings.ContainsRune(p, 0):
		return fmt.Errorf("path contains null byte")
	case path.IsAbs(p) || filepath.IsAbs(p) || filepath.VolumeName(p) != "":
		return fmt.Errorf("absolute path not allowed: %s", p)
	}
	cleaned := path.Clean(filepath.ToSlash(p))
	if cleaned == "." {
		return fmt.Errorf("path resolves to package root")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path escapes package directory: %s", p)
	}
	return nil
}

func IsWithinDir(dir, full string) bool {
	rel, err := filepath.Rel(dir, full)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != "." &&
		rel != ".." &&
		!strings.HasPrefix(rel, "../") &&
		!filepath.IsAbs(rel)
}
