package analyzer

import (
	"path/filepath"
	"strings"
)

// hasFilePathPrefix reports whether the cleaned path s equals prefix or
// lies below it. Both paths are expected to be absolute and resolved the
// same way, so volume names need no special casing.
func hasFilePathPrefix(s, prefix string) bool {
	switch {
	case prefix == "":
		return true
	case !strings.HasPrefix(s, prefix):
		return false
	case len(s) == len(prefix):
		return true
	case prefix[len(prefix)-1] == filepath.Separator:
		return true
	}
	return s[len(prefix)] == filepath.Separator
}

// absFrom resolves name against dir unless it is already absolute.
func absFrom(dir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}

// isRelativeTo reports whether base, resolved against workDir, contains path.
func isRelativeTo(path, base, workDir string) bool {
	return hasFilePathPrefix(filepath.Clean(path), absFrom(workDir, base))
}

// resolvePath returns the absolute, symlink-free form of p. If links
// cannot be evaluated the cleaned absolute path is returned instead.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
