package analyzer

import (
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the extension of files the walker yields.
const SourceExt = ".py"

// excludedDirs are directory names that never hold project sources:
// vcs metadata, virtualenvs, build output, caches, editor settings and
// generated web assets.
var excludedDirs = []string{
	"venv", ".venv", "__pycache__", ".git", ".hg", ".svn", ".idea", ".vscode",
	"node_modules", "dist", "build", "migrations", "logs", "coverage", ".coverage",
	"staticfiles", "media", ".pytest_cache",
}

// ExcludedDirs returns a copy of the excluded directory names.
func ExcludedDirs() []string {
	return append([]string(nil), excludedDirs...)
}

func isExcludedName(name string) bool {
	for _, exc := range excludedDirs {
		if name == exc {
			return true
		}
	}
	return false
}

// isExcludedPath reports whether one of the excluded names, resolved
// against workDir, contains the resolved path. The names are not checked
// to lie under the project root, so any tree sharing the prefix matches.
func isExcludedPath(resolved, workDir string) bool {
	for _, exc := range excludedDirs {
		if isRelativeTo(resolved, exc, workDir) {
			return true
		}
	}
	return false
}

// Walk yields every source file below root. Directories with an excluded
// name are pruned and files inside an excluded path of workDir are
// skipped. Errors never stop the walk; the entry is just dropped.
// A root that links to a directory is walked through its target.
func Walk(root, workDir string) iter.Seq[SourceFile] {
	return func(yield func(SourceFile) bool) {
		if workDir == "" {
			if cwd, err := os.Getwd(); err == nil {
				workDir = resolvePath(cwd)
			}
		}
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			root = resolvePath(root)
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Debug("skip unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && isExcludedName(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), SourceExt) {
				return nil
			}
			// symlinked files count, symlinked directories do not
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				return nil
			}

			resolved := resolvePath(path)
			if isExcludedPath(resolved, workDir) {
				return nil
			}
			if !yield(SourceFile{Path: path, Resolved: resolved}) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			slog.Debug("walk stopped", "root", root, "error", err)
		}
	}
}
