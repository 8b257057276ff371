package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Project finds the external requirements of a python source tree
type Project struct {
	Root       string //project directory, may be relative to WorkDir
	WorkDir    string //anchor for excluded directory names
	Conditions Conditions
	Registry   Registry
}

// NewProject creates a Project anchored at the current working directory,
// with symlinks resolved so it compares equal to resolved file paths.
func NewProject(root string, conditions Conditions, registry Registry) (*Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	if registry == nil {
		registry = StdlibRegistry{}
	}
	return &Project{
		Root:       root,
		WorkDir:    resolvePath(cwd),
		Conditions: conditions,
		Registry:   registry,
	}, nil
}

func (p *Project) root() string {
	return absFrom(p.WorkDir, p.Root)
}

// Classify reports whether reference names a module living in the
// project, either as a file matching the dotted path or as a directory
// named after its first segment.
func (p *Project) Classify(reference string) Classification {
	root := p.root()
	modulePath := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(reference, ".", "/"))+SourceExt)
	first, _, _ := strings.Cut(reference, ".")
	moduleDir := filepath.Join(root, first)

	if exists(modulePath) || exists(moduleDir) {
		return Internal
	}
	return External
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Find returns the sorted root names of external modules imported
// anywhere in the project that pass the configured conditions. The error
// is only set when ctx ends before the scan does.
func (p *Project) Find(ctx context.Context) ([]string, error) {
	requirements := make(map[string]struct{})

	for file := range Walk(p.root(), p.WorkDir) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slog.Debug("scan file", "path", file.Path)

		for ref := range Imports(file.Resolved) {
			name := ref.Root()
			if _, seen := requirements[name]; seen {
				continue
			}
			if p.Classify(ref.Reference) == Internal {
				continue
			}
			if !p.Conditions.Allow(ctx, p.Registry, name) {
				continue
			}
			requirements[name] = struct{}{}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(requirements))
	for name := range requirements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
