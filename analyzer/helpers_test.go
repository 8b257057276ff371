package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// tempDir returns a symlink-free temporary directory.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// writeTree materializes a txtar archive below dir. Names ending in "/"
// create empty directories.
func writeTree(t *testing.T, dir, archive string) {
	t.Helper()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if f.Name[len(f.Name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
}

type fakeRegistry struct {
	specs map[string]ModuleSpec
	calls map[string]int
}

func newFakeRegistry(specs map[string]ModuleSpec) *fakeRegistry {
	return &fakeRegistry{specs: specs, calls: make(map[string]int)}
}

func (r *fakeRegistry) Lookup(_ context.Context, name string) ModuleSpec {
	r.calls[name]++
	return r.specs[name]
}

var hostModules = map[string]ModuleSpec{
	"os":       {Found: true, Origin: "/usr/lib/python3.12/os.py"},
	"sys":      {Found: true, Origin: "built-in"},
	"requests": {Found: true, Origin: "/usr/lib/python3/dist-packages/requests/__init__.py"},
	"yaml":     {Found: true, Origin: "/home/u/.venv/lib/python3.12/site-packages/yaml/__init__.py"},
	"nspkg":    {Found: true},
}
