package analyzer

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkRel(t *testing.T, root, workDir string) []string {
	t.Helper()
	var files []string
	for f := range Walk(root, workDir) {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		files = append(files, filepath.ToSlash(rel))
	}
	sort.Strings(files)
	return files
}

func TestWalkSkipsExcludedDirs(t *testing.T) {
	root := tempDir(t)
	writeTree(t, root, `
-- main.py --
import requests
-- pkg/mod.py --
import yaml
-- pkg/README.md --
import nothing
-- .git/hooks/hook.py --
import gitpython
-- venv/lib/site.py --
import venvmod
-- node_modules/x/build.py --
import nodemod
-- src/app/__pycache__/cached.py --
import cached
-- src/app/build/gen.py --
import generated
-- src/app/view.py --
import django
-- .hidden.py --
import hidden
`)

	assert.Equal(t, []string{".hidden.py", "main.py", "pkg/mod.py", "src/app/view.py"}, walkRel(t, root, tempDir(t)))
}

func TestWalkExcludedNamesAnchoredAtWorkDir(t *testing.T) {
	workDir := tempDir(t)
	root := filepath.Join(workDir, "build", "proj")
	writeTree(t, root, `
-- main.py --
import requests
`)

	// "build" resolves to workDir/build, which contains the whole project
	// even though no directory inside the project is excluded.
	assert.Empty(t, walkRel(t, root, workDir))
	assert.Equal(t, []string{"main.py"}, walkRel(t, root, tempDir(t)))
}

func TestWalkRootItselfNotPruned(t *testing.T) {
	parent := tempDir(t)
	root := filepath.Join(parent, "dist")
	writeTree(t, root, `
-- setup.py --
import setuptools
`)

	assert.Equal(t, []string{"setup.py"}, walkRel(t, root, tempDir(t)))
}

func TestWalkMissingRoot(t *testing.T) {
	assert.Empty(t, walkRel(t, filepath.Join(tempDir(t), "nope"), tempDir(t)))
}

func TestWalkSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := tempDir(t)
	outside := tempDir(t)
	writeTree(t, outside, `
-- shared.py --
import shared
-- lib/inner.py --
import inner
`)
	require.NoError(t, os.Symlink(filepath.Join(outside, "shared.py"), filepath.Join(root, "link.py")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "lib"), filepath.Join(root, "lib")))

	var got []SourceFile
	for f := range Walk(root, tempDir(t)) {
		got = append(got, f)
	}
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(root, "link.py"), got[0].Path)
	assert.Equal(t, filepath.Join(outside, "shared.py"), got[0].Resolved)
}

func TestExcludedDirsIsCopy(t *testing.T) {
	dirs := ExcludedDirs()
	require.Contains(t, dirs, "node_modules")
	dirs[0] = "changed"
	assert.NotContains(t, ExcludedDirs(), "changed")
}

func TestHasFilePathPrefix(t *testing.T) {
	sep := string(filepath.Separator)
	base := sep + filepath.Join("work", "venv")

	assert.True(t, hasFilePathPrefix(base, base))
	assert.True(t, hasFilePathPrefix(filepath.Join(base, "a.py"), base))
	assert.False(t, hasFilePathPrefix(base+"2"+sep+"a.py", base))
	assert.False(t, hasFilePathPrefix(sep+"work", base))
	assert.True(t, hasFilePathPrefix(base, ""))
}

func TestWalkSymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	target := tempDir(t)
	writeTree(t, target, `
-- main.py --
import requests
-- pkg/mod.py --
import yaml
-- venv/lib.py --
import skipped
`)
	link := filepath.Join(tempDir(t), "link")
	require.NoError(t, os.Symlink(target, link))

	var got []string
	for f := range Walk(link, tempDir(t)) {
		rel, err := filepath.Rel(target, f.Path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)
	assert.Equal(t, []string{"main.py", "pkg/mod.py"}, got)
}
