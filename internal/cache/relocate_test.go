// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCache fills dir with a representative cache tree.
func seedCache(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "c1_files"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib", "htmlwidgets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chunks.json"), []byte(`{"chunk_definitions":[]}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c1.html"), []byte("<html/>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c1_files", "plot.png"), []byte("png"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "htmlwidgets", "w.js"), []byte("js"), 0o600))
}

// listCache returns the relative paths of all files under dir.
func listCache(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestRelocateUnsavedMovesFolder(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())
	docs := t.TempDir()

	oldDir := Folder("", "doc1")
	seedCache(t, oldDir)
	want := listCache(t, oldDir)

	newPath := filepath.Join(docs, "report.nb")
	warns := Relocate("", newPath, "doc1")
	assert.Empty(t, warns)

	newDir := Folder(newPath, "doc1")
	assert.NoDirExists(t, oldDir)
	assert.Equal(t, want, listCache(t, newDir))
}

func TestRelocateSavedCopiesFolder(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())
	docs := t.TempDir()

	oldPath := filepath.Join(docs, "old.nb")
	newPath := filepath.Join(docs, "new.nb")

	oldDir := Folder(oldPath, "doc1")
	seedCache(t, oldDir)
	want := listCache(t, oldDir)

	warns := Relocate(oldPath, newPath, "doc1")
	assert.Empty(t, warns)

	// Both folders exist afterwards with identical contents.
	assert.Equal(t, want, listCache(t, oldDir))
	assert.Equal(t, want, listCache(t, Folder(newPath, "doc1")))

	got, err := os.ReadFile(filepath.Join(Folder(newPath, "doc1"), "c1.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(got))
}

func TestRelocateNoSource(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())
	docs := t.TempDir()

	warns := Relocate("", filepath.Join(docs, "report.nb"), "ghost")
	assert.Empty(t, warns)
	assert.NoDirExists(t, Folder(filepath.Join(docs, "report.nb"), "ghost"))
}

func TestRelocateTargetExists(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())
	docs := t.TempDir()

	oldDir := Folder("", "doc1")
	seedCache(t, oldDir)

	newPath := filepath.Join(docs, "report.nb")
	newDir := Folder(newPath, "doc1")
	require.NoError(t, os.MkdirAll(newDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(newDir, "keep.html"), []byte("keep"), 0o600))

	warns := Relocate("", newPath, "doc1")
	assert.Empty(t, warns)

	// No destructive overwrite: both sides are untouched.
	assert.DirExists(t, oldDir)
	assert.FileExists(t, filepath.Join(newDir, "keep.html"))
	assert.NoFileExists(t, filepath.Join(newDir, "c1.html"))
}

func TestRemoveUnsaved(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	dir := Folder("", "doc1")
	seedCache(t, dir)

	warns := RemoveUnsaved("doc1")
	assert.Empty(t, warns)
	assert.NoDirExists(t, dir)
}

func TestRemoveUnsavedLeavesSavedCache(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())
	docs := t.TempDir()

	docPath := filepath.Join(docs, "report.nb")
	dir := Folder(docPath, "doc1")
	seedCache(t, dir)

	warns := RemoveUnsaved("doc1")
	assert.Empty(t, warns)
	assert.DirExists(t, dir)
}
