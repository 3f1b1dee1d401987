// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// Relocate reacts to a document rename by bringing its cache folder along.
// If the old folder is missing or the new one already exists there is
// nothing that can safely be done and the call is a silent no-op.
//
// A previously unsaved document (empty oldPath) owns its scratch folder
// outright, so the whole folder moves to the saved-side location. A
// saved-to-saved rename copies instead, leaving the old cache behind so it
// can still serve until the document's next write.
func Relocate(oldPath, newPath, docID string) []error {
	oldDir := Folder(oldPath, docID)
	newDir := Folder(newPath, docID)

	if _, err := os.Stat(oldDir); err != nil {
		return nil
	}
	if _, err := os.Stat(newDir); err == nil {
		return nil
	}

	if oldPath == "" {
		if err := os.Rename(oldDir, newDir); err != nil {
			return []error{fmt.Errorf("failed to move cache folder to %s: %w", newDir, err)}
		}
		log.Debugf("moved cache folder %s to %s", oldDir, newDir)
		return nil
	}

	return copyCache(oldDir, newDir)
}

// RemoveUnsaved deletes the scratch cache folder for a document closed
// without ever being saved. For a saved document the scratch folder never
// existed, so its sidecar cache is left untouched.
func RemoveUnsaved(docID string) []error {
	dir := Folder("", docID)
	if err := os.RemoveAll(dir); err != nil {
		return []error{fmt.Errorf("failed to remove cache folder %s: %w", dir, err)}
	}
	return nil
}

// copyCache recreates the tree under from at to. Directories become
// directories, regular files are copied byte-for-byte. A failed item is
// recorded as a warning and the walk continues.
func copyCache(from, to string) []error {
	if err := os.MkdirAll(to, 0o755); err != nil { //nolint:mnd
		return []error{fmt.Errorf("failed to create cache folder %s: %w", to, err)}
	}

	var warns []error
	var copied uint64
	_ = filepath.WalkDir(from, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warns = append(warns, err)
			return nil
		}
		if path == from {
			return nil
		}

		rel, err := filepath.Rel(from, path)
		if err != nil {
			warns = append(warns, err)
			return nil
		}
		target := filepath.Join(to, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil { //nolint:mnd
				warns = append(warns, fmt.Errorf("failed to create %s: %w", target, err))
			}
			return nil
		}

		n, err := copyFile(path, target)
		if err != nil {
			warns = append(warns, fmt.Errorf("failed to copy %s: %w", rel, err))
			return nil
		}
		copied += uint64(n)
		return nil
	})

	log.Debugf("copied %s from %s to %s", humanize.Bytes(copied), from, to)
	return warns
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
