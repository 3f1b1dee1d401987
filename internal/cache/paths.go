// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ManifestFile is the chunk-definition manifest inside a cache folder.
	ManifestFile = "chunks.json"

	// LibDirName is the shared-library folder inside a cache folder. It is
	// never subject to chunk garbage collection.
	LibDirName = "lib"

	cacheSuffix    = ".nb.cached"
	unsavedDirName = "unsaved-notebooks"
)

// ScratchRoot resolves the base directory for unsaved-document caches.
// Precedence:
//  1. NOTEBOOKD_SCRATCH_DIR, if set and non-empty
//  2. os.UserCacheDir()/notebookd
func ScratchRoot() string {
	if d, ok := os.LookupEnv("NOTEBOOKD_SCRATCH_DIR"); ok && d != "" {
		return d
	}
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "notebookd")
}

// Folder derives a document's cache folder. An unsaved document (empty path)
// keeps its chunk output in the scratch area keyed by doc ID; a saved
// document keeps it alongside the document itself. No existence check is
// made and nothing is created.
func Folder(docPath, docID string) string {
	if docPath == "" {
		return filepath.Join(ScratchRoot(), unsavedDirName, docID+cacheSuffix)
	}

	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(filepath.Dir(docPath), stem+cacheSuffix)
}

// ManifestPath is the location of the chunks.json manifest for a document.
func ManifestPath(docPath, docID string) string {
	return filepath.Join(Folder(docPath, docID), ManifestFile)
}

// OutputPath is the location of a chunk's rendered HTML output.
func OutputPath(docPath, docID, chunkID string) string {
	return filepath.Join(Folder(docPath, docID), chunkID+".html")
}

// LibDir is the location of the shared-library folder for a document.
func LibDir(docPath, docID string) string {
	return filepath.Join(Folder(docPath, docID), LibDirName)
}
