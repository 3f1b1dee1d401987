// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CleanChunks removes output files for chunks present in oldDefs but absent
// from newDefs: the stale chunk's HTML file and its _files folder. Missing
// files are no-ops. Each failure becomes a warning in the returned slice;
// one failure never stops the rest of the batch.
func CleanChunks(cacheDir string, oldDefs, newDefs ChunkDefs) []error {
	newIDs := make(map[string]struct{})
	for _, id := range newDefs.ChunkIDs() {
		newIDs[id] = struct{}{}
	}

	stale := make(map[string]struct{})
	for _, id := range oldDefs.ChunkIDs() {
		if _, ok := newIDs[id]; !ok {
			stale[id] = struct{}{}
		}
	}

	// Sorted so repeated runs log in a stable order.
	staleIDs := make([]string, 0, len(stale))
	for id := range stale {
		staleIDs = append(staleIDs, id)
	}
	sort.Strings(staleIDs)

	var warns []error
	for _, id := range staleIDs {
		html := filepath.Join(cacheDir, id+".html")
		if err := os.Remove(html); err != nil && !os.IsNotExist(err) {
			warns = append(warns, fmt.Errorf("failed to remove %s: %w", html, err))
		}
		files := filepath.Join(cacheDir, id+"_files")
		if err := os.RemoveAll(files); err != nil {
			warns = append(warns, fmt.Errorf("failed to remove %s: %w", files, err))
		}
	}

	return warns
}
