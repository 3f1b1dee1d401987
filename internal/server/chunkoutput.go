// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/notebookd/internal/cache"
)

// handleChunkOutput serves files out of a document's cache folder.
// URI format is: /chunk_output/<doc-id>/...
func (s *Server) handleChunkOutput(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 {
		// Nothing addressable; an empty success keeps probes quiet.
		return
	}
	docID := parts[2]
	rest := parts[3:]

	docPath, err := s.Registry.Path(docID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	target := filepath.Join(cache.Folder(docPath, docID), filepath.Join(rest...))

	if rest[0] == cache.LibDirName {
		// Library assets are immutable per version, so the client may keep
		// them.
		w.Header().Set("Cache-Control", "public, max-age=86400")
	} else {
		// Chunk output changes between renders; force a fresh fetch every
		// time.
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
	}

	if fi, err := os.Stat(target); err == nil && !fi.IsDir() {
		log.Debugf("serving %s (%s)", target, humanize.Bytes(uint64(fi.Size())))
	}
	http.ServeFile(w, r, target)
}
