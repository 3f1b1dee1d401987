// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/apex/log"

	"github.com/staranto/notebookd/internal/cache"
)

type executeParams struct {
	DocPath string `json:"doc_path"`
	DocID   string `json:"doc_id"`
	ChunkID string `json:"chunk_id"`
	Options string `json:"options"`
	Content string `json:"content"`
}

type refreshParams struct {
	DocPath   string `json:"doc_path"`
	DocID     string `json:"doc_id"`
	RequestID string `json:"request_id"`
}

type chunkDefsParams struct {
	DocPath string          `json:"doc_path"`
	DocID   string          `json:"doc_id"`
	Defs    cache.ChunkDefs `json:"chunk_definitions"`
}

// decodeParams reads a JSON request body into params, answering 400 itself
// on a malformed body.
func decodeParams(w http.ResponseWriter, r *http.Request, params any) bool {
	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad request body: %w", err))
		return false
	}
	return true
}

func (s *Server) handleExecuteInlineChunk(w http.ResponseWriter, r *http.Request) {
	var p executeParams
	if !decodeParams(w, r, &p) {
		return
	}
	if p.DocID == "" || p.ChunkID == "" {
		writeError(w, http.StatusBadRequest, errors.New("doc_id and chunk_id are required"))
		return
	}

	if err := s.Notebook.ExecuteChunk(r.Context(), p.DocPath, p.DocID, p.ChunkID, p.Options, p.Content); err != nil {
		log.WithError(err).Errorf("execute_inline_chunk %s/%s", p.DocID, p.ChunkID)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleRefreshChunkOutput(w http.ResponseWriter, r *http.Request) {
	var p refreshParams
	if !decodeParams(w, r, &p) {
		return
	}
	if p.DocID == "" {
		writeError(w, http.StatusBadRequest, errors.New("doc_id is required"))
		return
	}

	if err := s.Notebook.RefreshChunkOutput(p.DocPath, p.DocID, p.RequestID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// Replay itself lands on the event stream after the delay; this call is
	// done.
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleSetChunkDefs(w http.ResponseWriter, r *http.Request) {
	var p chunkDefsParams
	if !decodeParams(w, r, &p) {
		return
	}
	if p.DocID == "" {
		writeError(w, http.StatusBadRequest, errors.New("doc_id is required"))
		return
	}

	if err := cache.SetChunkDefs(p.DocPath, p.DocID, p.Defs); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetChunkDefs(w http.ResponseWriter, r *http.Request) {
	var p chunkDefsParams
	if !decodeParams(w, r, &p) {
		return
	}
	if p.DocID == "" {
		writeError(w, http.StatusBadRequest, errors.New("doc_id is required"))
		return
	}

	defs, err := cache.GetChunkDefs(p.DocPath, p.DocID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, cache.ErrManifestParse) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	if defs == nil {
		defs = cache.ChunkDefs{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"chunk_definitions": defs})
}
