// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"net/http"

	"github.com/staranto/notebookd/internal/registry"
)

type docParams struct {
	DocID string `json:"doc_id"`
	Path  string `json:"path"`
}

// handleOpenDoc registers a document with the registry. An empty path opens
// an unsaved document; its cache lives in the scratch area until saved.
func (s *Server) handleOpenDoc(w http.ResponseWriter, r *http.Request) {
	var p docParams
	if !decodeParams(w, r, &p) {
		return
	}

	doc := s.Registry.Open(p.Path)
	writeJSON(w, http.StatusOK, map[string]string{"doc_id": doc.ID, "path": doc.Path})
}

// handleRenameDoc records a rename or first save. Subscribers relocate the
// cache folder as a side effect.
func (s *Server) handleRenameDoc(w http.ResponseWriter, r *http.Request) {
	var p docParams
	if !decodeParams(w, r, &p) {
		return
	}
	if p.DocID == "" || p.Path == "" {
		writeError(w, http.StatusBadRequest, errors.New("doc_id and path are required"))
		return
	}

	if err := s.Registry.Rename(p.DocID, p.Path); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, registry.ErrUnknownDoc) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// handleCloseDoc drops a document. Subscribers delete the scratch cache if
// the document was never saved; a saved document's sidecar stays put.
func (s *Server) handleCloseDoc(w http.ResponseWriter, r *http.Request) {
	var p docParams
	if !decodeParams(w, r, &p) {
		return
	}
	if p.DocID == "" {
		writeError(w, http.StatusBadRequest, errors.New("doc_id is required"))
		return
	}

	s.Registry.Remove(p.DocID)
	writeJSON(w, http.StatusOK, struct{}{})
}
