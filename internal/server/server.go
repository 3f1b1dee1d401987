// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the inbound surface: the chunk RPC endpoints, the
// cached-output file handler, and the client event stream.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/staranto/notebookd/internal/events"
	"github.com/staranto/notebookd/internal/notebook"
	"github.com/staranto/notebookd/internal/registry"
)

type Server struct {
	Registry *registry.Registry
	Notebook *notebook.Service
	Events   *events.Queue
}

func New(reg *registry.Registry, nb *notebook.Service, q *events.Queue) *Server {
	return &Server{Registry: reg, Notebook: nb, Events: q}
}

// Handler wires up all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rpc/execute_inline_chunk", s.handleExecuteInlineChunk)
	mux.HandleFunc("POST /rpc/refresh_chunk_output", s.handleRefreshChunkOutput)
	mux.HandleFunc("POST /rpc/set_chunk_defs", s.handleSetChunkDefs)
	mux.HandleFunc("POST /rpc/get_chunk_defs", s.handleGetChunkDefs)
	mux.HandleFunc("POST /rpc/open_doc", s.handleOpenDoc)
	mux.HandleFunc("POST /rpc/rename_doc", s.handleRenameDoc)
	mux.HandleFunc("POST /rpc/close_doc", s.handleCloseDoc)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc(notebook.OutputURLPrefix+"/", s.handleChunkOutput)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
