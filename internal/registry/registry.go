// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package registry tracks open documents and fans rename/remove
// notifications out to subscribers. Subscriptions are wired once at startup;
// there is no ambient global hookup.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownDoc marks a lookup for a document ID that is not open.
var ErrUnknownDoc = errors.New("unknown document id")

// Document identifies an open document. ID is stable for the session; Path
// is empty until the document is first saved.
type Document struct {
	ID   string
	Path string
}

// RenamedFunc receives the document's previous path and its new identity.
type RenamedFunc func(oldPath string, doc Document)

// RemovedFunc receives the ID of a document that was closed.
type RemovedFunc func(docID string)

type Registry struct {
	mu      sync.RWMutex
	docs    map[string]Document
	renamed []RenamedFunc
	removed []RemovedFunc
}

func New() *Registry {
	return &Registry{docs: make(map[string]Document)}
}

// OnDocRenamed subscribes fn to rename events, including the save of a
// previously unsaved document.
func (r *Registry) OnDocRenamed(fn RenamedFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renamed = append(r.renamed, fn)
}

// OnDocRemoved subscribes fn to document-removal events.
func (r *Registry) OnDocRemoved(fn RemovedFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, fn)
}

// Open registers a saved document and returns its identity.
func (r *Registry) Open(path string) Document {
	doc := Document{ID: uuid.NewString(), Path: path}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return doc
}

// OpenUnsaved registers a document that has no path yet.
func (r *Registry) OpenUnsaved() Document {
	return r.Open("")
}

// Path resolves a document ID to its current saved path.
func (r *Registry) Path(docID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[docID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDoc, docID)
	}
	return doc.Path, nil
}

// Rename updates a document's path and notifies subscribers with the old
// path and the new identity. Saving an unsaved document is a rename from the
// empty path.
func (r *Registry) Rename(docID, newPath string) error {
	r.mu.Lock()
	doc, ok := r.docs[docID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownDoc, docID)
	}
	oldPath := doc.Path
	doc.Path = newPath
	r.docs[docID] = doc
	handlers := make([]RenamedFunc, len(r.renamed))
	copy(handlers, r.renamed)
	r.mu.Unlock()

	for _, fn := range handlers {
		fn(oldPath, doc)
	}
	return nil
}

// Remove drops a document and notifies subscribers. Removing an unknown ID
// is a no-op.
func (r *Registry) Remove(docID string) {
	r.mu.Lock()
	_, ok := r.docs[docID]
	delete(r.docs, docID)
	handlers := make([]RemovedFunc, len(r.removed))
	copy(handlers, r.removed)
	r.mu.Unlock()

	if !ok {
		return
	}
	for _, fn := range handlers {
		fn(docID)
	}
}
