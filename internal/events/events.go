// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package events carries output notifications from the cache subsystem to
// the connected client.
package events

import (
	"github.com/apex/log"
)

// Event types pushed to the client.
const (
	TypeChunkOutput         = "chunk_output"
	TypeChunkOutputFinished = "chunk_output_finished"
)

// ChunkOutput announces that rendered output for a chunk is ready to fetch.
type ChunkOutput struct {
	URL     string `json:"url"`
	ChunkID string `json:"chunk_id"`
	DocID   string `json:"doc_id"`
}

// ChunkOutputFinished marks the end of a replay pass for a document.
type ChunkOutputFinished struct {
	Path      string `json:"path"`
	RequestID string `json:"request_id"`
}

// Event is one notification on the outbound channel.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Emitter is the outbound notification channel provided by the host.
type Emitter interface {
	Enqueue(Event) error
}

// Queue is a buffered in-process Emitter drained by the transport layer.
type Queue struct {
	ch chan Event
}

const defaultBuffer = 256

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultBuffer
	}
	return &Queue{ch: make(chan Event, size)}
}

// Enqueue never blocks. When the client is not draining fast enough the
// event is dropped with a warning rather than stalling execution.
func (q *Queue) Enqueue(e Event) error {
	select {
	case q.ch <- e:
	default:
		log.Warnf("event queue full, dropping %s event", e.Type)
	}
	return nil
}

// C exposes the stream for the consumer side.
func (q *Queue) C() <-chan Event {
	return q.ch
}
