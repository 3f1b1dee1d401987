// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package notebook orchestrates chunk execution and replay against the
// on-disk chunk cache.
package notebook

import (
	"time"

	"github.com/staranto/notebookd/internal/events"
	"github.com/staranto/notebookd/internal/render"
	"github.com/staranto/notebookd/internal/scheduler"
)

// OutputURLPrefix is the path under which cached chunk output is served.
const OutputURLPrefix = "/chunk_output"

// DefaultReplayDelay keeps replay events out of the triggering
// request/response cycle.
const DefaultReplayDelay = 10 * time.Millisecond

// Service executes chunks and replays their cached output.
type Service struct {
	Renderer    render.Renderer
	Events      events.Emitter
	Scheduler   scheduler.Scheduler
	ReplayDelay time.Duration
}

func New(r render.Renderer, em events.Emitter, s scheduler.Scheduler) *Service {
	return &Service{
		Renderer:    r,
		Events:      em,
		Scheduler:   s,
		ReplayDelay: DefaultReplayDelay,
	}
}

// enqueueChunkOutput tells the client where to fetch a chunk's output.
func (s *Service) enqueueChunkOutput(docID, chunkID string) error {
	return s.Events.Enqueue(events.Event{
		Type: events.TypeChunkOutput,
		Payload: events.ChunkOutput{
			URL:     OutputURLPrefix + "/" + docID + "/" + chunkID + ".html",
			ChunkID: chunkID,
			DocID:   docID,
		},
	})
}
