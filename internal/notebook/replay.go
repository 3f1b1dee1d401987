// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"github.com/apex/log"

	"github.com/staranto/notebookd/internal/cache"
	"github.com/staranto/notebookd/internal/events"
)

// RefreshChunkOutput replays a document's cached chunk output to the client,
// typically after an editor reload. The replay is deferred briefly so the
// triggering request can return before the notifications land. The chunk set
// is captured here, at schedule time; a manifest write racing the delay does
// not change what gets replayed.
func (s *Service) RefreshChunkOutput(docPath, docID, requestID string) error {
	defs, err := cache.GetChunkDefs(docPath, docID)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}

	chunkIDs := defs.ChunkIDs()
	delay := s.ReplayDelay
	if delay <= 0 {
		delay = DefaultReplayDelay
	}

	s.Scheduler.After(delay, func() {
		s.replayChunkOutputs(docPath, docID, requestID, chunkIDs)
	})

	return nil
}

// replayChunkOutputs plays back every cached chunk in manifest order and
// closes with a finished event carrying the caller's request ID.
func (s *Service) replayChunkOutputs(docPath, docID, requestID string, chunkIDs []string) {
	for _, chunkID := range chunkIDs {
		if err := s.enqueueChunkOutput(docID, chunkID); err != nil {
			log.WithError(err).Warnf("failed to replay chunk %s of doc %s", chunkID, docID)
		}
	}

	if err := s.Events.Enqueue(events.Event{
		Type: events.TypeChunkOutputFinished,
		Payload: events.ChunkOutputFinished{
			Path:      docPath,
			RequestID: requestID,
		},
	}); err != nil {
		log.WithError(err).Warnf("failed to finish replay for doc %s", docID)
	}
}
