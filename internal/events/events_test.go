// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDelivery(t *testing.T) {
	q := NewQueue(4)

	require.NoError(t, q.Enqueue(Event{Type: TypeChunkOutput, Payload: ChunkOutput{ChunkID: "c1"}}))
	require.NoError(t, q.Enqueue(Event{Type: TypeChunkOutputFinished}))

	e := <-q.C()
	assert.Equal(t, TypeChunkOutput, e.Type)
	e = <-q.C()
	assert.Equal(t, TypeChunkOutputFinished, e.Type)
}

func TestQueueOverflowDropsInsteadOfBlocking(t *testing.T) {
	q := NewQueue(1)

	require.NoError(t, q.Enqueue(Event{Type: TypeChunkOutput}))
	require.NoError(t, q.Enqueue(Event{Type: TypeChunkOutputFinished}))

	e := <-q.C()
	assert.Equal(t, TypeChunkOutput, e.Type)

	select {
	case e := <-q.C():
		t.Fatalf("unexpected queued event %q", e.Type)
	default:
	}
}
