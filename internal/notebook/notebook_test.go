// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/notebookd/internal/cache"
	"github.com/staranto/notebookd/internal/events"
	"github.com/staranto/notebookd/internal/render"
	"github.com/staranto/notebookd/internal/scheduler"
)

// recorder collects enqueued events for inspection.
type recorder struct {
	events []events.Event
}

func (r *recorder) Enqueue(e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

// fileRenderer writes the chunk content to the output file verbatim.
var fileRenderer = render.Func(func(_ context.Context, _, content, _, outputFile string) error {
	return os.WriteFile(outputFile, []byte(content), 0o600)
})

func newTestService(rec *recorder) *Service {
	return New(fileRenderer, rec, scheduler.Inline{})
}

func chunkDef(chunkID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"chunk_id":%q}`, chunkID))
}

func TestExecuteChunk(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	rec := &recorder{}
	s := newTestService(rec)

	err := s.ExecuteChunk(context.Background(), "", "doc1", "c1", "{}", "<p>out</p>")
	require.NoError(t, err)

	got, err := os.ReadFile(cache.OutputPath("", "doc1", "c1"))
	require.NoError(t, err)
	assert.Equal(t, "<p>out</p>", string(got))
	assert.DirExists(t, cache.LibDir("", "doc1"))

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.TypeChunkOutput, rec.events[0].Type)
	payload, ok := rec.events[0].Payload.(events.ChunkOutput)
	require.True(t, ok)
	assert.Equal(t, "c1", payload.ChunkID)
	assert.Equal(t, "doc1", payload.DocID)
	assert.Equal(t, "/chunk_output/doc1/c1.html", payload.URL)
}

func TestExecuteChunkRenderFailure(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	renderErr := errors.New("object 'x' not found")
	rec := &recorder{}
	s := New(render.Func(func(context.Context, string, string, string, string) error {
		return renderErr
	}), rec, scheduler.Inline{})

	err := s.ExecuteChunk(context.Background(), "", "doc1", "c1", "{}", "x")
	assert.ErrorIs(t, err, renderErr)
	assert.Empty(t, rec.events, "no notification for a failed render")
}

func TestRefreshChunkOutput(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	require.NoError(t, cache.SetChunkDefs("", "doc1", cache.ChunkDefs{chunkDef("x"), chunkDef("y")}))

	rec := &recorder{}
	s := newTestService(rec)

	require.NoError(t, s.RefreshChunkOutput("", "doc1", "req42"))

	require.Len(t, rec.events, 3)
	assert.Equal(t, events.TypeChunkOutput, rec.events[0].Type)
	assert.Equal(t, "x", rec.events[0].Payload.(events.ChunkOutput).ChunkID)
	assert.Equal(t, events.TypeChunkOutput, rec.events[1].Type)
	assert.Equal(t, "y", rec.events[1].Payload.(events.ChunkOutput).ChunkID)

	assert.Equal(t, events.TypeChunkOutputFinished, rec.events[2].Type)
	fin := rec.events[2].Payload.(events.ChunkOutputFinished)
	assert.Equal(t, "req42", fin.RequestID)
	assert.Empty(t, fin.Path)
}

func TestRefreshChunkOutputNoManifest(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	rec := &recorder{}
	s := newTestService(rec)

	require.NoError(t, s.RefreshChunkOutput("", "ghost", "req1"))
	assert.Empty(t, rec.events)
}

func TestRefreshChunkOutputBadManifest(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	dir := cache.Folder("", "doc1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, cache.ManifestFile), []byte("{"), 0o600))

	rec := &recorder{}
	s := newTestService(rec)

	err := s.RefreshChunkOutput("", "doc1", "req1")
	assert.ErrorIs(t, err, cache.ErrManifestParse)
	assert.Empty(t, rec.events)
}

// A manifest rewrite landing during the replay delay must not change what
// gets replayed: the set is captured at schedule time.
func TestRefreshReplaysSnapshot(t *testing.T) {
	t.Setenv("NOTEBOOKD_SCRATCH_DIR", t.TempDir())

	require.NoError(t, cache.SetChunkDefs("", "doc1", cache.ChunkDefs{chunkDef("x")}))

	rec := &recorder{}
	var deferred func()
	s := New(fileRenderer, rec, scheduler.Func(func(_ time.Duration, fn func()) {
		deferred = fn
	}))

	require.NoError(t, s.RefreshChunkOutput("", "doc1", "req1"))
	require.NoError(t, cache.SetChunkDefs("", "doc1", cache.ChunkDefs{chunkDef("z")}))

	require.NotNil(t, deferred)
	deferred()

	require.Len(t, rec.events, 2)
	assert.Equal(t, "x", rec.events[0].Payload.(events.ChunkOutput).ChunkID)
	assert.Equal(t, events.TypeChunkOutputFinished, rec.events[1].Type)
}
