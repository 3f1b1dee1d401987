// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/notebookd/internal/cache"
)

// ExecuteChunk renders one chunk into the document's cache folder and
// announces the output to the client. Rendering failures are expected and
// meaningful (e.g. a runtime error in the chunk's code), so they come back
// unchanged with no retry.
func (s *Service) ExecuteChunk(ctx context.Context, docPath, docID, chunkID, options, content string) error {
	// Ensure we have a place to put the output.
	out := cache.OutputPath(docPath, docID, chunkID)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache folder: %w", err)
	}

	// And a library path for shared assets.
	libDir := cache.LibDir(docPath, docID)
	if err := os.MkdirAll(libDir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create library folder: %w", err)
	}

	if err := s.Renderer.Render(ctx, options, content, libDir, out); err != nil {
		return err
	}

	log.Debugf("rendered chunk %s of doc %s to %s", chunkID, docID, out)
	return s.enqueueChunkOutput(docID, chunkID)
}
