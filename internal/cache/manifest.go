// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// defsField wraps the chunk-definition array inside chunks.json.
const defsField = "chunk_definitions"

// ErrManifestParse marks a chunks.json that exists but cannot be decoded.
var ErrManifestParse = errors.New("malformed chunk manifest")

type manifestFile struct {
	ChunkDefinitions ChunkDefs `json:"chunk_definitions"`
}

// SetChunkDefs rewrites the manifest for a document with newDefs and cleans
// up output belonging to chunks that are no longer present. Cleanup is best
// effort and never fails the write; write failures propagate.
func SetChunkDefs(docPath, docID string, newDefs ChunkDefs) error {
	dir := Folder(docPath, docID)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache folder: %w", err)
	}

	// Get the old set of chunk IDs so we can clean up any not in the new
	// set of chunks.
	oldDefs, err := GetChunkDefs(docPath, docID)
	if err != nil {
		log.WithError(err).Warnf("skipping chunk cleanup for doc %s", docID)
	} else {
		for _, warn := range CleanChunks(dir, oldDefs, newDefs) {
			log.WithError(warn).Warnf("chunk cleanup in %s", dir)
		}
	}

	if newDefs == nil {
		newDefs = ChunkDefs{}
	}
	data, err := json.Marshal(manifestFile{ChunkDefinitions: newDefs})
	if err != nil {
		return fmt.Errorf("failed to encode chunk manifest: %w", err)
	}

	// Write through a temp file so a crash can't leave a torn manifest
	// behind.
	target := filepath.Join(dir, ManifestFile)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write chunk manifest: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to write chunk manifest: %w", err)
	}

	return nil
}

// GetChunkDefs reads the manifest for a document. A missing manifest is not
// an error and yields a nil slice; a manifest that exists but is malformed
// yields an error wrapping ErrManifestParse and no data.
func GetChunkDefs(docPath, docID string) (ChunkDefs, error) {
	data, err := os.ReadFile(filepath.Join(Folder(docPath, docID), ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read chunk manifest: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrManifestParse, ManifestFile)
	}
	if defs := gjson.GetBytes(data, defsField); !defs.Exists() || !defs.IsArray() {
		return nil, fmt.Errorf("%w: missing %s array", ErrManifestParse, defsField)
	}

	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}

	return mf.ChunkDefinitions, nil
}
