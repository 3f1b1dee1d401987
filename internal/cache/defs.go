// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// ChunkDefs is the ordered list of chunk definitions for a document. Each
// definition is opaque beyond its chunk_id field, so metadata written by the
// client survives a round-trip byte-for-byte.
type ChunkDefs []json.RawMessage

// ChunkIDs extracts the chunk_id from every definition, in order. Entries
// that are not objects or lack a string chunk_id are skipped, not errors.
func (d ChunkDefs) ChunkIDs() []string {
	ids := make([]string, 0, len(d))
	for _, def := range d {
		id := gjson.GetBytes(def, "chunk_id")
		if id.Exists() && id.Type == gjson.String {
			ids = append(ids, id.Str)
		}
	}
	return ids
}
