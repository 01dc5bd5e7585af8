// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kraklabs/rustmap/pkg/rag"
)

// WriteRagJSON serializes the whole RAG document as one JSON value.
func WriteRagJSON(w io.Writer, doc *rag.Document, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode rag document: %w", err)
	}
	return nil
}

// WriteRagJSONL streams the document as JSONL: the metadata line first, then
// one line per chunk. Suitable for ingestion pipelines that consume chunks
// independently.
func WriteRagJSONL(w io.Writer, doc *rag.Document) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(doc.Metadata); err != nil {
		return fmt.Errorf("encode rag metadata: %w", err)
	}
	for i := range doc.Chunks {
		if err := enc.Encode(&doc.Chunks[i]); err != nil {
			return fmt.Errorf("encode chunk %s: %w", doc.Chunks[i].ID, err)
		}
	}
	return nil
}
