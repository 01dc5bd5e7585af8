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

	"github.com/kraklabs/rustmap/pkg/model"
)

// WriteJSON serializes the model to the writer. Pretty output uses two-space
// indentation; compact output is a single line.
func WriteJSON(w io.Writer, m *model.ProjectModel, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode project model: %w", err)
	}
	return nil
}

// ReadJSON deserializes a model previously written with WriteJSON.
func ReadJSON(r io.Reader) (*model.ProjectModel, error) {
	var m model.ProjectModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode project model: %w", err)
	}
	return &m, nil
}
