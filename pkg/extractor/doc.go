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

// Package extractor runs the extraction pipeline: project discovery, a
// single-pass Tree-sitter traversal of every Rust source file, and the
// finalization passes that stitch per-file results into a ProjectModel.
//
// Discovery walks the project root, applies include/exclude globs and the
// file-size cap, and reads the project identity from Cargo.toml. Each file is
// parsed with Tree-sitter and visited once; the visitor emits CodeElements
// with identity (pkg/model) and metrics (pkg/complexity), the file's imports,
// and the raw references found inside element bodies.
//
// Files can be processed sequentially or by a bounded worker pool. Each
// visitor owns its own ordinal counter, so the merge pass renumbers element
// IDs globally in discovery order; sequential and parallel runs produce
// bit-identical models.
//
// Per-file read and parse failures are accumulated as values and reported as
// a PartialFailure alongside the model; they do not stop the other files from
// being extracted. Only when every file fails does the run return an error
// instead of a model.
package extractor
