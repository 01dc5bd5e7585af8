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

package config

// Template returns the commented rustmap.toml template written by
// `rustmap config init` and `rustmap config template`.
func Template() string {
	return `# rustmap configuration
# Place this file at the project root as rustmap.toml.

[extraction]
# Extract /// and //! documentation comments.
include_docs = true

# Include private items. Children of skipped private items are skipped too.
include_private = false

# Reserved; has no effect on extraction.
parse_dependencies = false

# Reject source files above this size (bytes).
max_file_size = 10485760

# Per-file parse parallelism. 1 is sequential; output is identical either way.
workers = 1

[filters]
# Globs are relative to the project root. ** matches any depth.
include = ["src/**/*.rs"]
exclude = ["target/**"]

[output]
# One of: json, markdown, rag, graph.
format = "json"
pretty = true

[rag]
target_chunk_size = 512
max_chunk_size = 1024
min_chunk_size = 100
chunk_overlap = 50
include_private_items = false
include_test_code = false
min_complexity = 0
min_documentation_quality = "Missing"
semantic_depth = "standard"
generate_training_examples = true
max_training_examples_per_chunk = 3
include_embeddings = false
# embedding_model = "nomic-embed-text"
`
}
