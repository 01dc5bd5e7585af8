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

// Package formats serializes the Project Model into its output projections:
// JSON, a fixed-order Markdown report, JSONL chunk streams for RAG
// consumers, and flat graph records suitable for relational persistence.
//
// The projections are pure functions of the model; field order and section
// order are fixed, whitespace is a formatting option.
package formats
