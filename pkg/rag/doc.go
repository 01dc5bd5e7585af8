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

// Package rag projects a ProjectModel into a retrieval-optimized document:
// one chunk per included element with semantic metadata and an estimated
// token count, embedding-strategy hints, a public API surface summary, and
// optional training examples. Chunks are not split or merged to fit the
// configured chunk sizes.
//
// The chunker is total over the model: it never fails, it only filters.
// Token counts are estimated at four characters per token; chunk identity for
// deduplication is a 64-bit HighwayHash of the chunk content rendered as hex.
package rag
