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

package rag

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// hashKey is fixed: semantic hashes must be stable across runs and machines.
var hashKey = []byte("rustmap-semantic-hash-key-32bb!!")

// semanticHash renders the 64-bit content hash as hex for chunk
// deduplication.
func semanticHash(content string) string {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// Key length is a compile-time constant of 32 bytes; New64 cannot
		// fail on it.
		panic(err)
	}
	_, _ = h.Write([]byte(content))
	return fmt.Sprintf("%x", h.Sum64())
}
