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

package extractor

import (
	"path/filepath"
	"strings"
)

// matchesGlob matches a slash-separated relative path against a glob pattern
// supporting *, ?, [..] (via path.Match semantics per segment) and ** for any
// number of path segments. A pattern without a separator matches against the
// base name, so "*.rs" works at any depth.
func matchesGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") {
		ok, err := filepath.Match(pattern, filepath.Base(path))
		return err == nil && ok
	}

	// "dir/**" matches the directory itself and everything under it.
	if prefix, found := strings.CutSuffix(pattern, "/**"); found {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
}

// matchSegments matches path segments against pattern segments, where a "**"
// pattern segment consumes zero or more path segments. Iterative two-pointer
// scan with backtracking to the last "**".
func matchSegments(segs, pats []string) bool {
	si, pi := 0, 0
	starSeg, starPat := -1, -1

	for si < len(segs) {
		switch {
		case pi < len(pats) && pats[pi] == "**":
			starPat = pi
			starSeg = si
			pi++
		case pi < len(pats) && segmentMatch(segs[si], pats[pi]):
			si++
			pi++
		case starPat >= 0:
			starSeg++
			si = starSeg
			pi = starPat + 1
		default:
			return false
		}
	}
	for pi < len(pats) && pats[pi] == "**" {
		pi++
	}
	return pi == len(pats)
}

func segmentMatch(seg, pat string) bool {
	ok, err := filepath.Match(pat, seg)
	return err == nil && ok
}

// matchesAny reports whether any pattern in the list matches the path.
func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesGlob(path, pattern) {
			return true
		}
	}
	return false
}
