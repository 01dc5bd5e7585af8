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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kraklabs/rustmap/pkg/model"
)

// DiscoveryOptions control project discovery.
type DiscoveryOptions struct {
	// Include globs select source files relative to the project root.
	// Empty means every .rs file.
	Include []string

	// Exclude globs remove files (and prune whole directories) after the
	// include step. The target directory is always pruned.
	Exclude []string

	// MaxFileSize rejects files above the threshold in bytes; 0 disables
	// the check.
	MaxFileSize int64
}

// SourceFile is one discovered file with its contents. RelPath is the
// canonical path for display and IDs.
type SourceFile struct {
	AbsPath string
	RelPath string
	Size    int64
	Content []byte
}

// Discovery is the result of walking a project root: identity from the
// manifest plus the ordered file set. File order is sorted by relative path
// and is the stable discovery order every later stage preserves.
type Discovery struct {
	RootPath    string
	Project     model.ProjectInfo
	Files       []SourceFile
	SkipReasons map[string]int
	ReadErrors  []model.FileError
}

// DiscoverProject validates the root, reads Cargo.toml, and collects the
// source files selected by the options. Unreadable files are recorded in
// ReadErrors and skipped; only a bad root or manifest is fatal.
func DiscoverProject(rootPath string, opts DiscoveryOptions, logger *slog.Logger) (*Discovery, error) {
	if logger == nil {
		logger = slog.Default()
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", absRoot)
	}

	project, err := ReadManifest(absRoot)
	if err != nil {
		return nil, err
	}

	d := &Discovery{
		RootPath:    absRoot,
		Project:     project,
		SkipReasons: make(map[string]int),
	}

	logger.Info("discover.start", "root", absRoot, "project", project.Name)

	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("discover.walk.error", "path", path, "err", err)
			return nil
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if rel == "." {
				return nil
			}
			if rel == "target" || strings.HasPrefix(entry.Name(), ".") || matchesAny(rel, opts.Exclude) {
				d.SkipReasons["excluded_dir"]++
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(rel, ".rs") {
			return nil
		}
		if len(opts.Include) > 0 && !matchesAny(rel, opts.Include) {
			d.SkipReasons["not_included"]++
			return nil
		}
		if matchesAny(rel, opts.Exclude) {
			d.SkipReasons["excluded"]++
			return nil
		}

		fi, err := entry.Info()
		if err != nil {
			d.ReadErrors = append(d.ReadErrors, model.FileError{Path: rel, Stage: "read", Err: err.Error()})
			return nil
		}
		if opts.MaxFileSize > 0 && fi.Size() > opts.MaxFileSize {
			d.SkipReasons["too_large"]++
			logger.Warn("discover.skip.large_file", "path", rel, "size", fi.Size(), "limit", opts.MaxFileSize)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			d.ReadErrors = append(d.ReadErrors, model.FileError{Path: rel, Stage: "read", Err: err.Error()})
			return nil
		}

		d.Files = append(d.Files, SourceFile{
			AbsPath: path,
			RelPath: rel,
			Size:    fi.Size(),
			Content: content,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk project: %w", walkErr)
	}

	// WalkDir yields lexical order already, but sort explicitly: discovery
	// order is a determinism contract, not a filesystem accident.
	sort.Slice(d.Files, func(i, j int) bool { return d.Files[i].RelPath < d.Files[j].RelPath })

	logger.Info("discover.complete",
		"files", len(d.Files),
		"skipped", d.SkipReasons,
		"read_errors", len(d.ReadErrors),
	)
	return d, nil
}
