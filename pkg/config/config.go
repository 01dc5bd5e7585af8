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

// Package config loads, validates and templates the extractor configuration.
//
// Configuration lives in rustmap.toml at the project root, or in
// .rustmap/config.yaml for projects that prefer YAML; both carry the same
// shape. Everything has a default, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/rustmap/pkg/rag"
)

// Output formats accepted by Validate.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatRag      = "rag"
	FormatGraph    = "graph"
)

// Extraction holds the options consumed by the extraction core.
type Extraction struct {
	// IncludeDocs extracts doc comments; off leaves every element's
	// doc_comments empty.
	IncludeDocs bool `toml:"include_docs" yaml:"include_docs" json:"include_docs"`

	// IncludePrivate keeps private items; off skips them and their
	// children.
	IncludePrivate bool `toml:"include_private" yaml:"include_private" json:"include_private"`

	// ParseDependencies is reserved and does not affect the core.
	ParseDependencies bool `toml:"parse_dependencies" yaml:"parse_dependencies" json:"parse_dependencies"`

	// MaxFileSize rejects files above this size in bytes at discovery.
	MaxFileSize int64 `toml:"max_file_size" yaml:"max_file_size" json:"max_file_size"`

	// Workers is the per-file parse parallelism; 1 is sequential.
	Workers int `toml:"workers" yaml:"workers" json:"workers"`
}

// Filters are the discovery include/exclude globs.
type Filters struct {
	Include []string `toml:"include" yaml:"include" json:"include"`
	Exclude []string `toml:"exclude" yaml:"exclude" json:"exclude"`
}

// Output selects the serialization projection.
type Output struct {
	Format string `toml:"format" yaml:"format" json:"format"`
	Pretty bool   `toml:"pretty" yaml:"pretty" json:"pretty"`
}

// Config is the full configuration surface.
type Config struct {
	Extraction Extraction `toml:"extraction" yaml:"extraction" json:"extraction"`
	Filters    Filters    `toml:"filters" yaml:"filters" json:"filters"`
	Output     Output     `toml:"output" yaml:"output" json:"output"`
	Rag        rag.Config `toml:"rag" yaml:"rag" json:"rag"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Extraction: Extraction{
			IncludeDocs: true,
			MaxFileSize: 10 * 1024 * 1024,
			Workers:     1,
		},
		Filters: Filters{
			Include: []string{"src/**/*.rs"},
			Exclude: []string{"target/**"},
		},
		Output: Output{
			Format: FormatJSON,
			Pretty: true,
		},
		Rag: rag.DefaultConfig(),
	}
}

// DefaultPaths are the file names probed by Find, in order.
var DefaultPaths = []string{
	"rustmap.toml",
	filepath.Join(".rustmap", "config.yaml"),
	filepath.Join(".rustmap", "config.yml"),
}

// Find returns the first existing config file under root, or "".
func Find(root string) string {
	for _, candidate := range DefaultPaths {
		path := filepath.Join(root, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads a config file, dispatching on extension: .toml or .yaml/.yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q (want .toml or .yaml)", filepath.Ext(path))
	}

	return cfg, nil
}

// LoadOrDefault loads the project's config file when one exists, the
// defaults otherwise.
func LoadOrDefault(root string) (Config, string, error) {
	path := Find(root)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks the configuration for inconsistent values. Validation
// failures are fatal at the boundary.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatMarkdown, FormatRag, FormatGraph:
	default:
		return fmt.Errorf("output.format: unknown format %q (want json, markdown, rag, or graph)", c.Output.Format)
	}
	if c.Extraction.MaxFileSize < 0 {
		return fmt.Errorf("extraction.max_file_size: must not be negative")
	}
	if c.Extraction.Workers < 0 {
		return fmt.Errorf("extraction.workers: must not be negative")
	}
	if c.Rag.MinChunkSize > c.Rag.TargetChunkSize {
		return fmt.Errorf("rag.min_chunk_size (%d) exceeds rag.target_chunk_size (%d)", c.Rag.MinChunkSize, c.Rag.TargetChunkSize)
	}
	if c.Rag.TargetChunkSize > c.Rag.MaxChunkSize {
		return fmt.Errorf("rag.target_chunk_size (%d) exceeds rag.max_chunk_size (%d)", c.Rag.TargetChunkSize, c.Rag.MaxChunkSize)
	}
	if c.Rag.MaxTrainingExamplesPerChunk < 0 {
		return fmt.Errorf("rag.max_training_examples_per_chunk: must not be negative")
	}
	return nil
}

// WriteTemplate writes the commented TOML template to path, refusing to
// overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Template()), 0o644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	return nil
}
