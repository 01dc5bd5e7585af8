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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(content), 0o644))
	return root
}

func TestReadManifest(t *testing.T) {
	root := writeManifest(t, `
[package]
name = "my-crate"
version = "1.2.3"
edition = "2021"

[dependencies]
serde = "1"
`)

	info, err := ReadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, "my-crate", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "2021", info.RustEdition)
	assert.Equal(t, root, info.RootPath)
}

func TestReadManifestWorkspace(t *testing.T) {
	root := writeManifest(t, `
[workspace]
members = ["crates/*"]

[workspace.package]
name = "workspace-root"
version = "0.5.0"
edition = "2024"
`)

	info, err := ReadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, "workspace-root", info.Name)
	assert.Equal(t, "0.5.0", info.Version)
	assert.Equal(t, "2024", info.RustEdition)
}

func TestReadManifestDefaults(t *testing.T) {
	root := writeManifest(t, `[package]
name = "minimal"
`)

	info, err := ReadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, "minimal", info.Name)
	assert.Equal(t, "0.0.0", info.Version)
	assert.Equal(t, "2021", info.RustEdition)
}

func TestReadManifestMissing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	assert.Error(t, err)
}

func TestReadManifestMalformed(t *testing.T) {
	root := writeManifest(t, "[package\nname =")
	_, err := ReadManifest(root)
	assert.ErrorContains(t, err, "parse manifest")
}
