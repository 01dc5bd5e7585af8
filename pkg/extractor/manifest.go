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
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kraklabs/rustmap/pkg/model"
)

// cargoManifest mirrors the subset of Cargo.toml we read for project
// identity. Workspace manifests carry the same fields under [workspace.package].
type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Edition string `toml:"edition"`
	} `toml:"package"`
	Workspace struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
			Edition string `toml:"edition"`
		} `toml:"package"`
	} `toml:"workspace"`
}

// ReadManifest reads project identity from <root>/Cargo.toml. A missing
// manifest is an InvalidProjectRoot condition at the boundary; the caller
// decides whether to treat it as fatal.
func ReadManifest(rootPath string) (model.ProjectInfo, error) {
	manifestPath := filepath.Join(rootPath, "Cargo.toml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return model.ProjectInfo{}, fmt.Errorf("read manifest %s: %w", manifestPath, err)
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return model.ProjectInfo{}, fmt.Errorf("parse manifest %s: %w", manifestPath, err)
	}

	info := model.ProjectInfo{
		Name:        manifest.Package.Name,
		Version:     manifest.Package.Version,
		RustEdition: manifest.Package.Edition,
		RootPath:    rootPath,
	}
	// Virtual workspace roots declare identity under [workspace.package].
	if info.Name == "" {
		info.Name = manifest.Workspace.Package.Name
		info.Version = manifest.Workspace.Package.Version
		info.RustEdition = manifest.Workspace.Package.Edition
	}
	if info.Name == "" {
		info.Name = filepath.Base(rootPath)
	}
	if info.Version == "" {
		info.Version = "0.0.0"
	}
	if info.RustEdition == "" {
		info.RustEdition = "2021"
	}
	return info, nil
}
