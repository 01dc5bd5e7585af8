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

package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructComplexity(t *testing.T) {
	node, _ := parseItem(t, `
struct Complex<T, U> {
    field1: T,
    field2: U,
    field3: String,
    field4: Vec<i32>,
}`)

	metrics := ForStructural(node)
	// 1 + 4/3 + 2 generics = 4
	assert.Equal(t, uint32(4), metrics.Cyclomatic)
	// 4/2 + 2 = 4
	assert.Equal(t, uint32(4), metrics.Cognitive)
}

func TestUnitStructComplexity(t *testing.T) {
	node, _ := parseItem(t, `struct Marker;`)

	metrics := ForStructural(node)
	assert.Equal(t, uint32(1), metrics.Cyclomatic)
	assert.Equal(t, uint32(0), metrics.Cognitive)
}

func TestTupleStructComplexity(t *testing.T) {
	node, _ := parseItem(t, `struct Pair(i32, i32);`)

	metrics := ForStructural(node)
	assert.Equal(t, uint32(1), metrics.Cyclomatic, "1 + 2/3 fields")
	assert.Equal(t, uint32(1), metrics.Cognitive, "2/2 fields")
}

func TestEnumComplexity(t *testing.T) {
	node, _ := parseItem(t, `
enum Status {
    Pending,
    Processing { progress: f64 },
    Complete(String),
    Failed { error: String, code: i32 },
}`)

	metrics := ForStructural(node)
	assert.Equal(t, uint32(4), metrics.Cyclomatic, "four variants")
	// 4 variants + 3 field-carrying variants
	assert.GreaterOrEqual(t, metrics.Cognitive, uint32(6))
}

func TestTraitComplexity(t *testing.T) {
	node, _ := parseItem(t, `
trait Store {
    type Key;
    fn get(&self, key: Self::Key) -> Option<String>;
    fn put(&mut self, key: Self::Key, value: String);
}`)

	metrics := ForStructural(node)
	assert.Equal(t, uint32(3), metrics.Cyclomatic, "2 methods + 1 associated type")
	assert.Equal(t, uint32(5), metrics.Cognitive, "2*2 methods + 1 associated type")
}

func TestImplComplexity(t *testing.T) {
	node, _ := parseItem(t, `
impl Store {
    fn get(&self) -> i32 { 1 }
    fn put(&mut self, v: i32) {}
}`)

	metrics := ForStructural(node)
	assert.Equal(t, uint32(2), metrics.Cyclomatic)
	assert.Equal(t, uint32(2), metrics.Cognitive)
}

func TestOtherItemDefaultComplexity(t *testing.T) {
	node, _ := parseItem(t, `const LIMIT: usize = 10;`)

	metrics := ForStructural(node)
	assert.Equal(t, uint32(1), metrics.Cyclomatic)
	assert.Equal(t, uint32(1), metrics.Cognitive)
}
