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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// parseItem parses a Rust snippet and returns its first top-level item.
func parseItem(t *testing.T, src string) (*sitter.Node, []byte) {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	require.Greater(t, int(root.NamedChildCount()), 0, "no items parsed")
	return root.NamedChild(0), []byte(src)
}

func TestSimpleFunctionComplexity(t *testing.T) {
	node, src := parseItem(t, `fn simple() -> i32 { 42 }`)

	metrics := ForFunction(node, src)
	assert.Equal(t, uint32(1), metrics.Cyclomatic)
	assert.Equal(t, uint32(0), metrics.Cognitive)
	assert.Equal(t, uint32(0), metrics.ParameterCount)
	assert.Equal(t, uint32(0), metrics.ReturnCount)
	assert.Equal(t, LevelLow, metrics.Level())
}

func TestNestedConditionalComplexity(t *testing.T) {
	node, src := parseItem(t, `
fn with_conditions(x: i32) -> i32 {
    if x > 0 {
        if x > 10 {
            return x * 2;
        }
        return x + 1;
    } else {
        return 0;
    }
}`)

	metrics := ForFunction(node, src)
	assert.GreaterOrEqual(t, metrics.Cyclomatic, uint32(3))
	assert.GreaterOrEqual(t, metrics.Cognitive, uint32(3))
	assert.Equal(t, uint32(3), metrics.ReturnCount)
	assert.Equal(t, uint32(1), metrics.ParameterCount)
}

// The nested-if fixture yields exactly 3 here: base 1 plus one per if.
// The value is an implementation choice; it must stay internally consistent.
func TestNestedConditionalCyclomaticExact(t *testing.T) {
	node, src := parseItem(t, `
fn f(x: i32) -> i32 {
    if x > 0 {
        if x > 10 {
            return x * 2;
        }
        return x + 1;
    } else {
        return 0;
    }
}`)

	metrics := ForFunction(node, src)
	assert.Equal(t, uint32(3), metrics.Cyclomatic)
}

func TestMatchComplexity(t *testing.T) {
	node, src := parseItem(t, `
fn with_match(x: Option<i32>) -> i32 {
    match x {
        Some(value) if value > 0 => value,
        Some(value) => -value,
        None => 0,
    }
}`)

	metrics := ForFunction(node, src)
	assert.GreaterOrEqual(t, metrics.Cyclomatic, uint32(3), "three match arms")
}

func TestLoopComplexity(t *testing.T) {
	node, src := parseItem(t, `
fn with_loop() {
    for i in 0..10 {
        if i % 2 == 0 {
            continue;
        }
        println!("{}", i);
    }
}`)

	metrics := ForFunction(node, src)
	assert.GreaterOrEqual(t, metrics.Cyclomatic, uint32(2), "loop + condition")
	assert.GreaterOrEqual(t, metrics.NestingDepth, uint32(2), "loop and if nesting")
	assert.GreaterOrEqual(t, metrics.Cognitive, uint32(3), "continue under nesting")
}

func TestShortCircuitOperators(t *testing.T) {
	node, src := parseItem(t, `
fn short_circuit(a: bool, b: bool, c: bool) -> bool {
    a && b || c
}`)

	metrics := ForFunction(node, src)
	assert.Equal(t, uint32(3), metrics.Cyclomatic, "base + && + ||")
}

func TestTryOperator(t *testing.T) {
	node, src := parseItem(t, `
fn propagate(s: &str) -> Result<i32, std::num::ParseIntError> {
    let n = s.parse::<i32>()?;
    Ok(n + 1)
}`)

	metrics := ForFunction(node, src)
	assert.GreaterOrEqual(t, metrics.Cyclomatic, uint32(2), "try adds a branch")
	assert.GreaterOrEqual(t, metrics.Cognitive, uint32(1))
}

// Adding control flow to the same function never lowers cyclomatic
// complexity.
func TestComplexityMonotonicity(t *testing.T) {
	smaller, srcA := parseItem(t, `
fn f(x: i32) -> i32 {
    if x > 0 { x } else { 0 }
}`)
	metricsA := ForFunction(smaller, srcA)

	larger, srcB := parseItem(t, `
fn f(x: i32) -> i32 {
    if x > 0 {
        for i in 0..x {
            if i % 2 == 0 { continue; }
        }
        x
    } else { 0 }
}`)
	metricsB := ForFunction(larger, srcB)

	assert.GreaterOrEqual(t, metricsB.Cyclomatic, metricsA.Cyclomatic)
}

func TestHalsteadMetrics(t *testing.T) {
	node, src := parseItem(t, `
fn halstead_test(x: i32, y: i32) -> i32 {
    let result = x + y * 2;
    if result > 10 {
        result - 1
    } else {
        result + 1
    }
}`)

	metrics := ForFunction(node, src)
	h := metrics.Halstead
	assert.Greater(t, h.N1, uint32(0), "should have operators")
	assert.Greater(t, h.N2, uint32(0), "should have operands")
	assert.LessOrEqual(t, h.N1, h.BigN1)
	assert.LessOrEqual(t, h.N2, h.BigN2)
	assert.Equal(t, h.N1+h.N2, h.Vocabulary)
	assert.Equal(t, h.BigN1+h.BigN2, h.Length)
	assert.Greater(t, h.Volume, 0.0)
	assert.Greater(t, h.Effort, 0.0)
}

func TestHalsteadZeroOperands(t *testing.T) {
	h := deriveHalstead(3, 0, 5, 0)
	assert.Equal(t, 0.0, h.Difficulty, "difficulty is 0 with no operands, no 0.5 floor")
	assert.Equal(t, 0.0, h.CalculatedLength)
	assert.Equal(t, 0.0, h.Effort)
}

func TestHalsteadEmpty(t *testing.T) {
	h := deriveHalstead(0, 0, 0, 0)
	assert.Equal(t, uint32(0), h.Vocabulary)
	assert.Equal(t, 0.0, h.Volume)
	assert.Equal(t, 0.0, h.Difficulty)
}

func TestOverallScoreFloor(t *testing.T) {
	m := Metrics{}
	assert.Equal(t, uint32(1), m.OverallScore())
}

func TestComplexityLevels(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		want    Level
	}{
		{
			name:    "low",
			metrics: Metrics{Cyclomatic: 2, Cognitive: 1},
			want:    LevelLow,
		},
		{
			name:    "medium",
			metrics: Metrics{Cyclomatic: 6, Cognitive: 3},
			want:    LevelMedium,
		},
		{
			name:    "high",
			metrics: Metrics{Cyclomatic: 15, Cognitive: 8, NestingDepth: 4},
			want:    LevelHigh,
		},
		{
			name:    "very high",
			metrics: Metrics{Cyclomatic: 30, Cognitive: 20, NestingDepth: 6},
			want:    LevelVeryHigh,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.metrics.Level())
		})
	}
}

func TestReturnCountDoesNotCountTailExpression(t *testing.T) {
	node, src := parseItem(t, `
fn tail(x: i32) -> i32 {
    x + 1
}`)

	metrics := ForFunction(node, src)
	assert.Equal(t, uint32(0), metrics.ReturnCount)
}

func TestParameterCountIncludesSelf(t *testing.T) {
	node, src := parseItem(t, `
impl Thing {
    fn method(&self, a: i32, b: i32) -> i32 { a + b }
}`)

	// The first item is the impl; its body holds the function.
	body := node.ChildByFieldName("body")
	require.NotNil(t, body)
	var fn *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if body.NamedChild(i).Type() == "function_item" {
			fn = body.NamedChild(i)
			break
		}
	}
	require.NotNil(t, fn)

	metrics := ForFunction(fn, src)
	assert.Equal(t, uint32(3), metrics.ParameterCount)
}
