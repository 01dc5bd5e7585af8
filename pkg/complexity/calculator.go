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
	sitter "github.com/smacker/go-tree-sitter"
)

// Calculator accumulates metric counters while walking a syntax subtree.
// Cyclomatic starts at 1 (the single path through an empty body); cognitive
// contributions are weighted by the nesting level active when the construct
// is seen.
type Calculator struct {
	nestingDepth     uint32
	maxNestingDepth  uint32
	cyclomatic       uint32
	cognitive        uint32
	cognitiveNesting uint32
	returnCount      uint32
	parameterCount   uint32
	linesOfCode      uint32

	operators map[string]uint32
	operands  map[string]uint32
}

// NewCalculator creates a calculator with base cyclomatic complexity 1.
func NewCalculator() *Calculator {
	return &Calculator{
		cyclomatic: 1,
		operators:  make(map[string]uint32),
		operands:   make(map[string]uint32),
	}
}

// ForFunction computes metrics for a function_item (or any node with a
// `parameters` and `body` field, which covers methods in impl and trait
// blocks). Trait method signatures without a body yield base metrics.
func ForFunction(node *sitter.Node, src []byte) Metrics {
	calc := NewCalculator()
	calc.parameterCount = countParameters(node.ChildByFieldName("parameters"))
	calc.linesOfCode = spanLines(node)
	if body := node.ChildByFieldName("body"); body != nil {
		calc.walk(body, src)
	}
	return calc.finish()
}

// finish snapshots the counters into an immutable Metrics value.
func (c *Calculator) finish() Metrics {
	var n1, n2, bigN1, bigN2 uint32
	n1 = uint32(len(c.operators))
	n2 = uint32(len(c.operands))
	for _, count := range c.operators {
		bigN1 += count
	}
	for _, count := range c.operands {
		bigN2 += count
	}
	return Metrics{
		Cyclomatic:     c.cyclomatic,
		Cognitive:      c.cognitive,
		Halstead:       deriveHalstead(n1, n2, bigN1, bigN2),
		NestingDepth:   c.maxNestingDepth,
		LinesOfCode:    c.linesOfCode,
		ParameterCount: c.parameterCount,
		ReturnCount:    c.returnCount,
	}
}

func (c *Calculator) enterScope() {
	c.nestingDepth++
	if c.nestingDepth > c.maxNestingDepth {
		c.maxNestingDepth = c.nestingDepth
	}
	c.cognitiveNesting++
}

func (c *Calculator) exitScope() {
	if c.nestingDepth > 0 {
		c.nestingDepth--
	}
	if c.cognitiveNesting > 0 {
		c.cognitiveNesting--
	}
}

func (c *Calculator) addCognitive(base uint32) {
	c.cognitive += base + c.cognitiveNesting
}

func (c *Calculator) recordOperator(op string) {
	c.operators[op]++
}

func (c *Calculator) recordOperand(operand string) {
	c.operands[operand]++
}

// walk visits a subtree, dispatching on node kind. Match expressions are
// counted once and their arms visited under an extra nesting level, so arms
// accrue cognitive pressure without re-contributing to cyclomatic.
func (c *Calculator) walk(node *sitter.Node, src []byte) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "block":
		c.enterScope()
		c.walkChildren(node, src)
		c.exitScope()
		return

	case "if_expression", "if_let_expression":
		c.cyclomatic++
		c.addCognitive(1)
		c.recordOperator("if")

	case "match_expression":
		arms := matchArms(node)
		c.cyclomatic += uint32(len(arms))
		c.addCognitive(1)
		c.recordOperator("match")
		if value := node.ChildByFieldName("value"); value != nil {
			c.walk(value, src)
		}
		c.enterScope()
		for _, arm := range arms {
			c.walkChildren(arm, src)
		}
		c.exitScope()
		return

	case "loop_expression":
		c.cyclomatic++
		c.addCognitive(1)
		c.recordOperator("loop")

	case "while_expression", "while_let_expression":
		c.cyclomatic++
		c.addCognitive(1)
		c.recordOperator("while")

	case "for_expression":
		c.cyclomatic++
		c.addCognitive(1)
		c.recordOperator("for")

	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			token := op.Type()
			if token == "&&" || token == "||" {
				c.cyclomatic++
			}
			c.recordOperator(token)
		}

	case "try_expression":
		c.cyclomatic++
		c.addCognitive(1)
		c.recordOperator("try")

	case "return_expression":
		c.returnCount++
		c.recordOperator("return")

	case "break_expression":
		c.addCognitive(1)
		c.recordOperator("break")

	case "continue_expression":
		c.addCognitive(1)
		c.recordOperator("continue")

	case "call_expression":
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Type() == "field_expression" {
			c.recordOperator("method_call")
		} else {
			c.recordOperator("call")
		}

	case "let_declaration":
		c.recordOperator("let")

	case "identifier":
		c.recordOperand(node.Content(src))
		return

	case "integer_literal", "float_literal", "string_literal",
		"raw_string_literal", "char_literal", "boolean_literal",
		"byte_literal", "byte_string_literal":
		c.recordOperand(node.Content(src))
		return
	}

	c.walkChildren(node, src)
}

func (c *Calculator) walkChildren(node *sitter.Node, src []byte) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c.walk(node.NamedChild(i), src)
	}
}

// matchArms collects the match_arm nodes of a match_expression body.
func matchArms(match *sitter.Node) []*sitter.Node {
	body := match.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var arms []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "match_arm" {
			arms = append(arms, child)
		}
	}
	return arms
}

// countParameters counts parameter and self_parameter children of a
// parameters node.
func countParameters(params *sitter.Node) uint32 {
	if params == nil {
		return 0
	}
	var count uint32
	for i := 0; i < int(params.NamedChildCount()); i++ {
		switch params.NamedChild(i).Type() {
		case "parameter", "self_parameter", "variadic_parameter":
			count++
		}
	}
	return count
}

// spanLines is the 1-based inclusive line span of a node.
func spanLines(node *sitter.Node) uint32 {
	return uint32(node.EndPoint().Row-node.StartPoint().Row) + 1
}
