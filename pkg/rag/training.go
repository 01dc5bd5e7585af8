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
	"strings"

	"github.com/kraklabs/rustmap/pkg/model"
)

// generator produces at most one training example per chunk; it may decline
// by returning nil.
type generator func(chunk *Chunk, id int) *TrainingExample

// generateTrainingExamples runs the three generators over every chunk,
// honoring the per-chunk cap.
func (c *Chunker) generateTrainingExamples(_ *model.ProjectModel, chunks []Chunk) []TrainingExample {
	generators := []generator{
		codeExplanationExample,
		codeCompletionExample,
		apiUsageExample,
	}

	var examples []TrainingExample
	nextID := 0
	for i := range chunks {
		chunk := &chunks[i]
		perChunk := 0
		for _, generate := range generators {
			if perChunk >= c.cfg.MaxTrainingExamplesPerChunk {
				break
			}
			nextID++
			if example := generate(chunk, nextID); example != nil {
				examples = append(examples, *example)
				perChunk++
			}
		}
	}
	return examples
}

// codeExplanationExample asks what a documented declaration does. Declines
// without documentation.
func codeExplanationExample(chunk *Chunk, id int) *TrainingExample {
	if !chunk.Metadata.HasDocumentation {
		return nil
	}
	docs, _, found := strings.Cut(chunk.Content, "\n\n")
	if !found || docs == "" {
		return nil
	}
	input := fmt.Sprintf("Explain what `%s` does.", chunk.Metadata.QualifiedName)
	return newExample(chunk, id, TaskCodeExplanation, input, docs)
}

// codeCompletionExample presents the documentation and asks for the
// declaration. Declines without a signature to complete.
func codeCompletionExample(chunk *Chunk, id int) *TrainingExample {
	docs, signature, found := strings.Cut(chunk.Content, "\n\n")
	if !found || signature == "" || !strings.HasPrefix(strings.TrimSpace(signature), "fn") &&
		!strings.HasPrefix(strings.TrimSpace(signature), "pub") {
		return nil
	}
	input := fmt.Sprintf("Write the Rust declaration described by:\n%s", docs)
	return newExample(chunk, id, TaskCodeCompletion, input, signature)
}

// apiUsageExample asks how to call a public function. Declines for private
// items and non-functions.
func apiUsageExample(chunk *Chunk, id int) *TrainingExample {
	if chunk.Metadata.Visibility != "pub" || chunk.Metadata.ElementKind != string(model.KindFunction) {
		return nil
	}
	_, signature, found := strings.Cut(chunk.Content, "\n\n")
	if !found {
		signature = chunk.Content
	}
	if signature == "" {
		return nil
	}
	input := fmt.Sprintf("How is `%s` called?", chunk.Metadata.ElementName)
	output := fmt.Sprintf("The function is declared as:\n%s", signature)
	return newExample(chunk, id, TaskAPIUsage, input, output)
}

func newExample(chunk *Chunk, id int, task TaskType, input, output string) *TrainingExample {
	return &TrainingExample{
		ID:                  fmt.Sprintf("example_%d", id),
		Input:               input,
		Output:              output,
		TaskType:            task,
		Difficulty:          difficultyOf(chunk.Metadata.Complexity),
		SourceChunks:        []string{chunk.ID},
		EstimatedTokenCount: EstimateTokens(input) + EstimateTokens(output),
	}
}

func difficultyOf(score *uint32) DifficultyLevel {
	if score == nil {
		return DifficultyBeginner
	}
	switch {
	case *score <= 5:
		return DifficultyBeginner
	case *score <= 15:
		return DifficultyIntermediate
	default:
		return DifficultyAdvanced
	}
}
