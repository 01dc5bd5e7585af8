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
	"sort"
	"strings"
	"time"

	"github.com/kraklabs/rustmap/pkg/model"
)

// Chunker turns a ProjectModel into a RAG Document.
type Chunker struct {
	cfg Config
}

// NewChunker creates a chunker with the given configuration.
func NewChunker(cfg Config) *Chunker {
	return &Chunker{cfg: cfg}
}

// Format builds the full document: metadata, chunks, the API surface, and
// training examples when enabled. It is total over the model.
func (c *Chunker) Format(m *model.ProjectModel) *Document {
	chunks := c.createChunks(m)
	doc := &Document{
		Metadata:  c.buildMetadata(m, chunks),
		Chunks:    chunks,
		Semantics: Semantics{APISurface: c.analyzeAPISurface(m, chunks)},
	}
	if c.cfg.GenerateTrainingExamples {
		doc.TrainingExamples = c.generateTrainingExamples(m, chunks)
	}
	return doc
}

// EstimateTokens approximates token counts at four characters per token,
// rounded up.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}

// shouldInclude applies the element filter: visibility, test markers, and
// the complexity floor.
func (c *Chunker) shouldInclude(element *model.CodeElement) bool {
	if !c.cfg.IncludePrivateItems && !element.IsPublic() {
		return false
	}
	if !c.cfg.IncludeTestCode && isTestElement(element) {
		return false
	}
	if c.cfg.MinComplexity > 0 {
		var score uint32
		if element.Complexity != nil {
			score = *element.Complexity
		}
		if score < c.cfg.MinComplexity {
			return false
		}
	}
	return true
}

func isTestElement(element *model.CodeElement) bool {
	if strings.Contains(element.Name, "test") {
		return true
	}
	for _, attr := range element.Attributes {
		if strings.Contains(attr, "test") {
			return true
		}
	}
	return false
}

// buildContent assembles the embedding text: docs joined by newline, a blank
// line, then the signature or the name.
func buildContent(element *model.CodeElement) string {
	var b strings.Builder
	if len(element.DocComments) > 0 {
		b.WriteString(strings.Join(element.DocComments, "\n"))
		b.WriteString("\n\n")
	}
	if element.Signature != "" {
		b.WriteString(element.Signature)
	} else {
		b.WriteString(element.Name)
	}
	return b.String()
}

// buildContentWithContext prefixes a file/module banner and appends the
// complexity annotation.
func buildContentWithContext(element *model.CodeElement, file *model.FileModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// File: %s\n", file.RelativePath)
	fmt.Fprintf(&b, "// Module: %s\n\n", element.Hierarchy.ModulePath)
	b.WriteString(buildContent(element))
	if element.Complexity != nil {
		fmt.Fprintf(&b, "\n// Complexity: %d", *element.Complexity)
	}
	return b.String()
}

// createChunks emits one chunk per included element, in model order.
func (c *Chunker) createChunks(m *model.ProjectModel) []Chunk {
	var chunks []Chunk
	chunkID := 0
	for _, file := range m.Files {
		for _, element := range file.Elements {
			if !c.shouldInclude(element) {
				continue
			}
			content := buildContent(element)
			chunkID++
			chunks = append(chunks, Chunk{
				ID:                 fmt.Sprintf("chunk_%d", chunkID),
				Content:            content,
				ContentWithContext: buildContentWithContext(element, file),
				Metadata:           c.buildChunkMetadata(element, file, content),
				SemanticHash:       semanticHash(content),
			})
		}
	}
	return chunks
}

func (c *Chunker) buildChunkMetadata(element *model.CodeElement, file *model.FileModel, content string) ChunkMetadata {
	md := ChunkMetadata{
		FilePath:             file.RelativePath,
		StartLine:            element.Location.LineStart,
		EndLine:              element.Location.LineEnd,
		ElementKind:          string(element.Kind),
		ElementName:          element.Name,
		QualifiedName:        element.Hierarchy.QualifiedName,
		Visibility:           element.Visibility.String(),
		TokenCount:           EstimateTokens(content),
		Complexity:           element.Complexity,
		HasDocumentation:     len(element.DocComments) > 0,
		DocumentationQuality: AssessDocumentation(element.DocComments),
		SemanticCategory:     semanticCategory(element.Kind),
		DomainTags:           domainTags(element),
		IntentTags:           intentTags(element),
		ChildElements:        element.Hierarchy.ChildrenIDs,
		EmbeddingStrategy:    embeddingStrategy(element),
		RetrievalKeywords:    retrievalKeywords(element),
	}
	if element.Hierarchy.ParentID != "" {
		md.ParentElements = []string{element.Hierarchy.ParentID}
	}
	return md
}

// AssessDocumentation grades joined doc text. Excellent needs an example
// marker, length over 100 and an arguments section; Good needs two of the
// three; anything documented is at least Basic.
func AssessDocumentation(docComments []string) DocumentationQuality {
	if len(docComments) == 0 {
		return QualityMissing
	}
	doc := strings.Join(docComments, " ")
	hasExamples := strings.Contains(doc, "```") || strings.Contains(doc, "Example")
	hasDetails := len(doc) > 100
	hasParams := strings.Contains(doc, "# Arguments") || strings.Contains(doc, "Parameters")

	criteria := 0
	for _, ok := range []bool{hasExamples, hasDetails, hasParams} {
		if ok {
			criteria++
		}
	}
	switch criteria {
	case 3:
		return QualityExcellent
	case 2:
		return QualityGood
	default:
		return QualityBasic
	}
}

// embeddingStrategy picks how a chunk should be embedded: code only without
// docs, documentation only without a signature, combined otherwise.
func embeddingStrategy(element *model.CodeElement) EmbeddingStrategy {
	switch {
	case len(element.DocComments) == 0:
		return EmbedCodeOnly
	case element.Signature == "":
		return EmbedDocumentationOnly
	default:
		return EmbedCombined
	}
}

func semanticCategory(kind model.ElementKind) string {
	switch kind {
	case model.KindFunction:
		return "function_definition"
	case model.KindStruct, model.KindEnum, model.KindUnion:
		return "data_structure"
	case model.KindTrait:
		return "trait_definition"
	case model.KindImpl:
		return "implementation"
	case model.KindModule:
		return "module_organization"
	default:
		return "other"
	}
}

func domainTags(element *model.CodeElement) []string {
	var tags []string
	name := strings.ToLower(element.Name)
	if strings.Contains(name, "http") || strings.Contains(name, "web") {
		tags = append(tags, "web")
	}
	if strings.Contains(name, "db") || strings.Contains(name, "database") || strings.Contains(name, "sql") {
		tags = append(tags, "database")
	}
	if strings.Contains(name, "async") || strings.Contains(name, "future") {
		tags = append(tags, "async")
	}
	if strings.Contains(name, "test") {
		tags = append(tags, "testing")
	}
	return tags
}

func intentTags(element *model.CodeElement) []string {
	var tags []string
	switch element.Kind {
	case model.KindFunction:
		if strings.HasPrefix(element.Name, "new") {
			tags = append(tags, "constructor")
		}
		if strings.HasPrefix(element.Name, "get") || strings.HasPrefix(element.Name, "is") {
			tags = append(tags, "accessor")
		}
		if strings.HasPrefix(element.Name, "set") {
			tags = append(tags, "mutator")
		}
	case model.KindTrait:
		tags = append(tags, "interface")
	case model.KindStruct, model.KindEnum, model.KindUnion:
		tags = append(tags, "data_type")
	}
	return tags
}

// retrievalKeywords builds the deduplicated keyword set: the element's names
// plus doc words longer than three characters, capped at twenty.
func retrievalKeywords(element *model.CodeElement) []string {
	keywords := []string{element.Name, element.Hierarchy.QualifiedName}
	for _, doc := range element.DocComments {
		for _, word := range strings.Fields(doc) {
			if len(word) <= 3 {
				continue
			}
			cleaned := strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
				return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
			})
			if cleaned != "" {
				keywords = append(keywords, cleaned)
			}
		}
	}
	sort.Strings(keywords)
	keywords = dedupe(keywords)
	if len(keywords) > 20 {
		keywords = keywords[:20]
	}
	return keywords
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	var last string
	for i, s := range sorted {
		if i == 0 || s != last {
			out = append(out, s)
		}
		last = s
	}
	return out
}

// buildMetadata computes the document-level statistics over the emitted
// chunks and the full element population.
func (c *Chunker) buildMetadata(m *model.ProjectModel, chunks []Chunk) Metadata {
	elementDist := make(map[string]int)
	complexityDist := make(map[string]int)
	for _, element := range m.AllElements() {
		elementDist[string(element.Kind)]++
		if element.Complexity != nil {
			complexityDist[complexityBucket(*element.Complexity)]++
		}
	}

	tokenSizes := make([]int, 0, len(chunks))
	totalTokens := 0
	for _, chunk := range chunks {
		tokenSizes = append(tokenSizes, chunk.Metadata.TokenCount)
		totalTokens += chunk.Metadata.TokenCount
	}

	return Metadata{
		ProjectName:            m.Project.Name,
		ProjectVersion:         m.Project.Version,
		RustEdition:            m.Project.RustEdition,
		TotalChunks:            len(chunks),
		TotalTokens:            totalTokens,
		ChunkSizeStats:         ComputeChunkSizeStats(tokenSizes),
		ElementDistribution:    elementDist,
		ComplexityDistribution: complexityDist,
		SemanticCategories: []string{
			"function_definition",
			"data_structure",
			"trait_definition",
			"implementation",
			"module_organization",
		},
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		ChunkStrategy: "semantic_boundaries",
	}
}

func complexityBucket(score uint32) string {
	switch {
	case score <= 2:
		return "Simple"
	case score <= 5:
		return "Moderate"
	case score <= 10:
		return "Complex"
	default:
		return "Very Complex"
	}
}

// ComputeChunkSizeStats summarizes token counts: median by mid-index of a
// sorted copy, p95 by floor(0.95*n) clamped to the last index.
func ComputeChunkSizeStats(tokenSizes []int) ChunkSizeStats {
	if len(tokenSizes) == 0 {
		return ChunkSizeStats{}
	}
	sorted := append([]int(nil), tokenSizes...)
	sort.Ints(sorted)

	sum := 0
	for _, n := range sorted {
		sum += n
	}
	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	return ChunkSizeStats{
		MinTokens:    sorted[0],
		MaxTokens:    sorted[len(sorted)-1],
		AvgTokens:    float64(sum) / float64(len(sorted)),
		MedianTokens: sorted[len(sorted)/2],
		P95Tokens:    sorted[p95Index],
	}
}

// EmbeddingInputs projects chunks into embedding-model inputs according to
// each chunk's strategy.
func EmbeddingInputs(doc *Document) []EmbeddingInput {
	inputs := make([]EmbeddingInput, 0, len(doc.Chunks))
	for _, chunk := range doc.Chunks {
		var text string
		switch chunk.Metadata.EmbeddingStrategy {
		case EmbedCodeOnly:
			text = chunk.Content
		case EmbedDocumentationOnly:
			// Everything before the signature separator is documentation.
			if idx := strings.Index(chunk.Content, "\n\n"); idx >= 0 {
				text = chunk.Content[:idx]
			} else {
				text = chunk.Content
			}
		default:
			text = chunk.ContentWithContext
		}
		inputs = append(inputs, EmbeddingInput{ID: chunk.ID, Text: text, Metadata: chunk.Metadata})
	}
	return inputs
}
