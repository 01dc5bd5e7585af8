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

// DocumentationQuality grades the documentation attached to an element.
type DocumentationQuality string

const (
	QualityExcellent DocumentationQuality = "Excellent"
	QualityGood      DocumentationQuality = "Good"
	QualityBasic     DocumentationQuality = "Basic"
	QualityMissing   DocumentationQuality = "Missing"
)

// EmbeddingStrategy hints how a chunk should be embedded.
type EmbeddingStrategy string

const (
	EmbedCombined          EmbeddingStrategy = "Combined"
	EmbedCodeOnly          EmbeddingStrategy = "CodeOnly"
	EmbedDocumentationOnly EmbeddingStrategy = "DocumentationOnly"
)

// SemanticDepth selects how much semantic analysis runs.
type SemanticDepth string

const (
	DepthBasic    SemanticDepth = "basic"
	DepthStandard SemanticDepth = "standard"
	DepthDeep     SemanticDepth = "deep"
)

// Config controls RAG document generation.
type Config struct {
	TargetChunkSize int `json:"target_chunk_size" toml:"target_chunk_size" yaml:"target_chunk_size"`
	MaxChunkSize    int `json:"max_chunk_size" toml:"max_chunk_size" yaml:"max_chunk_size"`
	MinChunkSize    int `json:"min_chunk_size" toml:"min_chunk_size" yaml:"min_chunk_size"`
	ChunkOverlap    int `json:"chunk_overlap" toml:"chunk_overlap" yaml:"chunk_overlap"`

	IncludePrivateItems     bool                 `json:"include_private_items" toml:"include_private_items" yaml:"include_private_items"`
	IncludeTestCode         bool                 `json:"include_test_code" toml:"include_test_code" yaml:"include_test_code"`
	MinComplexity           uint32               `json:"min_complexity" toml:"min_complexity" yaml:"min_complexity"`
	MinDocumentationQuality DocumentationQuality `json:"min_documentation_quality" toml:"min_documentation_quality" yaml:"min_documentation_quality"`

	SemanticDepth SemanticDepth `json:"semantic_depth" toml:"semantic_depth" yaml:"semantic_depth"`

	GenerateTrainingExamples    bool `json:"generate_training_examples" toml:"generate_training_examples" yaml:"generate_training_examples"`
	MaxTrainingExamplesPerChunk int  `json:"max_training_examples_per_chunk" toml:"max_training_examples_per_chunk" yaml:"max_training_examples_per_chunk"`

	IncludeEmbeddings bool   `json:"include_embeddings" toml:"include_embeddings" yaml:"include_embeddings"`
	EmbeddingModel    string `json:"embedding_model,omitempty" toml:"embedding_model" yaml:"embedding_model"`
}

// DefaultConfig mirrors the defaults of the original extractor.
func DefaultConfig() Config {
	return Config{
		TargetChunkSize:             512,
		MaxChunkSize:                1024,
		MinChunkSize:                100,
		ChunkOverlap:                50,
		IncludePrivateItems:         false,
		IncludeTestCode:             false,
		MinDocumentationQuality:     QualityMissing,
		SemanticDepth:               DepthStandard,
		GenerateTrainingExamples:    true,
		MaxTrainingExamplesPerChunk: 3,
	}
}

// ChunkSizeStats summarizes the chunk token-count distribution.
type ChunkSizeStats struct {
	MinTokens    int     `json:"min_tokens"`
	MaxTokens    int     `json:"max_tokens"`
	AvgTokens    float64 `json:"avg_tokens"`
	MedianTokens int     `json:"median_tokens"`
	P95Tokens    int     `json:"p95_tokens"`
}

// Metadata describes the whole RAG document for indexing and filtering.
type Metadata struct {
	ProjectName    string `json:"project_name"`
	ProjectVersion string `json:"project_version"`
	RustEdition    string `json:"rust_edition"`

	TotalChunks    int            `json:"total_chunks"`
	TotalTokens    int            `json:"total_tokens"`
	ChunkSizeStats ChunkSizeStats `json:"chunk_size_stats"`

	ElementDistribution    map[string]int `json:"element_distribution"`
	ComplexityDistribution map[string]int `json:"complexity_distribution"`

	SemanticCategories []string `json:"semantic_categories"`

	GeneratedAt   string `json:"generated_at"`
	ChunkStrategy string `json:"chunk_strategy"`
}

// ChunkMetadata is the retrieval metadata of one chunk.
type ChunkMetadata struct {
	FilePath  string `json:"file_path"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`

	ElementKind   string `json:"element_kind"`
	ElementName   string `json:"element_name"`
	QualifiedName string `json:"qualified_name"`
	Visibility    string `json:"visibility"`

	TokenCount           int                  `json:"token_count"`
	Complexity           *uint32              `json:"complexity,omitempty"`
	HasDocumentation     bool                 `json:"has_documentation"`
	DocumentationQuality DocumentationQuality `json:"documentation_quality"`

	SemanticCategory string   `json:"semantic_category"`
	DomainTags       []string `json:"domain_tags,omitempty"`
	IntentTags       []string `json:"intent_tags,omitempty"`

	ParentElements []string `json:"parent_elements,omitempty"`
	ChildElements  []string `json:"child_elements,omitempty"`

	EmbeddingStrategy EmbeddingStrategy `json:"embedding_strategy"`
	RetrievalKeywords []string          `json:"retrieval_keywords,omitempty"`
}

// Chunk is one retrieval unit.
type Chunk struct {
	ID string `json:"id"`

	// Content is the embedding text: documentation, then signature or name.
	Content string `json:"content"`

	// ContentWithContext adds the file/module banner and a complexity
	// annotation.
	ContentWithContext string `json:"content_with_context"`

	Metadata ChunkMetadata `json:"metadata"`

	// Embedding is a pre-computed vector when the caller supplies one; the
	// chunker itself never computes embeddings.
	Embedding []float32 `json:"embedding,omitempty"`

	// SemanticHash is the 64-bit content hash in hex, for deduplication.
	SemanticHash string `json:"semantic_hash"`
}

// APIElement is one public API entry.
type APIElement struct {
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name"`
	ElementKind   string `json:"element_kind"`
	Signature     string `json:"signature,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	ChunkID       string `json:"chunk_id,omitempty"`
}

// APIComplexityMetrics summarizes the public surface.
type APIComplexityMetrics struct {
	TotalPublicItems      int     `json:"total_public_items"`
	AvgParameterCount     float64 `json:"avg_parameter_count"`
	MaxParameterCount     int     `json:"max_parameter_count"`
	GenericUsageRatio     float64 `json:"generic_usage_ratio"`
	DocumentationCoverage float64 `json:"documentation_coverage"`
}

// APISurface groups the public API by kind.
type APISurface struct {
	PublicFunctions   []APIElement         `json:"public_functions,omitempty"`
	PublicTypes       []APIElement         `json:"public_types,omitempty"`
	PublicTraits      []APIElement         `json:"public_traits,omitempty"`
	Modules           []APIElement         `json:"modules,omitempty"`
	EntryPoints       []string             `json:"entry_points,omitempty"`
	ComplexityMetrics APIComplexityMetrics `json:"complexity_metrics"`
}

// Semantics carries the semantic projections of the document.
type Semantics struct {
	APISurface APISurface `json:"api_surface"`
}

// TaskType classifies a training example.
type TaskType string

const (
	TaskCodeExplanation TaskType = "code_explanation"
	TaskCodeCompletion  TaskType = "code_completion"
	TaskAPIUsage        TaskType = "api_usage"
)

// DifficultyLevel buckets training examples by the source complexity.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// TrainingExample is one generated fine-tuning pair.
type TrainingExample struct {
	ID         string          `json:"id"`
	Input      string          `json:"input"`
	Output     string          `json:"output"`
	TaskType   TaskType        `json:"task_type"`
	Difficulty DifficultyLevel `json:"difficulty"`

	SourceChunks        []string `json:"source_chunks,omitempty"`
	EstimatedTokenCount int      `json:"estimated_token_count"`
}

// Document is the complete RAG projection of a project.
type Document struct {
	Metadata         Metadata          `json:"metadata"`
	Chunks           []Chunk           `json:"chunks"`
	Semantics        Semantics         `json:"semantics"`
	TrainingExamples []TrainingExample `json:"training_examples,omitempty"`
}

// EmbeddingInput is one chunk prepared for an embedding model according to
// its strategy.
type EmbeddingInput struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}
