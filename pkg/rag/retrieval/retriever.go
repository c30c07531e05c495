// Package retrieval fetches the document chunks most useful for answering a
// standalone query.
package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"

	"giziai-be/pkg/embedding"
)

// Passage is one retrieved chunk, ordered best-first.
type Passage struct {
	Text     string
	SourceID string
	Score    float64
}

// IndexEntry is a raw nearest-neighbor hit. The stored vector comes back
// with it so the re-ranker can measure redundancy between hits.
type IndexEntry struct {
	Text       string
	SourceID   string
	Similarity float64
	Vector     []float32
}

// Index is the vector store surface the retriever needs.
type Index interface {
	SearchNearest(ctx context.Context, vector []float32, limit int) ([]IndexEntry, error)
}

// VectorRetriever embeds the query, over-fetches from the index, then
// re-ranks with maximal marginal relevance so the final k passages are both
// relevant and non-redundant.
type VectorRetriever struct {
	embedder embedding.EmbeddingProvider
	index    Index
	topK     int
	fetchK   int
	lambda   float64
	logger   *log.Logger
}

func NewVectorRetriever(
	embedder embedding.EmbeddingProvider,
	index Index,
	topK int,
	fetchK int,
	lambda float64,
	logger *log.Logger,
) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
		fetchK:   fetchK,
		lambda:   lambda,
		logger:   logger,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]Passage, error) {
	embedResp, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := embedResp.Embedding.Values

	entries, err := r.index.SearchNearest(ctx, queryVec, r.fetchK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	selected := maximalMarginalRelevance(queryVec, entries, r.topK, r.lambda)

	passages := make([]Passage, 0, len(selected))
	for _, idx := range selected {
		passages = append(passages, Passage{
			Text:     entries[idx].Text,
			SourceID: entries[idx].SourceID,
			Score:    entries[idx].Similarity,
		})
	}

	r.logger.Printf("[RETRIEVAL] %d candidates -> %d passages after MMR", len(entries), len(passages))
	return passages, nil
}

// JoinPassages concatenates passage texts with blank lines, preserving the
// retriever's ordering.
func JoinPassages(passages []Passage) string {
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n\n")
}
