package service

import (
	"context"

	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/rag/retrieval"
)

// documentIndex adapts the document_embeddings repository to the
// retrieval.Index surface.
type documentIndex struct {
	uowFactory unitofwork.RepositoryFactory
}

func newDocumentIndex(uowFactory unitofwork.RepositoryFactory) retrieval.Index {
	return &documentIndex{uowFactory: uowFactory}
}

func (d *documentIndex) SearchNearest(ctx context.Context, vector []float32, limit int) ([]retrieval.IndexEntry, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.DocumentEmbeddingRepository().SearchNearest(ctx, vector, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]retrieval.IndexEntry, 0, len(scored))
	for _, s := range scored {
		entries = append(entries, retrieval.IndexEntry{
			Text:       s.Embedding.Chunk,
			SourceID:   s.Embedding.Id.String(),
			Similarity: s.Similarity,
			Vector:     s.Embedding.EmbeddingValue,
		})
	}
	return entries, nil
}
