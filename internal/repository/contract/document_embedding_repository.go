package contract

import (
	"context"

	"giziai-be/internal/entity"
	"giziai-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding wraps DocumentEmbedding with its similarity score
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByKnowledgeFileId(ctx context.Context, fileId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchNearest returns the closest chunks by cosine distance, with the
	// stored vectors included for downstream re-ranking.
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*ScoredDocumentEmbedding, error)
}
