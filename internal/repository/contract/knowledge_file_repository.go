package contract

import (
	"context"

	"giziai-be/internal/entity"
	"giziai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeFileRepository interface {
	Create(ctx context.Context, file *entity.KnowledgeFile) error
	Update(ctx context.Context, file *entity.KnowledgeFile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
