package contract

import (
	"context"

	"giziai-be/internal/entity"
	"giziai-be/internal/repository/specification"
)

type ChatLogRepository interface {
	Create(ctx context.Context, chatLog *entity.ChatLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
