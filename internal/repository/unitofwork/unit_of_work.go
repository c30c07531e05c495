package unitofwork

import (
	"context"

	"giziai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatLogRepository() contract.ChatLogRepository
	KnowledgeFileRepository() contract.KnowledgeFileRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
}
