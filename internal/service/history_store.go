package service

import (
	"context"

	"giziai-be/internal/entity"
	"giziai-be/internal/repository/specification"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/rag/history"

	"github.com/google/uuid"
)

// gormHistoryStore backs the pipeline's history.Store with the chat_logs
// table.
type gormHistoryStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func newGormHistoryStore(uowFactory unitofwork.RepositoryFactory) history.Store {
	return &gormHistoryStore{uowFactory: uowFactory}
}

func (s *gormHistoryStore) Read(ctx context.Context, sessionID string) ([]history.Turn, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	logs, err := uow.ChatLogRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	turns := make([]history.Turn, 0, len(logs))
	for _, l := range logs {
		sources := make([]history.SourceRef, 0, len(l.Sources))
		for _, src := range l.Sources {
			sources = append(sources, history.SourceRef{ID: src.ID, Score: src.Score})
		}
		turns = append(turns, history.Turn{
			SessionID: l.SessionId,
			UserQuery: l.UserQuery,
			Answer:    l.Answer,
			ModelTag:  l.ModelTag,
			Sources:   sources,
			CreatedAt: l.CreatedAt,
		})
	}
	return turns, nil
}

func (s *gormHistoryStore) Append(ctx context.Context, turn history.Turn) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sources := make([]entity.ChatSource, 0, len(turn.Sources))
	for _, src := range turn.Sources {
		sources = append(sources, entity.ChatSource{ID: src.ID, Score: src.Score})
	}

	return uow.ChatLogRepository().Create(ctx, &entity.ChatLog{
		Id:        uuid.New(),
		SessionId: turn.SessionID,
		UserQuery: turn.UserQuery,
		Answer:    turn.Answer,
		ModelTag:  turn.ModelTag,
		Sources:   sources,
		CreatedAt: turn.CreatedAt,
	})
}
