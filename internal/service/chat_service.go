package service

import (
	"context"
	"log"
	"sync"
	"time"

	"giziai-be/internal/config"
	"giziai-be/internal/dto"
	"giziai-be/internal/pkg/logger"
	"giziai-be/internal/repository/memory"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/events"
	"giziai-be/pkg/llm"
	pktNats "giziai-be/pkg/nats"
	"giziai-be/pkg/rag/executor"
	"giziai-be/pkg/rag/reformulate"
	"giziai-be/pkg/rag/relevance"
	"giziai-be/pkg/rag/response"
	"giziai-be/pkg/rag/retrieval"
	"giziai-be/pkg/rag/runtime"

	"github.com/google/uuid"
)

// generationStop matches the stop sequences the model was tuned with.
var generationStop = []string{"Question:", "\n\n", "Human:"}

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionID string) ([]dto.ChatHistoryItem, error)
}

type chatService struct {
	cfg            *config.Config
	uowFactory     unitofwork.RepositoryFactory
	inflight       *memory.InflightRepository
	rt             *runtime.Manager
	notifier       *alertNotifier
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	ragLogger      *log.Logger

	mu       sync.Mutex
	pipeline *executor.Pipeline
}

func NewChatService(
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	inflight *memory.InflightRepository,
	rt *runtime.Manager,
	notifier *alertNotifier,
	eventPublisher *pktNats.Publisher,
	appLogger logger.ILogger,
	ragLogger *log.Logger,
) IChatService {
	return &chatService{
		cfg:            cfg,
		uowFactory:     uowFactory,
		inflight:       inflight,
		rt:             rt,
		notifier:       notifier,
		eventPublisher: eventPublisher,
		logger:         appLogger,
		ragLogger:      ragLogger,
	}
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{SessionId: uuid.NewString()}, nil
}

func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if !s.inflight.TryAcquire(req.SessionId) {
		return nil, ErrSessionBusy
	}
	defer s.inflight.Release(req.SessionId)

	handles, err := s.rt.Ensure(ctx)
	if err != nil {
		s.logger.Warn("chat", "model backends not ready", map[string]interface{}{"error": err.Error()})
		return nil, ErrNotReady
	}

	pipeline := s.getPipeline(handles)

	result, err := pipeline.Execute(ctx, req.SessionId, req.Message)
	if err != nil {
		// Only context cancellation reaches here; the pipeline absorbs
		// everything else.
		return nil, err
	}

	if result.Logged && s.eventPublisher != nil {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if pubErr := s.eventPublisher.Publish(pubCtx, events.ChatTurnLogged(req.SessionId, s.cfg.Ai.LLMModel)); pubErr != nil {
			s.logger.Warn("chat", "failed to publish turn event", map[string]interface{}{"error": pubErr.Error()})
		}
	}

	sources := make([]dto.ChatSourceDTO, 0, len(result.Passages))
	for _, p := range result.Passages {
		sources = append(sources, dto.ChatSourceDTO{Id: p.SourceID, Score: p.Score})
	}

	return &dto.ChatResponse{
		SessionId: req.SessionId,
		Answer:    result.Answer,
		Sources:   sources,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) ([]dto.ChatHistoryItem, error) {
	store := newGormHistoryStore(s.uowFactory)
	turns, err := store.Read(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatHistoryItem, 0, len(turns))
	for _, t := range turns {
		items = append(items, dto.ChatHistoryItem{
			UserQuery: t.UserQuery,
			Answer:    t.Answer,
			CreatedAt: t.CreatedAt,
		})
	}
	return items, nil
}

// getPipeline builds the executor once the handles exist. The handles never
// change after a successful Ensure, so one pipeline serves the process.
func (s *chatService) getPipeline(handles *runtime.Handles) *executor.Pipeline {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pipeline != nil {
		return s.pipeline
	}

	ragCfg := s.cfg.Rag

	reformulator := reformulate.NewReformulator(handles.LLM, ragCfg.MaxStandaloneWords, s.ragLogger)

	retriever := retrieval.NewVectorRetriever(
		handles.Embedder,
		newDocumentIndex(s.uowFactory),
		ragCfg.TopK,
		ragCfg.FetchK,
		ragCfg.MMRLambda,
		s.ragLogger,
	)

	gate := relevance.NewGate(ragCfg.MinContextLength, ragCfg.MinKeywordOverlap)

	sampling := []llm.Option{
		llm.WithTemperature(s.cfg.Ai.Temperature),
		llm.WithTopP(s.cfg.Ai.TopP),
		llm.WithRepeatPenalty(s.cfg.Ai.RepeatPenalty),
		llm.WithMaxTokens(s.cfg.Ai.MaxTokens),
		llm.WithStop(generationStop),
	}
	generator := response.NewGenerator(handles.LLM, ragCfg.MinAnswerLength, sampling, s.notifier, s.ragLogger)

	s.pipeline = executor.NewPipeline(
		reformulator,
		retriever,
		gate,
		generator,
		newGormHistoryStore(s.uowFactory),
		ragCfg.HistoryWindow,
		s.cfg.Ai.LLMModel,
		s.notifier,
		s.ragLogger,
	)
	return s.pipeline
}
