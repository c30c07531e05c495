package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"giziai-be/internal/config"
	"giziai-be/internal/controller"
	"giziai-be/internal/pkg/logger"
	"giziai-be/internal/pkg/mailer"
	"giziai-be/internal/repository/memory"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/internal/service"
	"giziai-be/pkg/embedding"
	"giziai-be/pkg/llm/factory"
	pktNats "giziai-be/pkg/nats"
	"giziai-be/pkg/rag/runtime"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := initRagLogger()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.OperatorEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, embedding cache disabled: %v", err)
		redisUp = false
	}

	// 3. Model backends, built lazily behind the readiness manager
	rt := runtime.NewManager(func(ctx context.Context) (*runtime.Handles, error) {
		llmProvider, err := factory.NewLLMProvider(cfg)
		if err != nil {
			return nil, err
		}
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

		var embeddingProvider embedding.EmbeddingProvider
		if cfg.Ai.EmbeddingProvider == "gemini" {
			embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
			log.Printf("[INFO] Using Embedding Provider: GEMINI")
		} else {
			embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
			log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
		}
		if redisUp {
			embeddingProvider = embedding.NewRedisCache(embeddingProvider, rdb, 24*time.Hour)
		}

		// Probe the embedding backend so Ensure fails fast while the
		// stack is still warming up, and is retried on the next request.
		if _, err := embeddingProvider.Generate("ping", "RETRIEVAL_QUERY"); err != nil {
			return nil, fmt.Errorf("embedding backend not reachable: %w", err)
		}

		return &runtime.Handles{
			LLM:      llmProvider,
			Embedder: embeddingProvider,
		}, nil
	})

	// 4. Services
	inflightRepo := memory.NewInflightRepository()
	notifier := service.NewAlertNotifier(sysLogger, emailService, natsPub)

	publisherService := service.NewPublisherService(pubSub, cfg.Rag.EmbedTopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Rag.EmbedTopicName,
		uowFactory,
		newIngestEmbedder(rt),
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, cfg.App.JwtSecret)
	chatService := service.NewChatService(
		cfg,
		uowFactory,
		inflightRepo,
		rt,
		notifier,
		natsPub,
		sysLogger,
		ragLogger,
	)
	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService, cfg.App.UploadDir, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ConsumerService:     consumerService,
	}
}

// runtimeEmbedder defers embedding to the lazily-built handles so the
// ingestion consumer shares the same backend (and cache) as the pipeline.
type runtimeEmbedder struct {
	rt *runtime.Manager
}

func newIngestEmbedder(rt *runtime.Manager) embedding.EmbeddingProvider {
	return &runtimeEmbedder{rt: rt}
}

func (e *runtimeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	handles, err := e.rt.Ensure(context.Background())
	if err != nil {
		return nil, err
	}
	return handles.Embedder.Generate(text, taskType)
}

func initRagLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "rag_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
