package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"giziai-be/internal/constant"
	"giziai-be/internal/entity"
	"giziai-be/internal/repository/specification"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatLogRepository())
	assert.NotNil(t, uow.KnowledgeFileRepository())
	assert.NotNil(t, uow.DocumentEmbeddingRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Count implies the table and its columns exist.
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Embedding Repository", func(t *testing.T) {
		count, err := uow.DocumentEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentEmbedding count: %d", count)
	})

	t.Run("Check Chat Log Writes And Session Reads", func(t *testing.T) {
		ctx := context.Background()
		sessionId := uuid.New().String()

		chatLog := &entity.ChatLog{
			Id:        uuid.New(),
			SessionId: sessionId,
			UserQuery: "Apa itu stunting?",
			Answer:    "Stunting adalah gagal tumbuh kronis.",
			ModelTag:  "integration-test",
			Sources: []entity.ChatSource{
				{ID: uuid.New().String(), Score: 0.9},
			},
			CreatedAt: time.Now(),
		}
		err := uow.ChatLogRepository().Create(ctx, chatLog)
		assert.NoError(t, err)

		logs, err := uow.ChatLogRepository().FindAll(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.OrderBy{Field: "created_at"},
		)
		assert.NoError(t, err)
		if assert.Len(t, logs, 1) {
			assert.Equal(t, "Apa itu stunting?", logs[0].UserQuery)
			assert.Len(t, logs[0].Sources, 1)
		}
	})

	t.Run("Check Transactional Knowledge Ingest", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		fileId := uuid.New()
		file := &entity.KnowledgeFile{
			Id:         fileId,
			Filename:   "integration-" + uuid.New().String() + ".txt",
			StoredPath: "/tmp/does-not-matter.txt",
			Status:     constant.KnowledgeStatusPending,
			CreatedAt:  time.Now(),
		}
		err = uow.KnowledgeFileRepository().Create(ctx, file)
		assert.NoError(t, err)

		vector := make([]float32, 768)
		vector[0] = 1
		embeddings := []*entity.DocumentEmbedding{
			{
				Id:              uuid.New(),
				Chunk:           "stunting adalah gagal tumbuh kronis",
				EmbeddingValue:  vector,
				KnowledgeFileId: fileId,
				ChunkIndex:      0,
				CreatedAt:       time.Now(),
			},
		}
		err = uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings)
		assert.NoError(t, err)

		err = uow.DocumentEmbeddingRepository().DeleteByKnowledgeFileId(ctx, fileId)
		assert.NoError(t, err)
	})
}
