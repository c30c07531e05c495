package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"giziai-be/internal/constant"
	"giziai-be/internal/dto"
	"giziai-be/internal/entity"
	"giziai-be/internal/repository/specification"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/embedding"
	"giziai-be/pkg/events"
	"giziai-be/pkg/extract"
	pktNats "giziai-be/pkg/nats"
	"giziai-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunking geometry from the original ingestion setup.
const (
	chunkSize    = 1000
	chunkOverlap = 300
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	extractor         *extract.Extractor
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		extractor:         extract.NewExtractor(),
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing knowledge file %s", payload.KnowledgeFileId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.KnowledgeFileRepository().FindOne(ctx, specification.ByID{ID: payload.KnowledgeFileId})
	if err != nil {
		log.Printf("[ERROR] Failed to get knowledge file %s: %v", payload.KnowledgeFileId, err)
		msg.Nack()
		return
	}
	if file == nil {
		log.Printf("[WARN] Knowledge file not found, probably deleted: %s", payload.KnowledgeFileId)
		msg.Ack()
		return
	}

	cs.setStatus(ctx, file, constant.KnowledgeStatusProcessing, "")

	text, err := cs.extractor.Extract(file.StoredPath)
	if err != nil {
		log.Printf("[ERROR] Failed to extract text from %s: %v", file.StoredPath, err)
		cs.fail(ctx, file, "text extraction failed: "+err.Error())
		msg.Ack() // extraction is deterministic, retrying won't help
		return
	}
	if text == "" {
		cs.fail(ctx, file, "no text content found")
		msg.Ack()
		return
	}

	chunks := utils.SplitText(text, chunkSize, chunkOverlap)
	log.Printf("[INFO] File %s split into %d chunks", file.Id, len(chunks))

	newEmbeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of file %s: %v", i, file.Id, err)
			cs.fail(ctx, file, "embedding failed: "+err.Error())
			msg.Nack() // embedding backend may recover
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.DocumentEmbedding{
			Id:              uuid.New(),
			Chunk:           chunk,
			EmbeddingValue:  res.Embedding.Values,
			KnowledgeFileId: file.Id,
			ChunkIndex:      i,
			CreatedAt:       time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-processing replaces the previous chunks wholesale.
	if err := uow.DocumentEmbeddingRepository().DeleteByKnowledgeFileId(ctx, file.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to insert embeddings: %v", err)
		msg.Nack()
		return
	}

	file.Status = constant.KnowledgeStatusActive
	file.ChunkCount = len(newEmbeddings)
	file.ErrorMessage = ""
	if err := uow.KnowledgeFileRepository().Update(ctx, file); err != nil {
		log.Printf("[ERROR] Failed to update file status: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] File %s processed: %d chunks active", file.Id, len(newEmbeddings))
	cs.publishProcessed(file, len(newEmbeddings))
	msg.Ack()
}

func (cs *consumerService) setStatus(ctx context.Context, file *entity.KnowledgeFile, status, errMsg string) {
	file.Status = status
	file.ErrorMessage = errMsg
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeFileRepository().Update(ctx, file); err != nil {
		log.Printf("[ERROR] Failed to set status %s on file %s: %v", status, file.Id, err)
	}
}

func (cs *consumerService) fail(ctx context.Context, file *entity.KnowledgeFile, reason string) {
	cs.setStatus(ctx, file, constant.KnowledgeStatusError, reason)
	cs.publishProcessed(file, 0)
}

func (cs *consumerService) publishProcessed(file *entity.KnowledgeFile, chunks int) {
	if cs.eventPublisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cs.eventPublisher.Publish(pubCtx, events.DocumentProcessed(file.Id.String(), file.Filename, file.Status, chunks)); err != nil {
		log.Printf("[WARN] Failed to publish document event: %v", err)
	}
}
