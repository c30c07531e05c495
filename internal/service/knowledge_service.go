package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"giziai-be/internal/constant"
	"giziai-be/internal/dto"
	"giziai-be/internal/entity"
	"giziai-be/internal/pkg/logger"
	"giziai-be/internal/repository/specification"
	"giziai-be/internal/repository/unitofwork"
	"giziai-be/pkg/extract"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Upload(ctx context.Context, filename string, content []byte) (*dto.KnowledgeFileResponse, error)
	List(ctx context.Context, query *dto.ListKnowledgeFilesQuery) ([]dto.KnowledgeFileResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reprocess(ctx context.Context) (*dto.ReprocessResponse, error)
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	uploadDir        string
	logger           logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	uploadDir string,
	appLogger logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		uploadDir:        uploadDir,
		logger:           appLogger,
	}
}

func (s *knowledgeService) Upload(ctx context.Context, filename string, content []byte) (*dto.KnowledgeFileResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extract.Supported(ext) {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if len(content) == 0 {
		return nil, errors.New("empty file")
	}

	fileId := uuid.New()
	storedPath := filepath.Join(s.uploadDir, fileId.String()+ext)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(storedPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	file := &entity.KnowledgeFile{
		Id:         fileId,
		Filename:   filename,
		StoredPath: storedPath,
		Status:     constant.KnowledgeStatusPending,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeFileRepository().Create(ctx, file); err != nil {
		// Keep disk and table consistent.
		_ = os.Remove(storedPath)
		return nil, err
	}

	if err := s.queueEmbedding(ctx, file.Id); err != nil {
		s.logger.Warn("knowledge", "failed to queue embedding, file stays pending", map[string]interface{}{
			"file_id": file.Id.String(),
			"error":   err.Error(),
		})
	}

	s.logger.Info("knowledge", "file uploaded", map[string]interface{}{
		"file_id":  file.Id.String(),
		"filename": filename,
	})

	resp := toKnowledgeFileResponse(file)
	return &resp, nil
}

func (s *knowledgeService) List(ctx context.Context, query *dto.ListKnowledgeFilesQuery) ([]dto.KnowledgeFileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if query.Status != "" {
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}

	files, err := uow.KnowledgeFileRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.KnowledgeFileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, toKnowledgeFileResponse(f))
	}
	return responses, nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.KnowledgeFileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if file == nil {
		return errors.New("knowledge file not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByKnowledgeFileId(ctx, id); err != nil {
		return err
	}
	if err := uow.KnowledgeFileRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := os.Remove(file.StoredPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("knowledge", "failed to remove stored file", map[string]interface{}{
			"path":  file.StoredPath,
			"error": err.Error(),
		})
	}

	s.logger.Info("knowledge", "file deleted", map[string]interface{}{"file_id": id.String()})
	return nil
}

// Reprocess re-queues every pending or errored file. This is the admin
// "reload knowledge base" action.
func (s *knowledgeService) Reprocess(ctx context.Context) (*dto.ReprocessResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	files, err := uow.KnowledgeFileRepository().FindAll(ctx,
		specification.ByStatuses{Statuses: []string{constant.KnowledgeStatusPending, constant.KnowledgeStatusError}},
	)
	if err != nil {
		return nil, err
	}

	queued := 0
	for _, f := range files {
		if err := s.queueEmbedding(ctx, f.Id); err != nil {
			s.logger.Warn("knowledge", "failed to queue file for reprocessing", map[string]interface{}{
				"file_id": f.Id.String(),
				"error":   err.Error(),
			})
			continue
		}
		queued++
	}

	return &dto.ReprocessResponse{Queued: queued}, nil
}

func (s *knowledgeService) queueEmbedding(ctx context.Context, fileId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{KnowledgeFileId: fileId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func toKnowledgeFileResponse(f *entity.KnowledgeFile) dto.KnowledgeFileResponse {
	return dto.KnowledgeFileResponse{
		Id:           f.Id,
		Filename:     f.Filename,
		Status:       f.Status,
		ChunkCount:   f.ChunkCount,
		ErrorMessage: f.ErrorMessage,
		CreatedAt:    f.CreatedAt,
	}
}
