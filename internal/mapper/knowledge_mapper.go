package mapper

import (
	"time"

	"giziai-be/internal/entity"
	"giziai-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeFileMapper struct{}

func NewKnowledgeFileMapper() *KnowledgeFileMapper {
	return &KnowledgeFileMapper{}
}

func (m *KnowledgeFileMapper) ToEntity(f *model.KnowledgeFile) *entity.KnowledgeFile {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeFile{
		Id:           f.Id,
		Filename:     f.Filename,
		StoredPath:   f.StoredPath,
		Status:       f.Status,
		ChunkCount:   f.ChunkCount,
		ErrorMessage: f.ErrorMessage,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    updatedAt,
		IsDeleted:    f.DeletedAt.Valid,
	}
}

func (m *KnowledgeFileMapper) ToModel(f *entity.KnowledgeFile) *model.KnowledgeFile {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.KnowledgeFile{
		Id:           f.Id,
		Filename:     f.Filename,
		StoredPath:   f.StoredPath,
		Status:       f.Status,
		ChunkCount:   f.ChunkCount,
		ErrorMessage: f.ErrorMessage,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *KnowledgeFileMapper) ToEntities(files []*model.KnowledgeFile) []*entity.KnowledgeFile {
	entities := make([]*entity.KnowledgeFile, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &entity.DocumentEmbedding{
		Id:              e.Id,
		Chunk:           e.Chunk,
		EmbeddingValue:  e.EmbeddingValue.Slice(),
		KnowledgeFileId: e.KnowledgeFileId,
		ChunkIndex:      e.ChunkIndex,
		CreatedAt:       e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &model.DocumentEmbedding{
		Id:              e.Id,
		Chunk:           e.Chunk,
		EmbeddingValue:  pgvector.NewVector(e.EmbeddingValue),
		KnowledgeFileId: e.KnowledgeFileId,
		ChunkIndex:      e.ChunkIndex,
		CreatedAt:       e.CreatedAt,
	}
}
