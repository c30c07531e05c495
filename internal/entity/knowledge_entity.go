package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeFile struct {
	Id           uuid.UUID
	Filename     string
	StoredPath   string
	Status       string
	ChunkCount   int
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	IsDeleted    bool
}

type DocumentEmbedding struct {
	Id              uuid.UUID
	Chunk           string
	EmbeddingValue  []float32
	KnowledgeFileId uuid.UUID
	ChunkIndex      int
	CreatedAt       time.Time
}
