package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentEmbedding struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Chunk           string          `gorm:"type:text;not null"`
	EmbeddingValue  pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text and text-embedding-004 both emit 768 dims
	KnowledgeFileId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex      int             `gorm:"default:0"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
