package dto

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeFileResponse struct {
	Id           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	Status       string    `json:"status"`
	ChunkCount   int       `json:"chunk_count"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListKnowledgeFilesQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending processing active error"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type ReprocessResponse struct {
	Queued int `json:"queued"`
}

// PublishEmbedDocumentMessage is the ingestion queue payload.
type PublishEmbedDocumentMessage struct {
	KnowledgeFileId uuid.UUID `json:"knowledge_file_id"`
}
