package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSource records which document chunk backed an answer.
type ChatSource struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// ChatLog is one persisted exchange. Rows are append-only.
type ChatLog struct {
	Id        uuid.UUID
	SessionId string
	UserQuery string
	Answer    string
	ModelTag  string
	Sources   []ChatSource
	CreatedAt time.Time
}
