package dto

import "time"

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
	Message   string `json:"message" validate:"required,min=1,max=4000"`
}

type ChatSourceDTO struct {
	Id    string  `json:"id"`
	Score float64 `json:"score"`
}

type ChatResponse struct {
	SessionId string          `json:"session_id"`
	Answer    string          `json:"answer"`
	Sources   []ChatSourceDTO `json:"sources,omitempty"`
}

type ChatHistoryItem struct {
	UserQuery string    `json:"user_query"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
