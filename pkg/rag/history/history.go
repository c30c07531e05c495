// Package history models the append-only conversation log feeding the
// retrieval pipeline.
package history

import (
	"context"
	"time"

	"giziai-be/internal/constant"
	"giziai-be/pkg/llm"
)

// SourceRef records which document chunk contributed to an answer.
type SourceRef struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Turn is one completed exchange. Turns are immutable once appended.
type Turn struct {
	SessionID string
	UserQuery string
	Answer    string
	ModelTag  string
	Sources   []SourceRef
	CreatedAt time.Time
}

// Store is the conversation log. Read returns turns oldest-first.
type Store interface {
	Read(ctx context.Context, sessionID string) ([]Turn, error)
	Append(ctx context.Context, turn Turn) error
}

// MessagesFromTurns flattens turns into chat messages in timestamp order:
// one user message per non-empty query, one assistant message per non-empty
// answer. Empty sides are skipped so the result stays well-formed even if a
// turn was persisted with a blank answer.
func MessagesFromTurns(turns []Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns)*2)
	for _, t := range turns {
		if t.UserQuery != "" {
			messages = append(messages, llm.Message{
				Role:    constant.ChatMessageRoleUser,
				Content: t.UserQuery,
			})
		}
		if t.Answer != "" {
			messages = append(messages, llm.Message{
				Role:    constant.ChatMessageRoleModel,
				Content: t.Answer,
			})
		}
	}
	return messages
}

// Window returns the last max messages, oldest-first. max <= 0 means no
// history at all.
func Window(messages []llm.Message, max int) []llm.Message {
	if max <= 0 {
		return nil
	}
	if len(messages) <= max {
		return messages
	}
	return messages[len(messages)-max:]
}
