package mapper

import (
	"encoding/json"

	"giziai-be/internal/entity"
	"giziai-be/internal/model"

	"gorm.io/datatypes"
)

type ChatLogMapper struct{}

func NewChatLogMapper() *ChatLogMapper {
	return &ChatLogMapper{}
}

func (m *ChatLogMapper) ToEntity(c *model.ChatLog) *entity.ChatLog {
	if c == nil {
		return nil
	}

	var sources []entity.ChatSource
	if len(c.Sources) > 0 {
		// Malformed JSON leaves sources nil; the log row is still usable.
		_ = json.Unmarshal(c.Sources, &sources)
	}

	return &entity.ChatLog{
		Id:        c.Id,
		SessionId: c.SessionId,
		UserQuery: c.UserQuery,
		Answer:    c.Answer,
		ModelTag:  c.ModelTag,
		Sources:   sources,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatLogMapper) ToModel(c *entity.ChatLog) *model.ChatLog {
	if c == nil {
		return nil
	}

	var sources datatypes.JSON
	if len(c.Sources) > 0 {
		if raw, err := json.Marshal(c.Sources); err == nil {
			sources = raw
		}
	}

	return &model.ChatLog{
		Id:        c.Id,
		SessionId: c.SessionId,
		UserQuery: c.UserQuery,
		Answer:    c.Answer,
		ModelTag:  c.ModelTag,
		Sources:   sources,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatLogMapper) ToEntities(logs []*model.ChatLog) []*entity.ChatLog {
	entities := make([]*entity.ChatLog, len(logs))
	for i, c := range logs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
