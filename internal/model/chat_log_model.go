package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string         `gorm:"type:varchar(64);not null;index"`
	UserQuery string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	ModelTag  string         `gorm:"type:varchar(128)"`
	Sources   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
