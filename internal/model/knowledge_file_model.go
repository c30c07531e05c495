package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeFile struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename     string         `gorm:"type:varchar(255);not null"`
	StoredPath   string         `gorm:"type:varchar(512);not null"`
	Status       string         `gorm:"type:varchar(32);not null;index"`
	ChunkCount   int            `gorm:"default:0"`
	ErrorMessage string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeFile) TableName() string {
	return "knowledge_files"
}
