package model

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"`

	AccessExpiresAt *time.Time `gorm:"index"`

	WebinarLimit         int `gorm:"default:0"`
	UploadLimit          int `gorm:"default:0"`
	StorageLimitMB       int `gorm:"default:0"`
	WhatsappAccountLimit int `gorm:"default:0"`

	AiTranscriptionEnabled  bool `gorm:"default:false"`
	AiDesignerEnabled       bool `gorm:"default:false"`
	MessageGeneratorEnabled bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Tenant) TableName() string {
	return "tenants"
}
