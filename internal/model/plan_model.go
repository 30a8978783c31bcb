package model

import (
	"github.com/google/uuid"
)

type Plan struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null"` // minor units
	BillingType string    `gorm:"type:varchar(20);not null"`

	RecurrenceInterval int    `gorm:"default:1"`
	RecurrenceUnit     string `gorm:"type:varchar(10);default:'month'"`
	AccessDays         int    `gorm:"not null;default:30"`

	// Quotas, -1 = unlimited
	WebinarLimit         int `gorm:"default:1"`
	UploadLimit          int `gorm:"default:5"`
	StorageLimitMB       int `gorm:"default:1024"`
	WhatsappAccountLimit int `gorm:"default:0"`

	AiTranscriptionEnabled  bool `gorm:"default:false"`
	AiDesignerEnabled       bool `gorm:"default:false"`
	MessageGeneratorEnabled bool `gorm:"default:false"`

	Gateway       string `gorm:"type:varchar(20);not null"`
	StripePriceId string `gorm:"type:varchar(255)"`

	IsActive  bool `gorm:"default:true"`
	IsVisible bool `gorm:"default:true"`
	SortOrder int  `gorm:"default:0"`
}

func (Plan) TableName() string {
	return "plans"
}
