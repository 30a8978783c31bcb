package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId        uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Gateway         string    `gorm:"type:varchar(20);not null"`
	ExternalId      string    `gorm:"type:varchar(255);not null;index"`
	Status          string    `gorm:"type:varchar(20);not null"`
	NextBillingDate *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
