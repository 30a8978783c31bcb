package model

import (
	"time"

	"github.com/google/uuid"
)

type Checkout struct {
	Id       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	TenantId *uuid.UUID `gorm:"type:uuid;index"`

	BuyerName      string `gorm:"type:varchar(255);not null"`
	BuyerEmail     string `gorm:"type:varchar(255);not null;index"`
	BuyerPhone     string `gorm:"type:varchar(50);not null"`
	DocumentType   string `gorm:"type:varchar(10);not null"`
	DocumentNumber string `gorm:"type:varchar(20);not null"`

	Gateway       string  `gorm:"type:varchar(20);not null"`
	PurchaseKind  string  `gorm:"type:varchar(20);not null"`
	AffiliateCode *string `gorm:"type:varchar(64);index"`
	ExternalRef   *string `gorm:"type:varchar(255);index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Checkout) TableName() string {
	return "checkouts"
}
