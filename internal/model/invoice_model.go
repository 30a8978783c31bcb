package model

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	CheckoutId     *uuid.UUID `gorm:"type:uuid;index"`
	SubscriptionId *uuid.UUID `gorm:"type:uuid;index"`
	Amount         int64      `gorm:"not null"`
	Status         string     `gorm:"type:varchar(20);not null"`
	PaymentMethod  string     `gorm:"type:varchar(50)"`
	Gateway        string     `gorm:"type:varchar(20);not null"`
	GatewayTxnId   string     `gorm:"type:varchar(255);not null;index"`
	ApprovedAt     *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Invoice) TableName() string {
	return "invoices"
}
