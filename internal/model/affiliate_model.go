package model

import (
	"time"

	"github.com/google/uuid"
)

type AffiliateLink struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Code          string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	CommissionBps int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (AffiliateLink) TableName() string {
	return "affiliate_links"
}

type AffiliateSale struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LinkId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CheckoutId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceId  *uuid.UUID `gorm:"type:uuid;index"`
	Amount     int64      `gorm:"not null"`
	Status     string     `gorm:"type:varchar(20);not null;index"`
	ApprovedAt *time.Time
	PayableAt  *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (AffiliateSale) TableName() string {
	return "affiliate_sales"
}

type AffiliateWithdrawal struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LinkId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AffiliateWithdrawal) TableName() string {
	return "affiliate_withdrawals"
}
