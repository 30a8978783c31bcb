package entity

import (
	"time"

	"github.com/google/uuid"
)

type SaleStatus string
type WithdrawalStatus string

const (
	SaleStatusPending  SaleStatus = "pending"
	SaleStatusApproved SaleStatus = "approved"
	SaleStatusPayable  SaleStatus = "payable"
	SaleStatusPaid     SaleStatus = "paid"

	WithdrawalStatusRequested WithdrawalStatus = "requested"
	WithdrawalStatusPaid      WithdrawalStatus = "paid"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// AffiliateLink maps a referral code to the tenant who owns it.
type AffiliateLink struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	Code          string
	CommissionBps int // basis points of the sale amount
	CreatedAt     time.Time
}

// AffiliateSale is commission bookkeeping hanging off checkout completion.
// It observes the billing state machine but is outside its hard guarantees:
// pending -> approved happens on payment approval, approved -> payable only
// after the guarantee window elapses (async job).
type AffiliateSale struct {
	Id         uuid.UUID
	LinkId     uuid.UUID
	CheckoutId uuid.UUID
	InvoiceId  *uuid.UUID
	Amount     int64 // commission, minor units
	Status     SaleStatus
	ApprovedAt *time.Time
	PayableAt  *time.Time
	CreatedAt  time.Time
}

type AffiliateWithdrawal struct {
	Id        uuid.UUID
	LinkId    uuid.UUID
	Amount    int64
	Status    WithdrawalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
