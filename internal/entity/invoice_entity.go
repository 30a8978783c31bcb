package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusRejected InvoiceStatus = "rejected"
)

// Invoice is one billed (or attempted) charge. Rows are append-only history:
// one per one-time payment, one per recurring cycle. They are written only by
// the webhook path, never optimistically at checkout time.
type Invoice struct {
	Id             uuid.UUID
	TenantId       uuid.UUID
	CheckoutId     *uuid.UUID
	SubscriptionId *uuid.UUID
	Amount         int64 // minor units
	Status         InvoiceStatus
	PaymentMethod  string
	Gateway        GatewayName
	GatewayTxnId   string
	ApprovedAt     *time.Time
	CreatedAt      time.Time
}
