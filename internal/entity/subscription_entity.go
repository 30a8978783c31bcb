package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the durable record of a tenant's recurring billing
// relationship. Status is mutated only by webhook transitions or the explicit
// user cancel action. Cancelled rows are terminal: a re-subscribe creates a
// new row, old rows stay for audit.
type Subscription struct {
	Id              uuid.UUID
	TenantId        uuid.UUID
	PlanId          uuid.UUID
	Gateway         GatewayName
	ExternalId      string // gateway-side subscription/preapproval id
	Status          SubscriptionStatus
	NextBillingDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
