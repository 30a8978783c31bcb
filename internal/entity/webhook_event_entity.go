package entity

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is the idempotency ledger for gateway notifications. The
// (gateway, external id, event type) triple is unique in storage; a replayed
// delivery fails the insert and is treated as already applied.
type WebhookEvent struct {
	Id          uuid.UUID
	Gateway     GatewayName
	ExternalId  string
	EventType   string
	Payload     []byte // raw gateway payload, kept for audit/replay
	ProcessedAt *time.Time
	CreatedAt   time.Time
}
