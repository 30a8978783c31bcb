package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookEvent rows are the persisted idempotency keys for gateway
// notifications. The composite unique index is what makes replayed
// deliveries no-ops under concurrent delivery.
type WebhookEvent struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Gateway     string         `gorm:"type:varchar(20);not null;uniqueIndex:ux_webhook_events_key,priority:1"`
	ExternalId  string         `gorm:"type:varchar(255);not null;uniqueIndex:ux_webhook_events_key,priority:2"`
	EventType   string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_webhook_events_key,priority:3"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
