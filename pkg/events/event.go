package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INVOICE_APPROVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Billing event codes published to the bus.
const (
	TypeInvoiceApproved      = "INVOICE_APPROVED"
	TypeInvoiceRejected      = "INVOICE_REJECTED"
	TypeSubscriptionChanged  = "SUBSCRIPTION_CHANGED"
	TypeAccessProvisioned    = "ACCESS_PROVISIONED"
	TypeAffiliateSaleAccrued = "AFFILIATE_SALE_ACCRUED"
	TypeAffiliateSalePayable = "AFFILIATE_SALE_PAYABLE"
	TypeAccessExpiringSoon   = "ACCESS_EXPIRING_SOON"
)

// BaseEvent is the standard Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
