package billing

import (
	"fmt"

	"autowebinar-be/internal/entity"
)

// EventType is the normalized gateway event vocabulary. Adapters translate
// provider-specific notifications into exactly these six values; everything
// downstream (invoice writes, subscription transitions, provisioning) keys
// off them and never sees raw gateway statuses.
type EventType string

const (
	EventPaymentApproved EventType = "payment.approved"
	EventPaymentRejected EventType = "payment.rejected"
	EventPaymentPending  EventType = "payment.pending"

	EventSubscriptionAuthorized EventType = "subscription.authorized"
	EventSubscriptionPaused     EventType = "subscription.paused"
	EventSubscriptionCancelled  EventType = "subscription.cancelled"
)

// Effect is what one normalized event does to durable state. Invoice rows are
// append-only, so InvoiceStatus (when set) means "record a new invoice with
// this status", never "mutate an old one".
type Effect struct {
	// InvoiceStatus, when non-empty, records an invoice row for payment events.
	InvoiceStatus entity.InvoiceStatus
	// SubscriptionStatus, when non-nil, is the target state for the tenant's
	// subscription, subject to CanTransition.
	SubscriptionStatus *entity.SubscriptionStatus
	// GrantAccess extends the tenant access window and re-copies plan
	// entitlements. Approved money and authorized subscriptions move it;
	// pending, rejected, paused and cancelled never do.
	GrantAccess bool
	// SetNextBilling advances NextBillingDate by one recurrence interval.
	SetNextBilling bool
}

func statusPtr(s entity.SubscriptionStatus) *entity.SubscriptionStatus {
	return &s
}

// EffectOf maps a normalized event to its state effect. Unknown event types
// are an error so a miswired adapter fails loudly instead of silently
// dropping money events.
func EffectOf(event EventType) (Effect, error) {
	switch event {
	case EventPaymentApproved:
		return Effect{
			InvoiceStatus:      entity.InvoiceStatusApproved,
			SubscriptionStatus: statusPtr(entity.SubscriptionStatusActive),
			GrantAccess:        true,
			SetNextBilling:     true,
		}, nil
	case EventPaymentRejected:
		return Effect{
			InvoiceStatus: entity.InvoiceStatusRejected,
		}, nil
	case EventPaymentPending:
		// Recorded for audit. Never grants access, never moves the
		// subscription out of pending.
		return Effect{
			InvoiceStatus: entity.InvoiceStatusPending,
		}, nil
	case EventSubscriptionAuthorized:
		// An authorization opens a billing cycle even when no payment event
		// accompanies it (MP tokenized preapprovals, Stripe subscription
		// updates), so it provisions the current plan window itself.
		return Effect{
			SubscriptionStatus: statusPtr(entity.SubscriptionStatusActive),
			GrantAccess:        true,
			SetNextBilling:     true,
		}, nil
	case EventSubscriptionPaused:
		return Effect{
			SubscriptionStatus: statusPtr(entity.SubscriptionStatusPaused),
		}, nil
	case EventSubscriptionCancelled:
		return Effect{
			SubscriptionStatus: statusPtr(entity.SubscriptionStatusCancelled),
		}, nil
	default:
		return Effect{}, fmt.Errorf("unknown billing event type: %s", event)
	}
}

// CanTransition encodes the subscription state machine:
//
//	pending   -> active | cancelled
//	active    -> paused | cancelled
//	paused    -> active | cancelled
//	cancelled -> (terminal)
//
// Self-transitions are allowed and treated as no-ops by callers (a retried
// "active" from the gateway must not error).
func CanTransition(from, to entity.SubscriptionStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case entity.SubscriptionStatusPending:
		return to == entity.SubscriptionStatusActive || to == entity.SubscriptionStatusCancelled
	case entity.SubscriptionStatusActive:
		return to == entity.SubscriptionStatusPaused || to == entity.SubscriptionStatusCancelled
	case entity.SubscriptionStatusPaused:
		return to == entity.SubscriptionStatusActive || to == entity.SubscriptionStatusCancelled
	case entity.SubscriptionStatusCancelled:
		return false
	default:
		return false
	}
}
