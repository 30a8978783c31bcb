// Package gateway defines the payment gateway seam. Providers are reduced to
// four operations; everything provider-specific (init points, client secrets,
// raw statuses) either stays inside an adapter or rides opaquely in Handle.
package gateway

import (
	"context"
	"errors"

	"autowebinar-be/internal/entity"
	"autowebinar-be/pkg/billing"
)

var (
	// ErrInvalidSignature means the delivery could not be authenticated.
	// The receiver logs and drops it but still acknowledges with 200.
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	// ErrEventIgnored marks notification types the billing machine has no
	// transition for. Not an error condition, just not ours.
	ErrEventIgnored = errors.New("webhook event ignored")
)

// CheckoutSession is the adapter-facing view of a checkout in flight. The
// instrument fields are empty at StartCheckout time and filled by the
// gateway-specific process endpoints.
type CheckoutSession struct {
	Checkout *entity.Checkout
	Plan     *entity.Plan

	CardToken       string
	PaymentMethodId string
	IssuerId        string
	Installments    int
	PayerEmail      string
}

// Handle is the opaque gateway-side reference returned to the checkout
// response. Which field is populated depends on the provider and flow.
type Handle struct {
	ExternalRef  string // preference / payment intent / preapproval id
	InitPoint    string // Mercado Pago redirect URL
	ClientSecret string // Stripe client secret
	Status       string // raw gateway status when known synchronously
}

// WebhookDelivery is one raw inbound notification. Header keys are lowercase.
type WebhookDelivery struct {
	Headers map[string]string
	Query   map[string]string
	Body    []byte
}

// NormalizedEvent is the provider-neutral translation of a delivery. The
// webhook service consumes only this.
type NormalizedEvent struct {
	Gateway    entity.GatewayName
	ExternalId string
	EventType  billing.EventType
	Amount     int64 // minor units
	// Reference is our checkout id when the provider echoes it back, else
	// the gateway-side subscription id.
	Reference string
	// SubscriptionRef is the gateway-side subscription id for events tied to
	// a recurring cycle, when the provider exposes it alongside Reference.
	SubscriptionRef string
}

type Gateway interface {
	Name() entity.GatewayName
	CreatePayment(ctx context.Context, session *CheckoutSession) (*Handle, error)
	CreateSubscription(ctx context.Context, session *CheckoutSession) (*Handle, error)
	VerifyWebhookSignature(delivery *WebhookDelivery) error
	ParseWebhookEvent(ctx context.Context, delivery *WebhookDelivery) (*NormalizedEvent, error)
}
