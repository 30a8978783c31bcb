package entity

import (
	"github.com/google/uuid"
)

type BillingType string
type RecurrenceUnit string
type GatewayName string

const (
	BillingTypeOneTime   BillingType = "one_time"
	BillingTypeRecurring BillingType = "recurring"

	RecurrenceUnitMonth RecurrenceUnit = "month"
	RecurrenceUnitYear  RecurrenceUnit = "year"

	GatewayMercadoPago GatewayName = "mercadopago"
	GatewayStripe      GatewayName = "stripe"
)

// Plan is a sellable tier. Price is stored in minor units (centavos) so
// arithmetic stays exact; price edits never retroactively affect running
// subscriptions because entitlements are copied onto the tenant at billing time.
type Plan struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       int64 // minor units
	BillingType BillingType
	// Recurrence, only meaningful for recurring plans
	RecurrenceInterval int
	RecurrenceUnit     RecurrenceUnit
	// Access window granted per successful billing event
	AccessDays int
	// Quota limits copied onto the tenant on provisioning. -1 = unlimited.
	WebinarLimit         int
	UploadLimit          int
	StorageLimitMB       int
	WhatsappAccountLimit int
	// Feature flags
	AiTranscriptionEnabled  bool
	AiDesignerEnabled       bool
	MessageGeneratorEnabled bool
	// Which gateway sells this plan
	Gateway GatewayName
	// Optional pre-provisioned Stripe price for recurring checkout
	StripePriceId string
	// Display settings
	IsActive  bool
	IsVisible bool
	SortOrder int
}

// IsRecurring reports whether checkout must go through the gateway's
// subscription flow instead of a single charge.
func (p *Plan) IsRecurring() bool {
	return p.BillingType == BillingTypeRecurring
}
