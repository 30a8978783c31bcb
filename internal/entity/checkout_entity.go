package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string
type PurchaseKind string

const (
	DocumentTypeCPF  DocumentType = "cpf"
	DocumentTypeCNPJ DocumentType = "cnpj"

	PurchaseKindNew     PurchaseKind = "new"
	PurchaseKindRenewal PurchaseKind = "renewal"
	PurchaseKindUpgrade PurchaseKind = "upgrade"
)

// Checkout binds a buyer to a plan and a gateway handle. The row is written
// only after the gateway call succeeds; resolution happens later via webhook,
// so an abandoned checkout simply never produces an invoice.
type Checkout struct {
	Id       uuid.UUID
	PlanId   uuid.UUID
	TenantId *uuid.UUID // set when the buyer is an authenticated tenant (renewal/upgrade)

	BuyerName      string
	BuyerEmail     string
	BuyerPhone     string
	DocumentType   DocumentType
	DocumentNumber string

	Gateway       GatewayName
	PurchaseKind  PurchaseKind
	AffiliateCode *string
	// Gateway-side reference created at checkout time (preference id,
	// payment intent id, preapproval id). Payment webhooks carry their own
	// transaction ids and are matched back through ExternalRef or Checkout.Id.
	ExternalRef *string

	CreatedAt time.Time
}
