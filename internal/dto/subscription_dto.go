package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionResponse struct {
	Id              uuid.UUID  `json:"id"`
	Status          string     `json:"status"`
	Gateway         string     `json:"gateway"`
	NextBillingDate *time.Time `json:"nextBillingDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type InvoiceResponse struct {
	Id            uuid.UUID  `json:"id"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	Gateway       string     `json:"gateway"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// SubscriptionOverviewResponse backs the admin billing page: current plan,
// subscription state, invoice history and the access window.
type SubscriptionOverviewResponse struct {
	Plan            *PlanResponse         `json:"plan,omitempty"`
	Subscription    *SubscriptionResponse `json:"subscription,omitempty"`
	Invoices        []InvoiceResponse     `json:"invoices"`
	AccessExpiresAt *time.Time            `json:"accessExpiresAt,omitempty"`
	HasAccess       bool                  `json:"hasAccess"`
}

type RenewSubscriptionRequest struct {
	PlanId string `json:"planId" validate:"required,uuid4"`
}
