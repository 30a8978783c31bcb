package dto

import "github.com/google/uuid"

type PlanResponse struct {
	Id                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	Price              int64     `json:"price"` // minor units
	Currency           string    `json:"currency"`
	BillingType        string    `json:"billingType"`
	RecurrenceInterval int       `json:"recurrenceInterval,omitempty"`
	RecurrenceUnit     string    `json:"recurrenceUnit,omitempty"`
	AccessDays         int       `json:"accessDays"`

	WebinarLimit         int `json:"webinarLimit"`
	UploadLimit          int `json:"uploadLimit"`
	StorageLimitMB       int `json:"storageLimitMb"`
	WhatsappAccountLimit int `json:"whatsappAccountLimit"`

	AiTranscriptionEnabled  bool `json:"aiTranscriptionEnabled"`
	AiDesignerEnabled       bool `json:"aiDesignerEnabled"`
	MessageGeneratorEnabled bool `json:"messageGeneratorEnabled"`

	Gateway   string `json:"gateway"`
	SortOrder int    `json:"sortOrder"`
}

// PlanSummaryResponse is the order summary shown on the checkout page.
type PlanSummaryResponse struct {
	Plan        PlanResponse `json:"plan"`
	TotalAmount int64        `json:"totalAmount"`
	Currency    string       `json:"currency"`
	IsRecurring bool         `json:"isRecurring"`
}
