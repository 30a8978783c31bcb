package entity

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusDisabled TenantStatus = "disabled"
)

// Tenant is the paying account (the "admin" of a webinar workspace).
// AccessExpiresAt and the quota/feature fields are a materialized view of
// (latest resolved invoice/subscription, plan). They are written exclusively
// by the access provisioner; any other writer would silently break the
// derivability invariant.
type Tenant struct {
	Id           uuid.UUID
	Name         string
	Email        string
	PasswordHash *string
	Status       TenantStatus

	AccessExpiresAt *time.Time

	WebinarLimit         int
	UploadLimit          int
	StorageLimitMB       int
	WhatsappAccountLimit int

	AiTranscriptionEnabled  bool
	AiDesignerEnabled       bool
	MessageGeneratorEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAccess reports whether the tenant's paid access window is still open.
func (t *Tenant) HasAccess(now time.Time) bool {
	return t.AccessExpiresAt != nil && t.AccessExpiresAt.After(now)
}
