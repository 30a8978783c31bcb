package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantOwnedBy filters rows belonging to a tenant.
type TenantOwnedBy struct {
	TenantID uuid.UUID
}

func (s TenantOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_id = ?", s.TenantID)
}

// ActiveOnly filters plans that are sellable.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// VisibleOnly filters plans shown on the public pricing surface.
type VisibleOnly struct{}

func (s VisibleOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_visible = ?", true)
}

// StatusIs filters by a status column value.
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ApprovedBefore filters affiliate sales whose approval predates the cutoff.
// Used by the guarantee-window promotion job.
type ApprovedBefore struct {
	Cutoff time.Time
}

func (s ApprovedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("approved_at IS NOT NULL AND approved_at <= ?", s.Cutoff)
}

// AccessExpiringBetween selects tenants whose paid access runs out inside the
// window. Used by the renewal reminder job.
type AccessExpiringBetween struct {
	From time.Time
	To   time.Time
}

func (s AccessExpiringBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("access_expires_at > ? AND access_expires_at <= ?", s.From, s.To)
}
