package service

import (
	"context"
	"time"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/pkg/billing"
)

// IAccessProvisioner is the sole writer of the tenant's denormalized access
// fields (expiry, quotas, feature flags). It runs inside the webhook
// transaction, so it takes the caller's unit of work.
type IAccessProvisioner interface {
	ApplyPlanAccess(ctx context.Context, uow unitofwork.UnitOfWork, tenant *entity.Tenant, plan *entity.Plan, cycleStart time.Time) error
}

type AccessProvisioner struct{}

func NewAccessProvisioner() IAccessProvisioner {
	return &AccessProvisioner{}
}

func (p *AccessProvisioner) ApplyPlanAccess(ctx context.Context, uow unitofwork.UnitOfWork, tenant *entity.Tenant, plan *entity.Plan, cycleStart time.Time) error {
	expiry := billing.AccessWindow(cycleStart, plan)
	tenant.AccessExpiresAt = &expiry

	// Entitlements are copied, not referenced: later plan edits must not
	// retroactively change what this billing cycle bought.
	tenant.WebinarLimit = plan.WebinarLimit
	tenant.UploadLimit = plan.UploadLimit
	tenant.StorageLimitMB = plan.StorageLimitMB
	tenant.WhatsappAccountLimit = plan.WhatsappAccountLimit

	tenant.AiTranscriptionEnabled = plan.AiTranscriptionEnabled
	tenant.AiDesignerEnabled = plan.AiDesignerEnabled
	tenant.MessageGeneratorEnabled = plan.MessageGeneratorEnabled

	return uow.TenantRepository().Update(ctx, tenant)
}
