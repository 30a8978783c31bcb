package unitofwork

import (
	"context"

	"autowebinar-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PlanRepository() contract.PlanRepository
	CheckoutRepository() contract.CheckoutRepository
	InvoiceRepository() contract.InvoiceRepository
	SubscriptionRepository() contract.SubscriptionRepository
	TenantRepository() contract.TenantRepository
	WebhookEventRepository() contract.WebhookEventRepository
	AffiliateRepository() contract.AffiliateRepository
}
