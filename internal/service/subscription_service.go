package service

import (
	"context"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/pkg/billing"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	GetOverview(ctx context.Context, tenantId uuid.UUID) (*dto.SubscriptionOverviewResponse, error)
	// Cancel is local-only: access persists until the already-granted expiry,
	// the gateway simply stops being honored for future cycles.
	Cancel(ctx context.Context, tenantId uuid.UUID) (*dto.SubscriptionResponse, error)
	// Renew starts a fresh checkout for the given plan reusing the tenant's
	// last buyer details.
	Renew(ctx context.Context, tenantId uuid.UUID, planId uuid.UUID) (*dto.StartCheckoutResponse, error)
}

type SubscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	checkouts  ICheckoutService
	log        logger.ILogger
}

func NewSubscriptionService(uowFactory unitofwork.RepositoryFactory, checkouts ICheckoutService, log logger.ILogger) ISubscriptionService {
	return &SubscriptionService{
		uowFactory: uowFactory,
		checkouts:  checkouts,
		log:        log,
	}
}

func (s *SubscriptionService) GetOverview(ctx context.Context, tenantId uuid.UUID) (*dto.SubscriptionOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: tenantId})
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, dto.ErrTenantNotFound
	}

	subscription, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	invoices, err := uow.InvoiceRepository().FindAll(ctx, specification.TenantOwnedBy{TenantID: tenantId})
	if err != nil {
		return nil, err
	}

	resp := &dto.SubscriptionOverviewResponse{
		Invoices:        make([]dto.InvoiceResponse, 0, len(invoices)),
		AccessExpiresAt: tenant.AccessExpiresAt,
		HasAccess:       tenant.HasAccess(time.Now()),
	}

	if subscription != nil {
		resp.Subscription = &dto.SubscriptionResponse{
			Id:              subscription.Id,
			Status:          string(subscription.Status),
			Gateway:         string(subscription.Gateway),
			NextBillingDate: subscription.NextBillingDate,
			CreatedAt:       subscription.CreatedAt,
		}
		plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: subscription.PlanId})
		if err != nil {
			return nil, err
		}
		if plan != nil {
			planResp := toPlanResponse(plan)
			resp.Plan = &planResp
		}
	}

	for _, invoice := range invoices {
		resp.Invoices = append(resp.Invoices, dto.InvoiceResponse{
			Id:            invoice.Id,
			Amount:        invoice.Amount,
			Status:        string(invoice.Status),
			Gateway:       string(invoice.Gateway),
			PaymentMethod: invoice.PaymentMethod,
			ApprovedAt:    invoice.ApprovedAt,
			CreatedAt:     invoice.CreatedAt,
		})
	}

	return resp, nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, tenantId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() //nolint:errcheck

	repo := uow.SubscriptionRepository()
	subscription, err := repo.FindOne(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, dto.ErrSubscriptionNotFound
	}

	if !billing.CanTransition(subscription.Status, entity.SubscriptionStatusCancelled) {
		return nil, dto.ErrInvalidTransition
	}

	subscription.Status = entity.SubscriptionStatusCancelled
	if err := repo.Update(ctx, subscription); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("subscription", "Cancelled by tenant", map[string]interface{}{
		"subscription_id": subscription.Id.String(),
		"tenant_id":       tenantId.String(),
	})

	return &dto.SubscriptionResponse{
		Id:              subscription.Id,
		Status:          string(subscription.Status),
		Gateway:         string(subscription.Gateway),
		NextBillingDate: subscription.NextBillingDate,
		CreatedAt:       subscription.CreatedAt,
	}, nil
}

func (s *SubscriptionService) Renew(ctx context.Context, tenantId uuid.UUID, planId uuid.UUID) (*dto.StartCheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: tenantId})
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, dto.ErrTenantNotFound
	}

	// reuse buyer details from the tenant's last checkout
	lastCheckout, err := uow.CheckoutRepository().FindOne(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if lastCheckout == nil {
		return nil, dto.ErrCheckoutNotFound
	}

	req := &dto.StartCheckoutRequest{
		BuyerName:      tenant.Name,
		BuyerEmail:     tenant.Email,
		BuyerPhone:     lastCheckout.BuyerPhone,
		DocumentType:   string(lastCheckout.DocumentType),
		DocumentNumber: lastCheckout.DocumentNumber,
		Renewal:        true,
	}
	return s.checkouts.StartCheckout(ctx, planId, req, &tenantId)
}
