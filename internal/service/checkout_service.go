package service

import (
	"context"
	"fmt"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/pkg/billing"
	"autowebinar-be/pkg/docs"
	"autowebinar-be/pkg/gateway"

	"github.com/google/uuid"
)

type ICheckoutService interface {
	StartCheckout(ctx context.Context, planId uuid.UUID, req *dto.StartCheckoutRequest, tenantId *uuid.UUID) (*dto.StartCheckoutResponse, error)
	ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentStatusResponse, error)
	AuthorizeSubscription(ctx context.Context, req *dto.AuthorizeSubscriptionRequest) (*dto.PaymentStatusResponse, error)
}

type CheckoutService struct {
	uowFactory unitofwork.RepositoryFactory
	gateways   map[entity.GatewayName]gateway.Gateway
	affiliates IAffiliateService
	log        logger.ILogger
}

func NewCheckoutService(
	uowFactory unitofwork.RepositoryFactory,
	gateways map[entity.GatewayName]gateway.Gateway,
	affiliates IAffiliateService,
	log logger.ILogger,
) ICheckoutService {
	return &CheckoutService{
		uowFactory: uowFactory,
		gateways:   gateways,
		affiliates: affiliates,
		log:        log,
	}
}

// StartCheckout validates the buyer, calls the plan's gateway and only then
// persists the checkout row. A gateway failure leaves no durable state; an
// abandoned checkout simply never produces an invoice.
func (s *CheckoutService) StartCheckout(ctx context.Context, planId uuid.UUID, req *dto.StartCheckoutRequest, tenantId *uuid.UUID) (*dto.StartCheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, dto.ErrPlanNotFound
	}
	if !plan.IsActive {
		return nil, dto.ErrPlanInactive
	}

	if err := validateDocument(req.DocumentType, req.DocumentNumber); err != nil {
		return nil, err
	}

	buyerEmail := req.BuyerEmail
	var tenant *entity.Tenant
	if tenantId != nil {
		tenant, err = uow.TenantRepository().FindOne(ctx, specification.ByID{ID: *tenantId})
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, dto.ErrTenantNotFound
		}
	}

	if req.Renewal {
		if tenant == nil {
			return nil, dto.ErrTenantNotFound
		}
		// renewals are locked to the account email
		if buyerEmail != tenant.Email {
			return nil, dto.ErrRenewalEmailMismatch
		}
	}

	purchaseKind := s.derivePurchaseKind(ctx, uow, tenant, plan)

	checkout := &entity.Checkout{
		Id:             uuid.New(),
		PlanId:         plan.Id,
		TenantId:       tenantId,
		BuyerName:      req.BuyerName,
		BuyerEmail:     buyerEmail,
		BuyerPhone:     req.BuyerPhone,
		DocumentType:   entity.DocumentType(req.DocumentType),
		DocumentNumber: docs.Normalize(req.DocumentNumber),
		Gateway:        plan.Gateway,
		PurchaseKind:   purchaseKind,
	}
	if req.AffiliateCode != "" {
		checkout.AffiliateCode = &req.AffiliateCode
	}

	gw, ok := s.gateways[plan.Gateway]
	if !ok {
		return nil, fmt.Errorf("no gateway configured for %s", plan.Gateway)
	}

	session := &gateway.CheckoutSession{Checkout: checkout, Plan: plan}

	var handle *gateway.Handle
	if plan.IsRecurring() {
		handle, err = gw.CreateSubscription(ctx, session)
	} else {
		handle, err = gw.CreatePayment(ctx, session)
	}
	if err != nil {
		s.log.Error("checkout", "Gateway call failed", map[string]interface{}{
			"gateway": string(plan.Gateway),
			"plan":    plan.Slug,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", dto.ErrGatewayFailure, err)
	}

	if handle.ExternalRef != "" {
		checkout.ExternalRef = &handle.ExternalRef
	}
	if err := uow.CheckoutRepository().Create(ctx, checkout); err != nil {
		return nil, err
	}

	if checkout.AffiliateCode != nil {
		if err := s.affiliates.AccrueSale(ctx, checkout, plan); err != nil {
			// a bad referral code must not kill the sale itself
			s.log.Warn("checkout", "Affiliate accrual skipped", map[string]interface{}{
				"code":  *checkout.AffiliateCode,
				"error": err.Error(),
			})
		}
	}

	return &dto.StartCheckoutResponse{
		CheckoutId:   checkout.Id,
		Gateway:      string(plan.Gateway),
		IsRecurring:  plan.IsRecurring(),
		PurchaseKind: string(purchaseKind),
		InitPoint:    handle.InitPoint,
		ClientSecret: handle.ClientSecret,
	}, nil
}

// ProcessPayment charges a tokenized card against an open Mercado Pago
// checkout. The returned status is informational; durable state still only
// moves on webhook delivery.
func (s *CheckoutService) ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentStatusResponse, error) {
	checkout, plan, err := s.loadCheckout(ctx, req.CheckoutId)
	if err != nil {
		return nil, err
	}

	gw := s.gateways[entity.GatewayMercadoPago]
	handle, err := gw.CreatePayment(ctx, &gateway.CheckoutSession{
		Checkout:        checkout,
		Plan:            plan,
		CardToken:       req.Token,
		PaymentMethodId: req.PaymentMethodId,
		IssuerId:        req.IssuerId,
		Installments:    req.Installments,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrGatewayFailure, err)
	}

	s.storeExternalRef(ctx, checkout, handle.ExternalRef)
	return &dto.PaymentStatusResponse{Status: handle.Status}, nil
}

// AuthorizeSubscription opens the preapproval for a recurring Mercado Pago
// checkout once the frontend tokenized the card.
func (s *CheckoutService) AuthorizeSubscription(ctx context.Context, req *dto.AuthorizeSubscriptionRequest) (*dto.PaymentStatusResponse, error) {
	checkout, plan, err := s.loadCheckout(ctx, req.CheckoutId)
	if err != nil {
		return nil, err
	}

	gw := s.gateways[entity.GatewayMercadoPago]
	handle, err := gw.CreateSubscription(ctx, &gateway.CheckoutSession{
		Checkout:        checkout,
		Plan:            plan,
		CardToken:       req.CardToken,
		PaymentMethodId: req.PaymentMethodId,
		IssuerId:        req.IssuerId,
		PayerEmail:      req.PayerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrGatewayFailure, err)
	}

	s.storeExternalRef(ctx, checkout, handle.ExternalRef)
	return &dto.PaymentStatusResponse{Status: handle.Status}, nil
}

func (s *CheckoutService) loadCheckout(ctx context.Context, rawId string) (*entity.Checkout, *entity.Plan, error) {
	checkoutId, err := uuid.Parse(rawId)
	if err != nil {
		return nil, nil, dto.ErrCheckoutNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	checkout, err := uow.CheckoutRepository().FindOne(ctx, specification.ByID{ID: checkoutId})
	if err != nil {
		return nil, nil, err
	}
	if checkout == nil {
		return nil, nil, dto.ErrCheckoutNotFound
	}

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: checkout.PlanId})
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, dto.ErrPlanNotFound
	}
	return checkout, plan, nil
}

func (s *CheckoutService) storeExternalRef(ctx context.Context, checkout *entity.Checkout, externalRef string) {
	if externalRef == "" {
		return
	}
	checkout.ExternalRef = &externalRef
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CheckoutRepository().Update(ctx, checkout); err != nil {
		s.log.Warn("checkout", "Failed to store gateway reference", map[string]interface{}{
			"checkout_id": checkout.Id.String(),
			"error":       err.Error(),
		})
	}
}

func (s *CheckoutService) derivePurchaseKind(ctx context.Context, uow unitofwork.UnitOfWork, tenant *entity.Tenant, target *entity.Plan) entity.PurchaseKind {
	if tenant == nil {
		return entity.PurchaseKindNew
	}
	return billing.ClassifyPurchase(time.Now(), tenant, s.currentPlanOf(ctx, uow, tenant), target)
}

// currentPlanOf resolves what the tenant is paying for today: the active
// subscription's plan, or the plan behind the latest approved invoice when
// the purchase was one-time and no subscription row exists.
func (s *CheckoutService) currentPlanOf(ctx context.Context, uow unitofwork.UnitOfWork, tenant *entity.Tenant) *entity.Plan {
	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.TenantOwnedBy{TenantID: tenant.Id},
		specification.StatusIs{Status: string(entity.SubscriptionStatusActive)},
	)
	if err == nil && sub != nil {
		plan, _ := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: sub.PlanId})
		if plan != nil {
			return plan
		}
	}

	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.TenantOwnedBy{TenantID: tenant.Id},
		specification.StatusIs{Status: string(entity.InvoiceStatusApproved)},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil || invoice == nil || invoice.CheckoutId == nil {
		return nil
	}
	checkout, err := uow.CheckoutRepository().FindOne(ctx, specification.ByID{ID: *invoice.CheckoutId})
	if err != nil || checkout == nil {
		return nil
	}
	plan, _ := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: checkout.PlanId})
	return plan
}

func validateDocument(docType, number string) error {
	switch entity.DocumentType(docType) {
	case entity.DocumentTypeCPF:
		if !docs.IsValidCPF(number) {
			return dto.ErrDocumentInvalid
		}
	case entity.DocumentTypeCNPJ:
		if !docs.IsValidCNPJ(number) {
			return dto.ErrDocumentInvalid
		}
	default:
		return dto.ErrDocumentInvalid
	}
	return nil
}
