package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/pkg/mailer"
	"autowebinar-be/internal/repository/contract"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/pkg/billing"
	"autowebinar-be/pkg/events"
	"autowebinar-be/pkg/gateway"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// IWebhookService drives the billing state machine. Gateway deliveries are
// the ONLY path that writes invoices and (webhook-driven) subscription
// transitions; everything here happens in one transaction keyed by the
// idempotency insert.
type IWebhookService interface {
	HandleDelivery(ctx context.Context, name entity.GatewayName, delivery *gateway.WebhookDelivery) error
}

type WebhookService struct {
	uowFactory  unitofwork.RepositoryFactory
	gateways    map[entity.GatewayName]gateway.Gateway
	provisioner IAccessProvisioner
	publisher   IPublisherService
	mail        mailer.IMailer
	rdb         redis.UniversalClient
	log         logger.ILogger
}

func NewWebhookService(
	uowFactory unitofwork.RepositoryFactory,
	gateways map[entity.GatewayName]gateway.Gateway,
	provisioner IAccessProvisioner,
	publisher IPublisherService,
	mail mailer.IMailer,
	rdb redis.UniversalClient,
	log logger.ILogger,
) IWebhookService {
	return &WebhookService{
		uowFactory:  uowFactory,
		gateways:    gateways,
		provisioner: provisioner,
		publisher:   publisher,
		mail:        mail,
		rdb:         rdb,
		log:         log,
	}
}

func (s *WebhookService) HandleDelivery(ctx context.Context, name entity.GatewayName, delivery *gateway.WebhookDelivery) error {
	gw, ok := s.gateways[name]
	if !ok {
		return fmt.Errorf("no gateway registered for %s", name)
	}

	if err := gw.VerifyWebhookSignature(delivery); err != nil {
		// acknowledged but ignored; the gateway gets its 200 either way
		s.log.Warn("webhook", "Dropping unverifiable delivery", map[string]interface{}{
			"gateway": string(name),
			"error":   err.Error(),
		})
		return nil
	}

	event, err := gw.ParseWebhookEvent(ctx, delivery)
	if err != nil {
		if errors.Is(err, gateway.ErrEventIgnored) {
			return nil
		}
		return err
	}

	// Serialize concurrent deliveries for the same transaction. If a twin
	// delivery holds the lock, the idempotency insert will no-op ours on the
	// retry anyway, so losing the race is not an error.
	if s.rdb != nil {
		lockKey := fmt.Sprintf("webhook:lock:%s:%s", name, event.ExternalId)
		acquired, lockErr := s.rdb.SetNX(ctx, lockKey, 1, 30*time.Second).Result()
		if lockErr == nil {
			if !acquired {
				s.log.Info("webhook", "Concurrent delivery in flight, skipping", map[string]interface{}{
					"gateway":     string(name),
					"external_id": event.ExternalId,
				})
				return nil
			}
			defer s.rdb.Del(context.WithoutCancel(ctx), lockKey)
		}
	}

	return s.applyEvent(ctx, delivery.Body, event)
}

func (s *WebhookService) applyEvent(ctx context.Context, rawPayload []byte, event *gateway.NormalizedEvent) error {
	effect, err := billing.EffectOf(event.EventType)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback() //nolint:errcheck

	record := &entity.WebhookEvent{
		Id:         uuid.New(),
		Gateway:    event.Gateway,
		ExternalId: event.ExternalId,
		EventType:  string(event.EventType),
		Payload:    rawPayload,
	}
	if err := uow.WebhookEventRepository().Create(ctx, record); err != nil {
		if errors.Is(err, contract.ErrDuplicateEvent) {
			s.log.Info("webhook", "Replayed delivery, already applied", map[string]interface{}{
				"gateway":     string(event.Gateway),
				"external_id": event.ExternalId,
				"event_type":  string(event.EventType),
			})
			return nil
		}
		return err
	}

	checkout, subscription, plan, tenant, err := s.resolveContext(ctx, uow, event)
	if err != nil {
		return err
	}
	if plan == nil || tenant == nil {
		// event verified and recorded, but nothing of ours matches it
		s.log.Warn("webhook", "Unmatched delivery acknowledged", map[string]interface{}{
			"gateway":     string(event.Gateway),
			"external_id": event.ExternalId,
			"reference":   event.Reference,
		})
		if err := uow.WebhookEventRepository().MarkProcessed(ctx, record); err != nil {
			return err
		}
		return uow.Commit()
	}

	now := time.Now()

	var invoice *entity.Invoice
	if effect.InvoiceStatus != "" {
		invoice, err = s.recordInvoice(ctx, uow, event, effect, checkout, subscription, plan, tenant, now)
		if err != nil {
			return err
		}
	}

	grantAccess := effect.GrantAccess
	if effect.SubscriptionStatus != nil && plan.IsRecurring() {
		var applied bool
		subscription, applied, err = s.transitionSubscription(ctx, uow, event, effect, subscription, plan, tenant, now)
		if err != nil {
			return err
		}
		// a lifecycle event whose transition was rejected (late replay into a
		// terminal state) must not re-extend access; approved money still does
		if effect.InvoiceStatus == "" && !applied {
			grantAccess = false
		}
	}

	if grantAccess {
		if err := s.provisioner.ApplyPlanAccess(ctx, uow, tenant, plan, now); err != nil {
			return err
		}
	}

	if err := uow.WebhookEventRepository().MarkProcessed(ctx, record); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.afterCommit(ctx, event, effect, checkout, invoice, plan, tenant)
	return nil
}

// resolveContext ties the normalized event back to our rows. References are
// checkout ids (MP external_reference, Stripe metadata); subscription-cycle
// events may instead reference the gateway-side subscription id.
func (s *WebhookService) resolveContext(ctx context.Context, uow unitofwork.UnitOfWork, event *gateway.NormalizedEvent) (*entity.Checkout, *entity.Subscription, *entity.Plan, *entity.Tenant, error) {
	var checkout *entity.Checkout
	var subscription *entity.Subscription

	if checkoutId, err := uuid.Parse(event.Reference); err == nil {
		checkout, err = uow.CheckoutRepository().FindOne(ctx, specification.ByID{ID: checkoutId})
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	if checkout == nil {
		for _, externalId := range []string{event.Reference, event.SubscriptionRef, event.ExternalId} {
			if externalId == "" {
				continue
			}
			sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.Filter("external_id", externalId))
			if err != nil {
				return nil, nil, nil, nil, err
			}
			if sub != nil {
				subscription = sub
				break
			}
		}
	}

	var plan *entity.Plan
	var tenant *entity.Tenant
	var err error

	switch {
	case checkout != nil:
		plan, err = uow.PlanRepository().FindOne(ctx, specification.ByID{ID: checkout.PlanId})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		tenant, err = s.resolveTenant(ctx, uow, checkout)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	case subscription != nil:
		plan, err = uow.PlanRepository().FindOne(ctx, specification.ByID{ID: subscription.PlanId})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		tenant, err = uow.TenantRepository().FindOne(ctx, specification.ByID{ID: subscription.TenantId})
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	return checkout, subscription, plan, tenant, nil
}

// resolveTenant finds the buyer's tenant, creating a passwordless one on the
// first approved purchase; the buyer claims it later by registering with the
// same email.
func (s *WebhookService) resolveTenant(ctx context.Context, uow unitofwork.UnitOfWork, checkout *entity.Checkout) (*entity.Tenant, error) {
	repo := uow.TenantRepository()

	if checkout.TenantId != nil {
		return repo.FindOne(ctx, specification.ByID{ID: *checkout.TenantId})
	}

	tenant, err := repo.FindOne(ctx, specification.Filter("email", checkout.BuyerEmail))
	if err != nil {
		return nil, err
	}
	if tenant != nil {
		return tenant, nil
	}

	tenant = &entity.Tenant{
		Id:     uuid.New(),
		Name:   checkout.BuyerName,
		Email:  checkout.BuyerEmail,
		Status: entity.TenantStatusActive,
	}
	if err := repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *WebhookService) recordInvoice(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	event *gateway.NormalizedEvent,
	effect billing.Effect,
	checkout *entity.Checkout,
	subscription *entity.Subscription,
	plan *entity.Plan,
	tenant *entity.Tenant,
	now time.Time,
) (*entity.Invoice, error) {
	amount := event.Amount
	if amount == 0 {
		amount = plan.Price
	}

	invoice := &entity.Invoice{
		Id:           uuid.New(),
		TenantId:     tenant.Id,
		Amount:       amount,
		Status:       effect.InvoiceStatus,
		Gateway:      event.Gateway,
		GatewayTxnId: event.ExternalId,
	}
	if checkout != nil {
		invoice.CheckoutId = &checkout.Id
	}
	if subscription != nil {
		invoice.SubscriptionId = &subscription.Id
	}
	if effect.InvoiceStatus == entity.InvoiceStatusApproved {
		invoice.ApprovedAt = &now
	}

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *WebhookService) transitionSubscription(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	event *gateway.NormalizedEvent,
	effect billing.Effect,
	subscription *entity.Subscription,
	plan *entity.Plan,
	tenant *entity.Tenant,
	now time.Time,
) (*entity.Subscription, bool, error) {
	repo := uow.SubscriptionRepository()

	if subscription == nil {
		// latest non-cancelled row for this tenant+plan, if any
		existing, err := repo.FindOne(ctx,
			specification.TenantOwnedBy{TenantID: tenant.Id},
			specification.Filter("plan_id", plan.Id),
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		if err != nil {
			return nil, false, err
		}
		if existing != nil && existing.Status != entity.SubscriptionStatusCancelled {
			subscription = existing
		}
	}

	target := *effect.SubscriptionStatus

	if subscription == nil {
		// Stripe invoice events reference the gateway subscription id, not
		// the payment id; store that so later lifecycle events match this row.
		externalId := event.SubscriptionRef
		if externalId == "" {
			externalId = event.ExternalId
		}
		subscription = &entity.Subscription{
			Id:         uuid.New(),
			TenantId:   tenant.Id,
			PlanId:     plan.Id,
			Gateway:    event.Gateway,
			ExternalId: externalId,
			Status:     entity.SubscriptionStatusPending,
		}
		if err := repo.Create(ctx, subscription); err != nil {
			return nil, false, err
		}
	}

	if !billing.CanTransition(subscription.Status, target) {
		// cancelled is terminal: a late "active" replay must not resurrect it
		s.log.Warn("webhook", "Rejected subscription transition", map[string]interface{}{
			"subscription_id": subscription.Id.String(),
			"from":            string(subscription.Status),
			"to":              string(target),
		})
		return subscription, false, nil
	}

	subscription.Status = target
	if effect.SetNextBilling {
		next := billing.NextBillingDate(now, plan)
		subscription.NextBillingDate = &next
	}
	if err := repo.Update(ctx, subscription); err != nil {
		return nil, false, err
	}
	return subscription, true, nil
}

// afterCommit handles the side effects that must not hold the transaction:
// event bus, receipt mail. Failures are logged, never bubbled — the durable
// state is already committed.
func (s *WebhookService) afterCommit(
	ctx context.Context,
	event *gateway.NormalizedEvent,
	effect billing.Effect,
	checkout *entity.Checkout,
	invoice *entity.Invoice,
	plan *entity.Plan,
	tenant *entity.Tenant,
) {
	if invoice != nil && invoice.Status == entity.InvoiceStatusApproved {
		payload := map[string]interface{}{
			"invoice_id": invoice.Id.String(),
			"tenant_id":  tenant.Id.String(),
			"plan_id":    plan.Id.String(),
			"amount":     invoice.Amount,
		}
		if checkout != nil {
			payload["checkout_id"] = checkout.Id.String()
		}
		if err := s.publisher.PublishBillingEvent(ctx, events.New(events.TypeInvoiceApproved, payload)); err != nil {
			s.log.Error("webhook", "Failed to publish billing event", map[string]interface{}{"error": err.Error()})
		}

		if s.mail != nil {
			if err := s.mail.SendReceipt(tenant.Email, tenant.Name, plan.Name, invoice.Amount); err != nil {
				s.log.Warn("webhook", "Receipt mail failed", map[string]interface{}{
					"tenant_id": tenant.Id.String(),
					"error":     err.Error(),
				})
			}
		}
	}

	if effect.SubscriptionStatus != nil {
		payload := map[string]interface{}{
			"tenant_id":  tenant.Id.String(),
			"plan_id":    plan.Id.String(),
			"status":     string(*effect.SubscriptionStatus),
			"event_type": string(event.EventType),
		}
		if err := s.publisher.PublishBillingEvent(ctx, events.New(events.TypeSubscriptionChanged, payload)); err != nil {
			s.log.Error("webhook", "Failed to publish billing event", map[string]interface{}{"error": err.Error()})
		}
	}
}
