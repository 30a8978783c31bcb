package service

import (
	"context"
	"sort"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/contract"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"
	"autowebinar-be/pkg/events"
	"autowebinar-be/pkg/gateway"

	"github.com/google/uuid"
)

// In-memory doubles for the persistence and gateway boundaries. The repos
// interpret the same specification values production code passes, for the
// handful of fields the billing services actually filter on.

type memStore struct {
	plans         []*entity.Plan
	tenants       []*entity.Tenant
	checkouts     []*entity.Checkout
	invoices      []*entity.Invoice
	subscriptions []*entity.Subscription
	webhookEvents []*entity.WebhookEvent

	links       []*entity.AffiliateLink
	sales       []*entity.AffiliateSale
	withdrawals []*entity.AffiliateWithdrawal
}

type memFactory struct {
	store *memStore
}

func newMemFactory() *memFactory {
	return &memFactory{store: &memStore{}}
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) PlanRepository() contract.PlanRepository { return &memPlanRepo{u.store} }
func (u *memUow) CheckoutRepository() contract.CheckoutRepository {
	return &memCheckoutRepo{u.store}
}
func (u *memUow) InvoiceRepository() contract.InvoiceRepository { return &memInvoiceRepo{u.store} }
func (u *memUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &memSubscriptionRepo{u.store}
}
func (u *memUow) TenantRepository() contract.TenantRepository { return &memTenantRepo{u.store} }
func (u *memUow) WebhookEventRepository() contract.WebhookEventRepository {
	return &memWebhookEventRepo{u.store}
}
func (u *memUow) AffiliateRepository() contract.AffiliateRepository {
	return &memAffiliateRepo{u.store}
}

// plan repo

type memPlanRepo struct{ store *memStore }

func (r *memPlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	r.store.plans = append(r.store.plans, plan)
	return nil
}

func (r *memPlanRepo) Update(ctx context.Context, plan *entity.Plan) error {
	for i, p := range r.store.plans {
		if p.Id == plan.Id {
			r.store.plans[i] = plan
		}
	}
	return nil
}

func (r *memPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.plans[:0]
	for _, p := range r.store.plans {
		if p.Id != id {
			kept = append(kept, p)
		}
	}
	r.store.plans = kept
	return nil
}

func (r *memPlanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memPlanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.store.plans {
		if matchPlan(p, specs) {
			out = append(out, p)
		}
	}
	for _, spec := range specs {
		if ord, ok := spec.(specification.OrderBy); ok && ord.Field == "sort_order" {
			sort.Slice(out, func(i, j int) bool {
				if ord.Desc {
					return out[i].SortOrder > out[j].SortOrder
				}
				return out[i].SortOrder < out[j].SortOrder
			})
		}
	}
	return out, nil
}

func matchPlan(p *entity.Plan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ActiveOnly:
			if !p.IsActive {
				return false
			}
		case specification.VisibleOnly:
			if !p.IsVisible {
				return false
			}
		}
	}
	return true
}

// tenant repo

type memTenantRepo struct{ store *memStore }

func (r *memTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	r.store.tenants = append(r.store.tenants, tenant)
	return nil
}

func (r *memTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	for i, t := range r.store.tenants {
		if t.Id == tenant.Id {
			r.store.tenants[i] = tenant
		}
	}
	return nil
}

func (r *memTenantRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tenant, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memTenantRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range r.store.tenants {
		if matchTenant(t, specs) {
			out = append(out, t)
		}
	}
	return out, nil
}

func matchTenant(t *entity.Tenant, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if t.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "email" && t.Email != s.Value.(string) {
				return false
			}
		case specification.AccessExpiringBetween:
			if t.AccessExpiresAt == nil ||
				!t.AccessExpiresAt.After(s.From) ||
				t.AccessExpiresAt.After(s.To) {
				return false
			}
		}
	}
	return true
}

// checkout repo

type memCheckoutRepo struct{ store *memStore }

func (r *memCheckoutRepo) Create(ctx context.Context, checkout *entity.Checkout) error {
	r.store.checkouts = append(r.store.checkouts, checkout)
	return nil
}

func (r *memCheckoutRepo) Update(ctx context.Context, checkout *entity.Checkout) error {
	for i, c := range r.store.checkouts {
		if c.Id == checkout.Id {
			r.store.checkouts[i] = checkout
		}
	}
	return nil
}

func (r *memCheckoutRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Checkout, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memCheckoutRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Checkout, error) {
	var out []*entity.Checkout
	for _, c := range r.store.checkouts {
		if matchCheckout(c, specs) {
			out = append(out, c)
		}
	}
	for _, spec := range specs {
		if ord, ok := spec.(specification.OrderBy); ok && ord.Field == "created_at" && ord.Desc {
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		}
	}
	return out, nil
}

func matchCheckout(c *entity.Checkout, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.TenantOwnedBy:
			if c.TenantId == nil || *c.TenantId != s.TenantID {
				return false
			}
		}
	}
	return true
}

// invoice repo

type memInvoiceRepo struct{ store *memStore }

func (r *memInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoice.CreatedAt = time.Now()
	r.store.invoices = append(r.store.invoices, invoice)
	return nil
}

func (r *memInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	for i, inv := range r.store.invoices {
		if inv.Id == invoice.Id {
			r.store.invoices[i] = invoice
		}
	}
	return nil
}

func (r *memInvoiceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memInvoiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.store.invoices {
		if matchInvoice(inv, specs) {
			out = append(out, inv)
		}
	}
	for _, spec := range specs {
		if ord, ok := spec.(specification.OrderBy); ok && ord.Field == "created_at" && ord.Desc {
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		}
	}
	return out, nil
}

func matchInvoice(inv *entity.Invoice, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if inv.Id != s.ID {
				return false
			}
		case specification.TenantOwnedBy:
			if inv.TenantId != s.TenantID {
				return false
			}
		case specification.StatusIs:
			if string(inv.Status) != s.Status {
				return false
			}
		}
	}
	return true
}

// subscription repo

type memSubscriptionRepo struct{ store *memStore }

func (r *memSubscriptionRepo) Create(ctx context.Context, subscription *entity.Subscription) error {
	subscription.CreatedAt = time.Now()
	r.store.subscriptions = append(r.store.subscriptions, subscription)
	return nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, subscription *entity.Subscription) error {
	for i, sub := range r.store.subscriptions {
		if sub.Id == subscription.Id {
			r.store.subscriptions[i] = subscription
		}
	}
	return nil
}

func (r *memSubscriptionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memSubscriptionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, sub := range r.store.subscriptions {
		if matchSubscription(sub, specs) {
			out = append(out, sub)
		}
	}
	for _, spec := range specs {
		if ord, ok := spec.(specification.OrderBy); ok && ord.Field == "created_at" && ord.Desc {
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		}
	}
	return out, nil
}

func matchSubscription(sub *entity.Subscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sub.Id != s.ID {
				return false
			}
		case specification.TenantOwnedBy:
			if sub.TenantId != s.TenantID {
				return false
			}
		case specification.StatusIs:
			if string(sub.Status) != s.Status {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "external_id":
				if sub.ExternalId != s.Value.(string) {
					return false
				}
			case "plan_id":
				if sub.PlanId != s.Value.(uuid.UUID) {
					return false
				}
			}
		}
	}
	return true
}

// webhook event repo

type memWebhookEventRepo struct{ store *memStore }

func (r *memWebhookEventRepo) Create(ctx context.Context, event *entity.WebhookEvent) error {
	for _, e := range r.store.webhookEvents {
		if e.Gateway == event.Gateway && e.ExternalId == event.ExternalId && e.EventType == event.EventType {
			return contract.ErrDuplicateEvent
		}
	}
	event.CreatedAt = time.Now()
	r.store.webhookEvents = append(r.store.webhookEvents, event)
	return nil
}

func (r *memWebhookEventRepo) MarkProcessed(ctx context.Context, event *entity.WebhookEvent) error {
	now := time.Now()
	for _, e := range r.store.webhookEvents {
		if e.Id == event.Id {
			e.ProcessedAt = &now
		}
	}
	return nil
}

func (r *memWebhookEventRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookEvent, error) {
	for _, e := range r.store.webhookEvents {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByID); ok && e.Id != s.ID {
				match = false
			}
		}
		if match {
			return e, nil
		}
	}
	return nil, nil
}

// affiliate repo

type memAffiliateRepo struct{ store *memStore }

func (r *memAffiliateRepo) CreateLink(ctx context.Context, link *entity.AffiliateLink) error {
	r.store.links = append(r.store.links, link)
	return nil
}

func (r *memAffiliateRepo) FindOneLink(ctx context.Context, specs ...specification.Specification) (*entity.AffiliateLink, error) {
	for _, link := range r.store.links {
		match := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.FilterBy:
				if s.Field == "code" && link.Code != s.Value.(string) {
					match = false
				}
			case specification.TenantOwnedBy:
				if link.TenantId != s.TenantID {
					match = false
				}
			}
		}
		if match {
			return link, nil
		}
	}
	return nil, nil
}

func (r *memAffiliateRepo) CreateSale(ctx context.Context, sale *entity.AffiliateSale) error {
	sale.CreatedAt = time.Now()
	r.store.sales = append(r.store.sales, sale)
	return nil
}

func (r *memAffiliateRepo) UpdateSale(ctx context.Context, sale *entity.AffiliateSale) error {
	for i, s := range r.store.sales {
		if s.Id == sale.Id {
			r.store.sales[i] = sale
		}
	}
	return nil
}

func (r *memAffiliateRepo) FindOneSale(ctx context.Context, specs ...specification.Specification) (*entity.AffiliateSale, error) {
	all, err := r.FindAllSales(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memAffiliateRepo) FindAllSales(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateSale, error) {
	var out []*entity.AffiliateSale
	for _, sale := range r.store.sales {
		if matchSale(sale, specs) {
			out = append(out, sale)
		}
	}
	for _, spec := range specs {
		if ord, ok := spec.(specification.OrderBy); ok && ord.Field == "created_at" && ord.Desc {
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		}
	}
	return out, nil
}

func matchSale(sale *entity.AffiliateSale, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.StatusIs:
			if string(sale.Status) != s.Status {
				return false
			}
		case specification.ApprovedBefore:
			if sale.ApprovedAt == nil || sale.ApprovedAt.After(s.Cutoff) {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "checkout_id":
				if sale.CheckoutId != s.Value.(uuid.UUID) {
					return false
				}
			case "link_id":
				if sale.LinkId != s.Value.(uuid.UUID) {
					return false
				}
			}
		}
	}
	return true
}

func (r *memAffiliateRepo) CreateWithdrawal(ctx context.Context, withdrawal *entity.AffiliateWithdrawal) error {
	withdrawal.CreatedAt = time.Now()
	r.store.withdrawals = append(r.store.withdrawals, withdrawal)
	return nil
}

func (r *memAffiliateRepo) FindAllWithdrawals(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateWithdrawal, error) {
	var out []*entity.AffiliateWithdrawal
	for _, w := range r.store.withdrawals {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.FilterBy); ok && s.Field == "link_id" && w.LinkId != s.Value.(uuid.UUID) {
				match = false
			}
		}
		if match {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memAffiliateRepo) SumSalesByStatus(ctx context.Context, linkId uuid.UUID, status entity.SaleStatus) (int64, error) {
	var total int64
	for _, sale := range r.store.sales {
		if sale.LinkId == linkId && sale.Status == status {
			total += sale.Amount
		}
	}
	return total, nil
}

func (r *memAffiliateRepo) SumWithdrawals(ctx context.Context, linkId uuid.UUID) (int64, error) {
	var total int64
	for _, w := range r.store.withdrawals {
		if w.LinkId == linkId && w.Status != entity.WithdrawalStatusRejected {
			total += w.Amount
		}
	}
	return total, nil
}

// gateway double

type fakeGateway struct {
	name entity.GatewayName

	verifyErr error
	parsed    *gateway.NormalizedEvent
	parseErr  error

	handle    *gateway.Handle
	handleErr error

	paymentCalls      int
	subscriptionCalls int
	lastSession       *gateway.CheckoutSession
}

func (g *fakeGateway) Name() entity.GatewayName { return g.name }

func (g *fakeGateway) CreatePayment(ctx context.Context, session *gateway.CheckoutSession) (*gateway.Handle, error) {
	g.paymentCalls++
	g.lastSession = session
	return g.handle, g.handleErr
}

func (g *fakeGateway) CreateSubscription(ctx context.Context, session *gateway.CheckoutSession) (*gateway.Handle, error) {
	g.subscriptionCalls++
	g.lastSession = session
	return g.handle, g.handleErr
}

func (g *fakeGateway) VerifyWebhookSignature(delivery *gateway.WebhookDelivery) error {
	return g.verifyErr
}

func (g *fakeGateway) ParseWebhookEvent(ctx context.Context, delivery *gateway.WebhookDelivery) (*gateway.NormalizedEvent, error) {
	return g.parsed, g.parseErr
}

// side-effect doubles

type capturedEvent struct {
	eventType string
	payload   map[string]interface{}
}

type fakePublisher struct {
	published []capturedEvent
}

func (p *fakePublisher) PublishBillingEvent(ctx context.Context, event events.Event) error {
	p.published = append(p.published, capturedEvent{
		eventType: event.EventType(),
		payload:   event.Payload(),
	})
	return nil
}

type fakeMailer struct {
	receipts  []string
	reminders []string
}

func (m *fakeMailer) SendReceipt(to, name, planName string, amount int64) error {
	m.receipts = append(m.receipts, to)
	return nil
}

func (m *fakeMailer) SendRenewalReminder(to, name string, daysLeft int) error {
	m.reminders = append(m.reminders, to)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubAffiliates struct {
	accrued   []uuid.UUID
	accrueErr error
}

func (a *stubAffiliates) AccrueSale(ctx context.Context, checkout *entity.Checkout, plan *entity.Plan) error {
	a.accrued = append(a.accrued, checkout.Id)
	return a.accrueErr
}

func (a *stubAffiliates) ApproveSaleForCheckout(ctx context.Context, checkoutId uuid.UUID) error {
	return nil
}

func (a *stubAffiliates) PromotePayableSales(ctx context.Context) (int, error) { return 0, nil }

func (a *stubAffiliates) GetOverview(ctx context.Context, tenantId uuid.UUID) (*dto.AffiliateOverviewResponse, error) {
	return nil, nil
}

func (a *stubAffiliates) RequestWithdrawal(ctx context.Context, tenantId uuid.UUID, amount int64) (*dto.WithdrawalResponse, error) {
	return nil, nil
}
