package service

import (
	"context"
	"testing"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type affiliateFixture struct {
	factory *memFactory
	svc     IAffiliateService
}

func newAffiliateFixture(guaranteeDays int) *affiliateFixture {
	factory := newMemFactory()
	return &affiliateFixture{
		factory: factory,
		svc:     NewAffiliateService(factory, guaranteeDays, noopLogger{}),
	}
}

func (f *affiliateFixture) addLink(tenantId uuid.UUID, code string, bps int) *entity.AffiliateLink {
	link := &entity.AffiliateLink{
		Id:            uuid.New(),
		TenantId:      tenantId,
		Code:          code,
		CommissionBps: bps,
	}
	f.factory.store.links = append(f.factory.store.links, link)
	return link
}

func TestAccrueSale_ComputesCommission(t *testing.T) {
	f := newAffiliateFixture(14)
	link := f.addLink(uuid.New(), "ana10", 1000) // 10%

	code := "ana10"
	checkout := &entity.Checkout{Id: uuid.New(), AffiliateCode: &code}
	plan := &entity.Plan{Price: 19700}

	err := f.svc.AccrueSale(context.Background(), checkout, plan)

	require.NoError(t, err)
	require.Len(t, f.factory.store.sales, 1)
	sale := f.factory.store.sales[0]
	assert.Equal(t, link.Id, sale.LinkId)
	assert.Equal(t, checkout.Id, sale.CheckoutId)
	assert.Equal(t, int64(1970), sale.Amount)
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
}

func TestAccrueSale_NoCodeIsNoop(t *testing.T) {
	f := newAffiliateFixture(14)

	err := f.svc.AccrueSale(context.Background(), &entity.Checkout{Id: uuid.New()}, &entity.Plan{Price: 100})

	require.NoError(t, err)
	assert.Empty(t, f.factory.store.sales)
}

func TestAccrueSale_UnknownCode(t *testing.T) {
	f := newAffiliateFixture(14)

	code := "ghost"
	err := f.svc.AccrueSale(context.Background(), &entity.Checkout{Id: uuid.New(), AffiliateCode: &code}, &entity.Plan{Price: 100})

	assert.ErrorIs(t, err, dto.ErrAffiliateCodeNotFound)
}

func TestApproveSaleForCheckout(t *testing.T) {
	f := newAffiliateFixture(14)
	link := f.addLink(uuid.New(), "ana10", 1000)

	checkoutId := uuid.New()
	f.factory.store.sales = append(f.factory.store.sales, &entity.AffiliateSale{
		Id:         uuid.New(),
		LinkId:     link.Id,
		CheckoutId: checkoutId,
		Amount:     500,
		Status:     entity.SaleStatusPending,
	})

	require.NoError(t, f.svc.ApproveSaleForCheckout(context.Background(), checkoutId))

	sale := f.factory.store.sales[0]
	assert.Equal(t, entity.SaleStatusApproved, sale.Status)
	require.NotNil(t, sale.ApprovedAt)
	firstApproval := *sale.ApprovedAt

	// replayed approval keeps the original timestamp
	require.NoError(t, f.svc.ApproveSaleForCheckout(context.Background(), checkoutId))
	assert.Equal(t, firstApproval, *f.factory.store.sales[0].ApprovedAt)

	// approvals for checkouts without referrals are a no-op
	require.NoError(t, f.svc.ApproveSaleForCheckout(context.Background(), uuid.New()))
}

func TestPromotePayableSales_HonorsGuaranteeWindow(t *testing.T) {
	f := newAffiliateFixture(14)
	link := f.addLink(uuid.New(), "ana10", 1000)

	oldApproval := time.Now().AddDate(0, 0, -20)
	freshApproval := time.Now().AddDate(0, 0, -2)
	f.factory.store.sales = append(f.factory.store.sales,
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 1000, Status: entity.SaleStatusApproved, ApprovedAt: &oldApproval},
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 2000, Status: entity.SaleStatusApproved, ApprovedAt: &freshApproval},
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 3000, Status: entity.SaleStatusPending},
	)

	promoted, err := f.svc.PromotePayableSales(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, promoted)
	assert.Equal(t, entity.SaleStatusPayable, f.factory.store.sales[0].Status)
	assert.NotNil(t, f.factory.store.sales[0].PayableAt)
	assert.Equal(t, entity.SaleStatusApproved, f.factory.store.sales[1].Status)
	assert.Equal(t, entity.SaleStatusPending, f.factory.store.sales[2].Status)
}

func TestGetOverview_Balances(t *testing.T) {
	f := newAffiliateFixture(14)
	tenantId := uuid.New()
	link := f.addLink(tenantId, "ana10", 1000)

	f.factory.store.sales = append(f.factory.store.sales,
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 1000, Status: entity.SaleStatusPending},
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 2000, Status: entity.SaleStatusApproved},
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 5000, Status: entity.SaleStatusPayable},
	)
	f.factory.store.withdrawals = append(f.factory.store.withdrawals,
		&entity.AffiliateWithdrawal{Id: uuid.New(), LinkId: link.Id, Amount: 1500, Status: entity.WithdrawalStatusPaid},
		// rejected withdrawals release their amount back to the balance
		&entity.AffiliateWithdrawal{Id: uuid.New(), LinkId: link.Id, Amount: 9999, Status: entity.WithdrawalStatusRejected},
	)

	overview, err := f.svc.GetOverview(context.Background(), tenantId)

	require.NoError(t, err)
	assert.Equal(t, "ana10", overview.Code)
	assert.Equal(t, int64(1000), overview.PendingBalance)
	assert.Equal(t, int64(2000), overview.ApprovedBalance)
	assert.Equal(t, int64(3500), overview.PayableBalance)
	assert.Equal(t, int64(1500), overview.WithdrawnTotal)
	assert.Len(t, overview.Sales, 3)
}

func TestGetOverview_NotAnAffiliate(t *testing.T) {
	f := newAffiliateFixture(14)

	_, err := f.svc.GetOverview(context.Background(), uuid.New())

	assert.ErrorIs(t, err, dto.ErrAffiliateNotFound)
}

func TestRequestWithdrawal(t *testing.T) {
	f := newAffiliateFixture(14)
	tenantId := uuid.New()
	link := f.addLink(tenantId, "ana10", 1000)

	f.factory.store.sales = append(f.factory.store.sales,
		&entity.AffiliateSale{Id: uuid.New(), LinkId: link.Id, Amount: 5000, Status: entity.SaleStatusPayable},
	)

	resp, err := f.svc.RequestWithdrawal(context.Background(), tenantId, 3000)

	require.NoError(t, err)
	assert.Equal(t, int64(3000), resp.Amount)
	assert.Equal(t, string(entity.WithdrawalStatusRequested), resp.Status)

	// the open request reserves its amount
	_, err = f.svc.RequestWithdrawal(context.Background(), tenantId, 3000)
	assert.ErrorIs(t, err, dto.ErrInsufficientBalance)

	_, err = f.svc.RequestWithdrawal(context.Background(), tenantId, 2000)
	assert.NoError(t, err)
}
