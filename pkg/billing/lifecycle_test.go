package billing

import (
	"testing"
	"time"

	"autowebinar-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectOfPaymentApproved(t *testing.T) {
	effect, err := EffectOf(EventPaymentApproved)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusApproved, effect.InvoiceStatus)
	require.NotNil(t, effect.SubscriptionStatus)
	assert.Equal(t, entity.SubscriptionStatusActive, *effect.SubscriptionStatus)
	assert.True(t, effect.GrantAccess)
	assert.True(t, effect.SetNextBilling)
}

func TestEffectOfPendingNeverGrantsAccess(t *testing.T) {
	effect, err := EffectOf(EventPaymentPending)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPending, effect.InvoiceStatus)
	assert.Nil(t, effect.SubscriptionStatus)
	assert.False(t, effect.GrantAccess)
	assert.False(t, effect.SetNextBilling)
}

func TestEffectOfRejectedOnlyRecordsInvoice(t *testing.T) {
	effect, err := EffectOf(EventPaymentRejected)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusRejected, effect.InvoiceStatus)
	assert.Nil(t, effect.SubscriptionStatus)
	assert.False(t, effect.GrantAccess)
}

func TestEffectOfSubscriptionAuthorized(t *testing.T) {
	effect, err := EffectOf(EventSubscriptionAuthorized)
	require.NoError(t, err)

	require.NotNil(t, effect.SubscriptionStatus)
	assert.Equal(t, entity.SubscriptionStatusActive, *effect.SubscriptionStatus)
	assert.Empty(t, effect.InvoiceStatus)
	// an authorization opens a cycle: plan window applied, next billing set
	assert.True(t, effect.GrantAccess)
	assert.True(t, effect.SetNextBilling)
}

func TestEffectOfSubscriptionPausedAndCancelled(t *testing.T) {
	cases := []struct {
		event  EventType
		status entity.SubscriptionStatus
	}{
		{EventSubscriptionPaused, entity.SubscriptionStatusPaused},
		{EventSubscriptionCancelled, entity.SubscriptionStatusCancelled},
	}
	for _, c := range cases {
		effect, err := EffectOf(c.event)
		require.NoError(t, err)
		require.NotNil(t, effect.SubscriptionStatus)
		assert.Equal(t, c.status, *effect.SubscriptionStatus)
		assert.Empty(t, effect.InvoiceStatus)
		assert.False(t, effect.GrantAccess, "pausing or cancelling must not touch access")
		assert.False(t, effect.SetNextBilling)
	}
}

func TestEffectOfUnknownEvent(t *testing.T) {
	_, err := EffectOf(EventType("payment.refunded"))
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	pending := entity.SubscriptionStatusPending
	active := entity.SubscriptionStatusActive
	paused := entity.SubscriptionStatusPaused
	cancelled := entity.SubscriptionStatusCancelled

	assert.True(t, CanTransition(pending, active))
	assert.True(t, CanTransition(pending, cancelled))
	assert.True(t, CanTransition(active, paused))
	assert.True(t, CanTransition(active, cancelled))
	assert.True(t, CanTransition(paused, active))
	assert.True(t, CanTransition(paused, cancelled))

	// cancelled is terminal
	assert.False(t, CanTransition(cancelled, active))
	assert.False(t, CanTransition(cancelled, pending))
	assert.False(t, CanTransition(cancelled, paused))

	// no skipping pending -> paused
	assert.False(t, CanTransition(pending, paused))

	// retried deliveries land as self-transitions
	assert.True(t, CanTransition(active, active))
	assert.True(t, CanTransition(cancelled, cancelled))
}

func TestAccessWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	plan := &entity.Plan{AccessDays: 30}

	assert.Equal(t, time.Date(2026, 4, 9, 12, 0, 0, 0, time.UTC), AccessWindow(start, plan))
}

func TestNextBillingDate(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	monthly := &entity.Plan{RecurrenceInterval: 1, RecurrenceUnit: entity.RecurrenceUnitMonth}
	// Go's AddDate normalizes Jan 31 + 1 month to Mar 2/3 depending on year.
	assert.Equal(t, start.AddDate(0, 1, 0), NextBillingDate(start, monthly))

	yearly := &entity.Plan{RecurrenceInterval: 1, RecurrenceUnit: entity.RecurrenceUnitYear}
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), NextBillingDate(start, yearly))

	// zero interval defaults to one cycle
	unset := &entity.Plan{RecurrenceUnit: entity.RecurrenceUnitMonth}
	assert.Equal(t, start.AddDate(0, 1, 0), NextBillingDate(start, unset))
}

func TestClassifyPurchase(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -10)

	basic := &entity.Plan{Id: uuid.New(), Price: 9900}
	pro := &entity.Plan{Id: uuid.New(), Price: 19900}

	withAccess := &entity.Tenant{AccessExpiresAt: &future}
	lapsed := &entity.Tenant{AccessExpiresAt: &past}

	// first-time buyer
	assert.Equal(t, entity.PurchaseKindNew, ClassifyPurchase(now, nil, nil, basic))

	// same plan again is a renewal, regardless of access state
	assert.Equal(t, entity.PurchaseKindRenewal, ClassifyPurchase(now, withAccess, basic, basic))
	assert.Equal(t, entity.PurchaseKindRenewal, ClassifyPurchase(now, lapsed, basic, basic))

	// pricier plan while access is live
	assert.Equal(t, entity.PurchaseKindUpgrade, ClassifyPurchase(now, withAccess, basic, pro))

	// pricier plan after lapse starts over
	assert.Equal(t, entity.PurchaseKindNew, ClassifyPurchase(now, lapsed, basic, pro))

	// downgrade is a new purchase
	assert.Equal(t, entity.PurchaseKindNew, ClassifyPurchase(now, withAccess, pro, basic))
}
