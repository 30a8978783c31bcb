package mercadopago

import (
	"context"
	"testing"

	"autowebinar-be/internal/entity"
	"autowebinar-be/pkg/billing"
	"autowebinar-be/pkg/gateway"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayments struct {
	created  *payment.Request
	response *payment.Response
}

func (f *fakePayments) Create(ctx context.Context, request payment.Request) (*payment.Response, error) {
	f.created = &request
	return f.response, nil
}

func (f *fakePayments) Get(ctx context.Context, id int) (*payment.Response, error) {
	return f.response, nil
}

type fakePreapprovals struct {
	created  *preapproval.Request
	response *preapproval.Response
}

func (f *fakePreapprovals) Create(ctx context.Context, request preapproval.Request) (*preapproval.Response, error) {
	f.created = &request
	return f.response, nil
}

func (f *fakePreapprovals) Get(ctx context.Context, id string) (*preapproval.Response, error) {
	return f.response, nil
}

type fakePreferences struct {
	created  *preference.Request
	response *preference.Response
}

func (f *fakePreferences) Create(ctx context.Context, request preference.Request) (*preference.Response, error) {
	f.created = &request
	return f.response, nil
}

func testSession() *gateway.CheckoutSession {
	return &gateway.CheckoutSession{
		Checkout: &entity.Checkout{
			Id:             uuid.New(),
			BuyerName:      "Maria Silva",
			BuyerEmail:     "maria@example.com",
			DocumentType:   entity.DocumentTypeCPF,
			DocumentNumber: "52998224725",
		},
		Plan: &entity.Plan{
			Id:                 uuid.New(),
			Name:               "Pro Mensal",
			Slug:               "pro-monthly",
			Price:              19900,
			BillingType:        entity.BillingTypeRecurring,
			RecurrenceInterval: 1,
			RecurrenceUnit:     entity.RecurrenceUnitMonth,
		},
	}
}

func TestCreatePaymentWithoutTokenCreatesPreference(t *testing.T) {
	prefs := &fakePreferences{response: &preference.Response{ID: "pref-1", InitPoint: "https://mp/init"}}
	adapter := NewWithClients(&fakePayments{}, &fakePreapprovals{}, prefs, "secret")

	session := testSession()
	handle, err := adapter.CreatePayment(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, "pref-1", handle.ExternalRef)
	assert.Equal(t, "https://mp/init", handle.InitPoint)
	require.NotNil(t, prefs.created)
	require.Len(t, prefs.created.Items, 1)
	assert.Equal(t, 199.0, prefs.created.Items[0].UnitPrice)
	assert.Equal(t, session.Checkout.Id.String(), prefs.created.ExternalReference)
}

func TestCreatePaymentWithTokenChargesDirectly(t *testing.T) {
	payments := &fakePayments{response: &payment.Response{ID: 987, Status: "approved", TransactionAmount: 199.0}}
	adapter := NewWithClients(payments, &fakePreapprovals{}, &fakePreferences{}, "secret")

	session := testSession()
	session.CardToken = "tok_visa"
	session.PaymentMethodId = "visa"

	handle, err := adapter.CreatePayment(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, "987", handle.ExternalRef)
	assert.Equal(t, "approved", handle.Status)
	require.NotNil(t, payments.created)
	assert.Equal(t, "tok_visa", payments.created.Token)
	assert.Equal(t, 199.0, payments.created.TransactionAmount)
	assert.Equal(t, "CPF", payments.created.Payer.Identification.Type)
}

func TestCreateSubscriptionBuildsPreapproval(t *testing.T) {
	pas := &fakePreapprovals{response: &preapproval.Response{ID: "pa-1", Status: "authorized"}}
	adapter := NewWithClients(&fakePayments{}, pas, &fakePreferences{}, "secret")

	session := testSession()
	session.CardToken = "tok_visa"

	handle, err := adapter.CreateSubscription(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, "pa-1", handle.ExternalRef)
	require.NotNil(t, pas.created)
	assert.Equal(t, "tok_visa", pas.created.CardTokenID)
	assert.Equal(t, "maria@example.com", pas.created.PayerEmail)
	require.NotNil(t, pas.created.AutoRecurring)
	assert.Equal(t, 1, pas.created.AutoRecurring.Frequency)
	assert.Equal(t, "months", pas.created.AutoRecurring.FrequencyType)
	assert.Equal(t, 199.0, pas.created.AutoRecurring.TransactionAmount)
}

func TestParseWebhookEventPayment(t *testing.T) {
	payments := &fakePayments{response: &payment.Response{
		ID:                123,
		Status:            "approved",
		TransactionAmount: 199.0,
		ExternalReference: "checkout-ref",
	}}
	adapter := NewWithClients(payments, &fakePreapprovals{}, &fakePreferences{}, "secret")

	event, err := adapter.ParseWebhookEvent(context.Background(), &gateway.WebhookDelivery{
		Body: []byte(`{"type":"payment","action":"payment.updated","data":{"id":"123"}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.GatewayMercadoPago, event.Gateway)
	assert.Equal(t, "123", event.ExternalId)
	assert.Equal(t, billing.EventPaymentApproved, event.EventType)
	assert.Equal(t, int64(19900), event.Amount)
	assert.Equal(t, "checkout-ref", event.Reference)
}

func TestParseWebhookEventPreapproval(t *testing.T) {
	pas := &fakePreapprovals{response: &preapproval.Response{
		ID:                "pa-9",
		Status:            "paused",
		ExternalReference: "checkout-ref",
	}}
	adapter := NewWithClients(&fakePayments{}, pas, &fakePreferences{}, "secret")

	event, err := adapter.ParseWebhookEvent(context.Background(), &gateway.WebhookDelivery{
		Body: []byte(`{"type":"subscription_preapproval","data":{"id":"pa-9"}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "pa-9", event.ExternalId)
	assert.Equal(t, billing.EventSubscriptionPaused, event.EventType)
}

func TestParseWebhookEventIgnoresUnknownTypes(t *testing.T) {
	adapter := NewWithClients(&fakePayments{}, &fakePreapprovals{}, &fakePreferences{}, "secret")

	_, err := adapter.ParseWebhookEvent(context.Background(), &gateway.WebhookDelivery{
		Body: []byte(`{"type":"plan","data":{"id":"1"}}`),
	})
	assert.ErrorIs(t, err, gateway.ErrEventIgnored)
}

func TestNormalizePaymentStatus(t *testing.T) {
	cases := map[string]billing.EventType{
		"approved":   billing.EventPaymentApproved,
		"rejected":   billing.EventPaymentRejected,
		"cancelled":  billing.EventPaymentRejected,
		"pending":    billing.EventPaymentPending,
		"in_process": billing.EventPaymentPending,
	}
	for status, want := range cases {
		got, err := normalizePaymentStatus(status)
		require.NoError(t, err)
		assert.Equal(t, want, got, status)
	}

	_, err := normalizePaymentStatus("refunded")
	assert.ErrorIs(t, err, gateway.ErrEventIgnored)
}

func TestRecurrenceMonths(t *testing.T) {
	assert.Equal(t, 1, recurrenceMonths(&entity.Plan{RecurrenceInterval: 1, RecurrenceUnit: entity.RecurrenceUnitMonth}))
	assert.Equal(t, 12, recurrenceMonths(&entity.Plan{RecurrenceInterval: 1, RecurrenceUnit: entity.RecurrenceUnitYear}))
	assert.Equal(t, 1, recurrenceMonths(&entity.Plan{RecurrenceUnit: entity.RecurrenceUnitMonth}))
}
