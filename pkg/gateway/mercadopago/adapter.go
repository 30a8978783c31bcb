// Package mercadopago adapts Mercado Pago's payments, preferences and
// preapproval APIs to the gateway contract.
package mercadopago

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"autowebinar-be/internal/entity"
	"autowebinar-be/pkg/billing"
	"autowebinar-be/pkg/gateway"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Narrow views over the SDK clients so tests can fake the remote side.
type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type preapprovalAPI interface {
	Create(ctx context.Context, request preapproval.Request) (*preapproval.Response, error)
	Get(ctx context.Context, id string) (*preapproval.Response, error)
}

type preferenceAPI interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type Adapter struct {
	payments     paymentAPI
	preapprovals preapprovalAPI
	preferences  preferenceAPI

	webhookSecret   string
	notificationURL string
	backURL         string
}

func New(accessToken, webhookSecret, notificationURL, backURL string) (*Adapter, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Adapter{
		payments:        payment.NewClient(cfg),
		preapprovals:    preapproval.NewClient(cfg),
		preferences:     preference.NewClient(cfg),
		webhookSecret:   webhookSecret,
		notificationURL: notificationURL,
		backURL:         backURL,
	}, nil
}

// NewWithClients wires explicit API clients, used by tests.
func NewWithClients(payments paymentAPI, preapprovals preapprovalAPI, preferences preferenceAPI, webhookSecret string) *Adapter {
	return &Adapter{
		payments:      payments,
		preapprovals:  preapprovals,
		preferences:   preferences,
		webhookSecret: webhookSecret,
	}
}

func (a *Adapter) Name() entity.GatewayName {
	return entity.GatewayMercadoPago
}

// CreatePayment creates either a hosted-checkout preference (no card token
// yet, buyer pays on Mercado Pago's page) or a direct charge when the
// frontend already tokenized the card.
func (a *Adapter) CreatePayment(ctx context.Context, session *gateway.CheckoutSession) (*gateway.Handle, error) {
	checkout := session.Checkout
	plan := session.Plan

	if session.CardToken == "" {
		resp, err := a.preferences.Create(ctx, preference.Request{
			Items: []preference.ItemRequest{
				{
					ID:          plan.Id.String(),
					Title:       plan.Name,
					Description: plan.Description,
					Quantity:    1,
					UnitPrice:   toMajorUnits(plan.Price),
					CurrencyID:  "BRL",
				},
			},
			Payer: &preference.PayerRequest{
				Name:  checkout.BuyerName,
				Email: checkout.BuyerEmail,
			},
			ExternalReference: checkout.Id.String(),
			NotificationURL:   a.notificationURL,
		})
		if err != nil {
			return nil, fmt.Errorf("mercadopago preference create: %w", err)
		}
		return &gateway.Handle{ExternalRef: resp.ID, InitPoint: resp.InitPoint}, nil
	}

	resp, err := a.payments.Create(ctx, payment.Request{
		TransactionAmount: toMajorUnits(plan.Price),
		Token:             session.CardToken,
		Description:       plan.Name,
		Installments:      max(session.Installments, 1),
		PaymentMethodID:   session.PaymentMethodId,
		ExternalReference: checkout.Id.String(),
		NotificationURL:   a.notificationURL,
		Payer: &payment.PayerRequest{
			Email: checkout.BuyerEmail,
			Identification: &payment.IdentificationRequest{
				Type:   strings.ToUpper(string(checkout.DocumentType)),
				Number: checkout.DocumentNumber,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago payment create: %w", err)
	}
	return &gateway.Handle{
		ExternalRef: strconv.Itoa(resp.ID),
		Status:      resp.Status,
	}, nil
}

// CreateSubscription opens a preapproval charging the tokenized card on the
// plan's recurrence. Only the card token crosses the server; raw card data
// never does.
func (a *Adapter) CreateSubscription(ctx context.Context, session *gateway.CheckoutSession) (*gateway.Handle, error) {
	checkout := session.Checkout
	plan := session.Plan

	payerEmail := session.PayerEmail
	if payerEmail == "" {
		payerEmail = checkout.BuyerEmail
	}

	// Without a card token MP only accepts a pending preapproval; the buyer
	// authorizes it on the returned init point.
	status := "authorized"
	if session.CardToken == "" {
		status = "pending"
	}

	frequency := recurrenceMonths(plan)
	resp, err := a.preapprovals.Create(ctx, preapproval.Request{
		Reason:            plan.Name,
		ExternalReference: checkout.Id.String(),
		PayerEmail:        payerEmail,
		CardTokenID:       session.CardToken,
		BackURL:           a.backURL,
		AutoRecurring: &preapproval.AutoRecurringRequest{
			Frequency:         frequency,
			FrequencyType:     "months",
			TransactionAmount: toMajorUnits(plan.Price),
			CurrencyID:        "BRL",
		},
		Status: status,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago preapproval create: %w", err)
	}
	return &gateway.Handle{
		ExternalRef: resp.ID,
		InitPoint:   resp.InitPoint,
		Status:      resp.Status,
	}, nil
}

func (a *Adapter) VerifyWebhookSignature(delivery *gateway.WebhookDelivery) error {
	dataID := delivery.Query["data.id"]
	if dataID == "" {
		dataID = notificationDataID(delivery.Body)
	}
	return VerifySignature(
		a.webhookSecret,
		delivery.Headers["x-signature"],
		delivery.Headers["x-request-id"],
		dataID,
	)
}

// notification is the envelope Mercado Pago posts; the actual state lives
// server-side and is fetched by id.
type notification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

func notificationDataID(body []byte) string {
	var n notification
	if err := json.Unmarshal(body, &n); err != nil {
		return ""
	}
	return n.Data.ID
}

// ParseWebhookEvent resolves the notification to a normalized event by
// fetching the referenced resource. Notification bodies carry no state, so
// replays and out-of-order deliveries all converge on the current gateway
// truth.
func (a *Adapter) ParseWebhookEvent(ctx context.Context, delivery *gateway.WebhookDelivery) (*gateway.NormalizedEvent, error) {
	var n notification
	if err := json.Unmarshal(delivery.Body, &n); err != nil {
		return nil, fmt.Errorf("mercadopago notification decode: %w", err)
	}
	if n.Data.ID == "" {
		n.Data.ID = delivery.Query["data.id"]
	}

	switch n.Type {
	case "payment":
		id, err := strconv.Atoi(n.Data.ID)
		if err != nil {
			return nil, fmt.Errorf("mercadopago payment id %q: %w", n.Data.ID, err)
		}
		p, err := a.payments.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("mercadopago payment get: %w", err)
		}
		eventType, err := normalizePaymentStatus(p.Status)
		if err != nil {
			return nil, err
		}
		return &gateway.NormalizedEvent{
			Gateway:    entity.GatewayMercadoPago,
			ExternalId: n.Data.ID,
			EventType:  eventType,
			Amount:     toMinorUnits(p.TransactionAmount),
			Reference:  p.ExternalReference,
		}, nil

	case "subscription_preapproval":
		pa, err := a.preapprovals.Get(ctx, n.Data.ID)
		if err != nil {
			return nil, fmt.Errorf("mercadopago preapproval get: %w", err)
		}
		eventType, err := normalizePreapprovalStatus(pa.Status)
		if err != nil {
			return nil, err
		}
		return &gateway.NormalizedEvent{
			Gateway:    entity.GatewayMercadoPago,
			ExternalId: pa.ID,
			EventType:  eventType,
			Amount:     toMinorUnits(pa.AutoRecurring.TransactionAmount),
			Reference:  pa.ExternalReference,
		}, nil

	default:
		return nil, gateway.ErrEventIgnored
	}
}

func normalizePaymentStatus(status string) (billing.EventType, error) {
	switch status {
	case "approved":
		return billing.EventPaymentApproved, nil
	case "rejected", "cancelled":
		return billing.EventPaymentRejected, nil
	case "pending", "in_process", "authorized":
		return billing.EventPaymentPending, nil
	default:
		// refunds/chargebacks are handled out of band
		return "", gateway.ErrEventIgnored
	}
}

func normalizePreapprovalStatus(status string) (billing.EventType, error) {
	switch status {
	case "authorized":
		return billing.EventSubscriptionAuthorized, nil
	case "paused":
		return billing.EventSubscriptionPaused, nil
	case "cancelled":
		return billing.EventSubscriptionCancelled, nil
	default:
		return "", gateway.ErrEventIgnored
	}
}

// recurrenceMonths collapses the plan recurrence to Mercado Pago's
// months-only frequency model.
func recurrenceMonths(plan *entity.Plan) int {
	interval := plan.RecurrenceInterval
	if interval <= 0 {
		interval = 1
	}
	if plan.RecurrenceUnit == entity.RecurrenceUnitYear {
		return interval * 12
	}
	return interval
}

func toMajorUnits(minor int64) float64 {
	return float64(minor) / 100
}

func toMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}
