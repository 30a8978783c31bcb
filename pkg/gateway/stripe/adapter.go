// Package stripe adapts Stripe PaymentIntents and Subscriptions to the
// gateway contract.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"autowebinar-be/internal/entity"
	"autowebinar-be/pkg/billing"
	"autowebinar-be/pkg/gateway"

	stripesdk "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Narrow views over the SDK clients so tests can fake the remote side.
type paymentIntentAPI interface {
	New(params *stripesdk.PaymentIntentParams) (*stripesdk.PaymentIntent, error)
}

type customerAPI interface {
	New(params *stripesdk.CustomerParams) (*stripesdk.Customer, error)
}

type subscriptionAPI interface {
	New(params *stripesdk.SubscriptionParams) (*stripesdk.Subscription, error)
}

type Adapter struct {
	paymentIntents paymentIntentAPI
	customers      customerAPI
	subscriptions  subscriptionAPI

	webhookSecret string
}

func New(apiKey, webhookSecret string) *Adapter {
	api := client.New(apiKey, nil)
	return &Adapter{
		paymentIntents: api.PaymentIntents,
		customers:      api.Customers,
		subscriptions:  api.Subscriptions,
		webhookSecret:  webhookSecret,
	}
}

// NewWithClients wires explicit API clients, used by tests.
func NewWithClients(paymentIntents paymentIntentAPI, customers customerAPI, subscriptions subscriptionAPI, webhookSecret string) *Adapter {
	return &Adapter{
		paymentIntents: paymentIntents,
		customers:      customers,
		subscriptions:  subscriptions,
		webhookSecret:  webhookSecret,
	}
}

func (a *Adapter) Name() entity.GatewayName {
	return entity.GatewayStripe
}

// CreatePayment opens a PaymentIntent; the frontend confirms it with the
// returned client secret.
func (a *Adapter) CreatePayment(ctx context.Context, session *gateway.CheckoutSession) (*gateway.Handle, error) {
	checkout := session.Checkout
	plan := session.Plan

	params := &stripesdk.PaymentIntentParams{
		Amount:       stripesdk.Int64(plan.Price),
		Currency:     stripesdk.String(string(stripesdk.CurrencyBRL)),
		ReceiptEmail: stripesdk.String(checkout.BuyerEmail),
		AutomaticPaymentMethods: &stripesdk.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripesdk.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("checkout_id", checkout.Id.String())

	pi, err := a.paymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent create: %w", err)
	}
	return &gateway.Handle{
		ExternalRef:  pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// CreateSubscription creates a customer and an incomplete subscription on the
// plan's pre-provisioned Stripe price; the first invoice's payment intent
// secret goes back for frontend confirmation.
func (a *Adapter) CreateSubscription(ctx context.Context, session *gateway.CheckoutSession) (*gateway.Handle, error) {
	checkout := session.Checkout
	plan := session.Plan

	if plan.StripePriceId == "" {
		return nil, fmt.Errorf("plan %s has no stripe price configured", plan.Slug)
	}

	custParams := &stripesdk.CustomerParams{
		Email: stripesdk.String(checkout.BuyerEmail),
		Name:  stripesdk.String(checkout.BuyerName),
	}
	custParams.Context = ctx
	cust, err := a.customers.New(custParams)
	if err != nil {
		return nil, fmt.Errorf("stripe customer create: %w", err)
	}

	subParams := &stripesdk.SubscriptionParams{
		Customer: stripesdk.String(cust.ID),
		Items: []*stripesdk.SubscriptionItemsParams{
			{Price: stripesdk.String(plan.StripePriceId)},
		},
		PaymentBehavior: stripesdk.String("default_incomplete"),
		PaymentSettings: &stripesdk.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripesdk.String("on_subscription"),
		},
	}
	subParams.Context = ctx
	subParams.AddMetadata("checkout_id", checkout.Id.String())
	subParams.AddExpand("latest_invoice.payment_intent")

	sub, err := a.subscriptions.New(subParams)
	if err != nil {
		return nil, fmt.Errorf("stripe subscription create: %w", err)
	}

	clientSecret := ""
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		clientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return &gateway.Handle{
		ExternalRef:  sub.ID,
		ClientSecret: clientSecret,
		Status:       string(sub.Status),
	}, nil
}

func (a *Adapter) VerifyWebhookSignature(delivery *gateway.WebhookDelivery) error {
	err := webhook.ValidatePayload(delivery.Body, delivery.Headers["stripe-signature"], a.webhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", gateway.ErrInvalidSignature, err)
	}
	return nil
}

func (a *Adapter) ParseWebhookEvent(ctx context.Context, delivery *gateway.WebhookDelivery) (*gateway.NormalizedEvent, error) {
	event, err := webhook.ConstructEvent(delivery.Body, delivery.Headers["stripe-signature"], a.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidSignature, err)
	}
	return normalizeEvent(&event)
}

// normalizeEvent translates Stripe's event zoo to the six-event billing
// vocabulary. One-time charges surface as payment_intent events; recurring
// cycles as invoice events; lifecycle changes as customer.subscription events.
func normalizeEvent(event *stripesdk.Event) (*gateway.NormalizedEvent, error) {
	switch string(event.Type) {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.processing":
		var pi stripesdk.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("stripe payment intent decode: %w", err)
		}
		eventType := billing.EventPaymentPending
		switch string(event.Type) {
		case "payment_intent.succeeded":
			eventType = billing.EventPaymentApproved
		case "payment_intent.payment_failed":
			eventType = billing.EventPaymentRejected
		}
		return &gateway.NormalizedEvent{
			Gateway:    entity.GatewayStripe,
			ExternalId: pi.ID,
			EventType:  eventType,
			Amount:     pi.Amount,
			Reference:  pi.Metadata["checkout_id"],
		}, nil

	case "invoice.payment_succeeded", "invoice.payment_failed":
		var inv stripesdk.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("stripe invoice decode: %w", err)
		}
		eventType := billing.EventPaymentApproved
		amount := inv.AmountPaid
		if string(event.Type) == "invoice.payment_failed" {
			eventType = billing.EventPaymentRejected
			amount = inv.AmountDue
		}
		// Stripe fires the first-cycle invoice and the subscription update
		// near-simultaneously with no ordering guarantee; the checkout_id
		// mirrored into subscription_details resolves the invoice even when
		// our subscription row does not exist yet.
		subscriptionRef := ""
		if inv.Subscription != nil {
			subscriptionRef = inv.Subscription.ID
		}
		reference := subscriptionRef
		if inv.SubscriptionDetails != nil && inv.SubscriptionDetails.Metadata["checkout_id"] != "" {
			reference = inv.SubscriptionDetails.Metadata["checkout_id"]
		}
		return &gateway.NormalizedEvent{
			Gateway:         entity.GatewayStripe,
			ExternalId:      inv.ID,
			EventType:       eventType,
			Amount:          amount,
			Reference:       reference,
			SubscriptionRef: subscriptionRef,
		}, nil

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripesdk.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("stripe subscription decode: %w", err)
		}
		eventType, err := normalizeSubscriptionStatus(string(event.Type), string(sub.Status))
		if err != nil {
			return nil, err
		}
		return &gateway.NormalizedEvent{
			Gateway:    entity.GatewayStripe,
			ExternalId: sub.ID,
			EventType:  eventType,
			Reference:  sub.Metadata["checkout_id"],
		}, nil

	default:
		return nil, gateway.ErrEventIgnored
	}
}

func normalizeSubscriptionStatus(eventType, status string) (billing.EventType, error) {
	if eventType == "customer.subscription.deleted" {
		return billing.EventSubscriptionCancelled, nil
	}
	switch status {
	case "active", "trialing":
		return billing.EventSubscriptionAuthorized, nil
	case "past_due", "unpaid", "paused":
		return billing.EventSubscriptionPaused, nil
	case "canceled", "incomplete_expired":
		return billing.EventSubscriptionCancelled, nil
	default:
		// incomplete first payment resolves via invoice events
		return "", gateway.ErrEventIgnored
	}
}
