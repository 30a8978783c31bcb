package mapper

import (
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/model"

	"gorm.io/datatypes"
)

// BillingMapper covers the checkout/invoice/webhook-event trio.
type BillingMapper struct{}

func NewBillingMapper() *BillingMapper {
	return &BillingMapper{}
}

func (m *BillingMapper) CheckoutToEntity(c *model.Checkout) *entity.Checkout {
	if c == nil {
		return nil
	}
	return &entity.Checkout{
		Id:             c.Id,
		PlanId:         c.PlanId,
		TenantId:       c.TenantId,
		BuyerName:      c.BuyerName,
		BuyerEmail:     c.BuyerEmail,
		BuyerPhone:     c.BuyerPhone,
		DocumentType:   entity.DocumentType(c.DocumentType),
		DocumentNumber: c.DocumentNumber,
		Gateway:        entity.GatewayName(c.Gateway),
		PurchaseKind:   entity.PurchaseKind(c.PurchaseKind),
		AffiliateCode:  c.AffiliateCode,
		ExternalRef:    c.ExternalRef,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *BillingMapper) CheckoutToModel(c *entity.Checkout) *model.Checkout {
	if c == nil {
		return nil
	}
	return &model.Checkout{
		Id:             c.Id,
		PlanId:         c.PlanId,
		TenantId:       c.TenantId,
		BuyerName:      c.BuyerName,
		BuyerEmail:     c.BuyerEmail,
		BuyerPhone:     c.BuyerPhone,
		DocumentType:   string(c.DocumentType),
		DocumentNumber: c.DocumentNumber,
		Gateway:        string(c.Gateway),
		PurchaseKind:   string(c.PurchaseKind),
		AffiliateCode:  c.AffiliateCode,
		ExternalRef:    c.ExternalRef,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *BillingMapper) InvoiceToEntity(i *model.Invoice) *entity.Invoice {
	if i == nil {
		return nil
	}
	return &entity.Invoice{
		Id:             i.Id,
		TenantId:       i.TenantId,
		CheckoutId:     i.CheckoutId,
		SubscriptionId: i.SubscriptionId,
		Amount:         i.Amount,
		Status:         entity.InvoiceStatus(i.Status),
		PaymentMethod:  i.PaymentMethod,
		Gateway:        entity.GatewayName(i.Gateway),
		GatewayTxnId:   i.GatewayTxnId,
		ApprovedAt:     i.ApprovedAt,
		CreatedAt:      i.CreatedAt,
	}
}

func (m *BillingMapper) InvoiceToModel(i *entity.Invoice) *model.Invoice {
	if i == nil {
		return nil
	}
	return &model.Invoice{
		Id:             i.Id,
		TenantId:       i.TenantId,
		CheckoutId:     i.CheckoutId,
		SubscriptionId: i.SubscriptionId,
		Amount:         i.Amount,
		Status:         string(i.Status),
		PaymentMethod:  i.PaymentMethod,
		Gateway:        string(i.Gateway),
		GatewayTxnId:   i.GatewayTxnId,
		ApprovedAt:     i.ApprovedAt,
		CreatedAt:      i.CreatedAt,
	}
}

func (m *BillingMapper) WebhookEventToEntity(w *model.WebhookEvent) *entity.WebhookEvent {
	if w == nil {
		return nil
	}
	return &entity.WebhookEvent{
		Id:          w.Id,
		Gateway:     entity.GatewayName(w.Gateway),
		ExternalId:  w.ExternalId,
		EventType:   w.EventType,
		Payload:     []byte(w.Payload),
		ProcessedAt: w.ProcessedAt,
		CreatedAt:   w.CreatedAt,
	}
}

func (m *BillingMapper) WebhookEventToModel(w *entity.WebhookEvent) *model.WebhookEvent {
	if w == nil {
		return nil
	}
	return &model.WebhookEvent{
		Id:          w.Id,
		Gateway:     string(w.Gateway),
		ExternalId:  w.ExternalId,
		EventType:   w.EventType,
		Payload:     datatypes.JSON(w.Payload),
		ProcessedAt: w.ProcessedAt,
		CreatedAt:   w.CreatedAt,
	}
}
