package dto

import "github.com/google/uuid"

type StartCheckoutRequest struct {
	BuyerName      string `json:"buyerName" validate:"required,min=3"`
	BuyerEmail     string `json:"buyerEmail" validate:"required,email"`
	BuyerPhone     string `json:"buyerPhone" validate:"required,min=8"`
	DocumentType   string `json:"documentType" validate:"required,oneof=cpf cnpj"`
	DocumentNumber string `json:"documentNumber" validate:"required,cpfcnpj"`
	AffiliateCode  string `json:"affiliateCode"`
	Renewal        bool   `json:"renewal"`
}

type StartCheckoutResponse struct {
	CheckoutId   uuid.UUID `json:"checkoutId"`
	Gateway      string    `json:"gateway"`
	IsRecurring  bool      `json:"isRecurring"`
	PurchaseKind string    `json:"purchaseKind"`
	InitPoint    string    `json:"initPoint,omitempty"`
	ClientSecret string    `json:"clientSecret,omitempty"`
}

// ProcessPaymentRequest carries the tokenized card from the Mercado Pago
// brick. Raw card data never reaches the server.
type ProcessPaymentRequest struct {
	CheckoutId      string `json:"checkoutId" validate:"required,uuid4"`
	Token           string `json:"token" validate:"required"`
	PaymentMethodId string `json:"paymentMethodId" validate:"required"`
	IssuerId        string `json:"issuerId"`
	Installments    int    `json:"installments" validate:"omitempty,min=1,max=12"`
}

type AuthorizeSubscriptionRequest struct {
	CheckoutId      string `json:"checkoutId" validate:"required,uuid4"`
	CardToken       string `json:"cardToken" validate:"required"`
	PayerEmail      string `json:"payerEmail" validate:"omitempty,email"`
	PaymentMethodId string `json:"paymentMethodId"`
	IssuerId        string `json:"issuerId"`
}

type PaymentStatusResponse struct {
	Status string `json:"status"`
}
