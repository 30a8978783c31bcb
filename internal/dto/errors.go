package dto

import "errors"

// Domain errors controllers branch on when picking a status code.
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanInactive     = errors.New("plan is not available for purchase")
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrGatewayFailure   = errors.New("payment gateway unavailable, try again")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTenantNotFound     = errors.New("tenant not found")

	ErrSubscriptionNotFound = errors.New("no subscription found")
	ErrInvalidTransition    = errors.New("subscription cannot change to that state")

	ErrRenewalEmailMismatch = errors.New("renewal must use the account email")
	ErrDocumentInvalid      = errors.New("document number failed validation")

	ErrAffiliateNotFound     = errors.New("affiliate link not found")
	ErrInsufficientBalance   = errors.New("payable balance is insufficient")
	ErrAffiliateCodeNotFound = errors.New("affiliate code not found")
)
