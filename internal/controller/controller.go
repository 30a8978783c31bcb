package controller

import (
	"errors"

	"autowebinar-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusFor maps domain errors to HTTP codes; anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrPlanNotFound),
		// inactive plans are gone from the buyable surface
		errors.Is(err, dto.ErrPlanInactive),
		errors.Is(err, dto.ErrCheckoutNotFound),
		errors.Is(err, dto.ErrSubscriptionNotFound),
		errors.Is(err, dto.ErrTenantNotFound),
		errors.Is(err, dto.ErrAffiliateNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, dto.ErrGatewayFailure):
		return fiber.StatusBadGateway
	case errors.Is(err, dto.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, dto.ErrEmailTaken),
		errors.Is(err, dto.ErrRenewalEmailMismatch),
		errors.Is(err, dto.ErrDocumentInvalid),
		errors.Is(err, dto.ErrInvalidTransition),
		errors.Is(err, dto.ErrInsufficientBalance),
		errors.Is(err, dto.ErrAffiliateCodeNotFound):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func tenantIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, bool) {
	raw, ok := ctx.Locals("tenant_id").(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
