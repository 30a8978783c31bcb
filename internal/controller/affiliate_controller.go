package controller

import (
	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/pkg/serverutils"
	"autowebinar-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAffiliateController interface {
	RegisterRoutes(router fiber.Router)
}

type AffiliateController struct {
	affiliates service.IAffiliateService
}

func NewAffiliateController(affiliates service.IAffiliateService) IAffiliateController {
	return &AffiliateController{affiliates: affiliates}
}

func (c *AffiliateController) RegisterRoutes(router fiber.Router) {
	group := router.Group("/affiliate", serverutils.JwtMiddleware)

	group.Get("/me", c.GetOverview)
	group.Post("/withdrawals", c.RequestWithdrawal)
}

func (c *AffiliateController) GetOverview(ctx *fiber.Ctx) error {
	tenantId, ok := tenantIdFromCtx(ctx)
	if !ok {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
	}

	overview, err := c.affiliates.GetOverview(ctx.UserContext(), tenantId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Affiliate overview", overview)
}

func (c *AffiliateController) RequestWithdrawal(ctx *fiber.Ctx) error {
	tenantId, ok := tenantIdFromCtx(ctx)
	if !ok {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
	}

	var req dto.WithdrawalRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}

	withdrawal, err := c.affiliates.RequestWithdrawal(ctx.UserContext(), tenantId, req.Amount)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Withdrawal requested", withdrawal)
}
