package controller

import (
	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/pkg/serverutils"
	"autowebinar-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(router fiber.Router)
}

type SubscriptionController struct {
	subscriptions service.ISubscriptionService
}

func NewSubscriptionController(subscriptions service.ISubscriptionService) ISubscriptionController {
	return &SubscriptionController{subscriptions: subscriptions}
}

func (c *SubscriptionController) RegisterRoutes(router fiber.Router) {
	group := router.Group("/admin/subscription", serverutils.JwtMiddleware)

	group.Get("/", c.GetOverview)
	group.Post("/cancel", c.Cancel)
	group.Post("/renew", c.Renew)
}

func (c *SubscriptionController) GetOverview(ctx *fiber.Ctx) error {
	tenantId, ok := tenantIdFromCtx(ctx)
	if !ok {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
	}

	overview, err := c.subscriptions.GetOverview(ctx.UserContext(), tenantId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Subscription overview", overview)
}

func (c *SubscriptionController) Cancel(ctx *fiber.Ctx) error {
	tenantId, ok := tenantIdFromCtx(ctx)
	if !ok {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
	}

	subscription, err := c.subscriptions.Cancel(ctx.UserContext(), tenantId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Subscription cancelled", subscription)
}

func (c *SubscriptionController) Renew(ctx *fiber.Ctx) error {
	tenantId, ok := tenantIdFromCtx(ctx)
	if !ok {
		return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
	}

	var req dto.RenewSubscriptionRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}
	planId, err := uuid.Parse(req.PlanId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid plan id")
	}

	checkout, err := c.subscriptions.Renew(ctx.UserContext(), tenantId, planId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Renewal checkout started", checkout)
}
