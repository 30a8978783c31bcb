package controller

import (
	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/pkg/serverutils"
	"autowebinar-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICheckoutController interface {
	RegisterRoutes(router fiber.Router)
}

type CheckoutController struct {
	plans     service.IPlanService
	checkouts service.ICheckoutService
	log       logger.ILogger
}

func NewCheckoutController(plans service.IPlanService, checkouts service.ICheckoutService, log logger.ILogger) ICheckoutController {
	return &CheckoutController{
		plans:     plans,
		checkouts: checkouts,
		log:       log,
	}
}

func (c *CheckoutController) RegisterRoutes(router fiber.Router) {
	group := router.Group("/checkout")

	group.Get("/plans/active", c.ListActivePlans)
	group.Get("/plans/:id/summary", c.GetPlanSummary)
	group.Post("/start/:planId", serverutils.OptionalJwtMiddleware, c.StartCheckout)
	group.Post("/mercadopago/process", c.ProcessPayment)
	group.Post("/mercadopago/subscription", c.AuthorizeSubscription)
}

func (c *CheckoutController) ListActivePlans(ctx *fiber.Ctx) error {
	plans, err := c.plans.ListActivePlans(ctx.UserContext())
	if err != nil {
		c.log.Error("checkout", "Failed to list plans", map[string]interface{}{"error": err.Error()})
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Active plans", plans)
}

func (c *CheckoutController) GetPlanSummary(ctx *fiber.Ctx) error {
	planId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid plan id")
	}

	summary, err := c.plans.GetPlanSummary(ctx.UserContext(), planId)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Plan summary", summary)
}

func (c *CheckoutController) StartCheckout(ctx *fiber.Ctx) error {
	planId, err := uuid.Parse(ctx.Params("planId"))
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid plan id")
	}

	var req dto.StartCheckoutRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}

	var tenantId *uuid.UUID
	if id, ok := tenantIdFromCtx(ctx); ok {
		tenantId = &id
	}

	resp, err := c.checkouts.StartCheckout(ctx.UserContext(), planId, &req, tenantId)
	if err != nil {
		c.log.Error("checkout", "Start checkout failed", map[string]interface{}{
			"plan_id": planId.String(),
			"error":   err.Error(),
		})
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Checkout started", resp)
}

func (c *CheckoutController) ProcessPayment(ctx *fiber.Ctx) error {
	var req dto.ProcessPaymentRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}

	resp, err := c.checkouts.ProcessPayment(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Payment submitted", resp)
}

func (c *CheckoutController) AuthorizeSubscription(ctx *fiber.Ctx) error {
	var req dto.AuthorizeSubscriptionRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}

	resp, err := c.checkouts.AuthorizeSubscription(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Subscription submitted", resp)
}
