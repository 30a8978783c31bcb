package controller

import (
	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/pkg/serverutils"
	"autowebinar-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(router fiber.Router)
}

type AuthController struct {
	auth service.IAuthService
}

func NewAuthController(auth service.IAuthService) IAuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) RegisterRoutes(router fiber.Router) {
	group := router.Group("/auth")

	group.Post("/register", c.Register)
	group.Post("/login", c.Login)
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}

	resp, err := c.auth.Register(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Account created", resp)
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return nil
	}

	resp, err := c.auth.Login(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, statusFor(err), err.Error())
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Logged in", resp)
}
