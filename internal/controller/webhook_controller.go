package controller

import (
	"strings"

	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/internal/service"
	"autowebinar-be/pkg/gateway"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(app *fiber.App)
}

type WebhookController struct {
	webhooks service.IWebhookService
	log      logger.ILogger
}

func NewWebhookController(webhooks service.IWebhookService, log logger.ILogger) IWebhookController {
	return &WebhookController{
		webhooks: webhooks,
		log:      log,
	}
}

// RegisterRoutes mounts the receivers on the app root: gateways are
// configured with /webhook/..., not /api/....
func (c *WebhookController) RegisterRoutes(app *fiber.App) {
	app.Post("/webhook/mercadopago", c.handlerFor(entity.GatewayMercadoPago))
	app.Post("/webhook/stripe", c.handlerFor(entity.GatewayStripe))
}

// handlerFor acknowledges every delivery with 200 no matter what happened
// inside; gateways retry on non-2xx and we never want a retry storm over an
// internal failure we already logged.
func (c *WebhookController) handlerFor(name entity.GatewayName) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		delivery := deliveryFromCtx(ctx)

		if err := c.webhooks.HandleDelivery(ctx.UserContext(), name, delivery); err != nil {
			c.log.Error("webhook", "Delivery processing failed", map[string]interface{}{
				"gateway": string(name),
				"error":   err.Error(),
			})
		}
		return ctx.SendStatus(fiber.StatusOK)
	}
}

func deliveryFromCtx(ctx *fiber.Ctx) *gateway.WebhookDelivery {
	headers := make(map[string]string)
	ctx.Request().Header.VisitAll(func(key, value []byte) {
		headers[strings.ToLower(string(key))] = string(value)
	})

	body := make([]byte, len(ctx.Body()))
	copy(body, ctx.Body())

	return &gateway.WebhookDelivery{
		Headers: headers,
		Query:   ctx.Queries(),
		Body:    body,
	}
}
