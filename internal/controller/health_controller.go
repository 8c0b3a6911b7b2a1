package controller

import (
	"restaurant-chatbot-be/internal/pkg/serverutils"
	"restaurant-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(api fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	webhookService service.IWebhookService
	feedClients    func() int
}

// NewHealthController reports feed connections through feedClients, which may be nil.
func NewHealthController(webhookService service.IWebhookService, feedClients func() int) IHealthController {
	return &healthController{
		webhookService: webhookService,
		feedClients:    feedClients,
	}
}

func (c *healthController) RegisterRoutes(api fiber.Router) {
	api.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	res := c.webhookService.Health(ctx.UserContext())
	if c.feedClients != nil {
		res.FeedClients = c.feedClients()
	}

	status := fiber.StatusOK
	if res.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	body := serverutils.SuccessResponse("Health", res)
	body.Code = status
	return ctx.Status(status).JSON(body)
}
