package controller

import (
	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/internal/pkg/serverutils"
	"restaurant-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(root fiber.Router, api fiber.Router)
	Handle(ctx *fiber.Ctx) error
}

type webhookController struct {
	webhookService service.IWebhookService
}

func NewWebhookController(webhookService service.IWebhookService) IWebhookController {
	return &webhookController{
		webhookService: webhookService,
	}
}

// RegisterRoutes mounts the fulfillment endpoint at the path the agent is
// configured with and at the versioned API path.
func (c *webhookController) RegisterRoutes(root fiber.Router, api fiber.Router) {
	root.Post("/webhook", c.Handle)

	h := api.Group("/webhook")
	h.Post("/v1", c.Handle)
}

// Handle answers one Dialogflow fulfillment request. Every parsed turn is a
// 200, including turns whose result is an error message for the guest.
func (c *webhookController) Handle(ctx *fiber.Ctx) error {
	var req dto.WebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid body"))
	}

	// Only the responseId carries rules. One the delivery log cannot key on
	// turns deduplication off for this turn instead of failing it.
	if err := serverutils.ValidateRequest(req); err != nil {
		req.ResponseId = ""
	}

	res, err := c.webhookService.Handle(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
