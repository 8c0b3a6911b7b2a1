package controller

import (
	"errors"

	"restaurant-chatbot-be/internal/pkg/serverutils"
	"restaurant-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(api fiber.Router, staffMiddleware fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type sessionController struct {
	webhookService service.IWebhookService
}

func NewSessionController(webhookService service.IWebhookService) ISessionController {
	return &sessionController{
		webhookService: webhookService,
	}
}

func (c *sessionController) RegisterRoutes(api fiber.Router, staffMiddleware fiber.Handler) {
	h := api.Group("/session", staffMiddleware)
	h.Get("/v1/:id", c.Show)
	h.Delete("/v1/:id", c.Reset)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.webhookService.GetSession(ctx.UserContext(), ctx.Params("id"))
	if errors.Is(err, service.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", res))
}

func (c *sessionController) Reset(ctx *fiber.Ctx) error {
	err := c.webhookService.ResetSession(ctx.UserContext(), ctx.Params("id"))
	if errors.Is(err, service.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session reset", nil))
}
