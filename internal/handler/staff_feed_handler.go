package handler

import (
	"restaurant-chatbot-be/internal/pkg/logger"
	internalWS "restaurant-chatbot-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// StaffFeedHandler streams restaurant events to connected staff dashboards.
type StaffFeedHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewStaffFeedHandler(hub *internalWS.Hub, log logger.ILogger) *StaffFeedHandler {
	return &StaffFeedHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades an authenticated staff request. The staff middleware has
// already stored the caller in Locals.
func (h *StaffFeedHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	staffID, _ := c.Locals("staff_id").(string)
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("StaffFeedHandler", "Staff feed connected", map[string]interface{}{"staff_id": staffID})
		internalWS.ServeWs(h.hub, conn, staffID)
		h.logger.Info("StaffFeedHandler", "Staff feed closed", map[string]interface{}{"staff_id": staffID})
	})(c)
}

func (h *StaffFeedHandler) RegisterRoutes(api fiber.Router, staffMiddleware fiber.Handler) {
	feed := api.Group("/staff", staffMiddleware)
	feed.Get("/v1/feed", h.ServeWs)
}
