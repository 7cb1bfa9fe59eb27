package handlers

import (
	"context"
	"time"

	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.ErrorLogger.Error("Health check failed", zap.Error(err))
		return errorJSON(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
