package handlers

import (
	"errors"

	"taskboard/internal/models"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type labelRequest struct {
	Name string `json:"name" validate:"required"`
}

// parseLabel works like parseTask for label bodies.
func (h *Handler) parseLabel(c *fiber.Ctx) (labelRequest, bool, error) {
	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in label body", zap.Error(err))
		return req, false, errorJSON(c, fiber.StatusBadRequest, "Invalid label data")
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in label body", zap.Error(err))
		return req, false, errorJSON(c, fiber.StatusBadRequest, "Invalid label data")
	}
	return req, true, nil
}

// labelWriteError maps a create/update failure to its 400 response.
func labelWriteError(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, models.ErrInvalidLabelData) {
		logger.AuditLogger.Warn("Invalid data in "+op, zap.Error(err))
	} else {
		logger.ErrorLogger.Error("Error in "+op, zap.Error(err))
	}
	return errorJSON(c, fiber.StatusBadRequest, "Invalid label data")
}

func (h *Handler) CreateLabel(c *fiber.Ctx) error {
	req, ok, err := h.parseLabel(c)
	if !ok {
		return err
	}

	// insert the label
	label, err := h.labels.Create(c.UserContext(), req.Name)
	if err != nil {
		return labelWriteError(c, "create label", err)
	}

	logger.AuditLogger.Info("Label created", zap.Int("label_id", label.ID), actor(c))
	return c.Status(fiber.StatusCreated).JSON(label)
}

// ListLabels returns every label, oldest first.
func (h *Handler) ListLabels(c *fiber.Ctx) error {
	labels, err := h.labels.List(c.UserContext())
	if err != nil {
		logger.ErrorLogger.Error("Error fetching labels", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(labels)
}

func (h *Handler) GetLabel(c *fiber.Ctx) error {
	// id must be an integer
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid label data")
	}

	// fetch the row
	label, err := h.labels.Get(c.UserContext(), labelID)
	if errors.Is(err, models.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Label not found")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching label", zap.Int("label_id", labelID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(label)
}

// UpdateLabel renames a label and answers 200 with null when no label has
// the id.
func (h *Handler) UpdateLabel(c *fiber.Ctx) error {
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid label data")
	}
	req, ok, err := h.parseLabel(c)
	if !ok {
		return err
	}

	// rename
	label, err := h.labels.Update(c.UserContext(), labelID, req.Name)
	if err != nil {
		return labelWriteError(c, "update label", err)
	}
	if label == nil {
		return c.JSON(nil)
	}

	logger.AuditLogger.Info("Label updated", zap.Int("label_id", labelID), actor(c))
	return c.JSON(label)
}

// DeleteLabel succeeds whether or not the label existed. Tasks keep any
// stale label ids.
func (h *Handler) DeleteLabel(c *fiber.Ctx) error {
	labelID, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid label data")
	}

	if err := h.labels.Delete(c.UserContext(), labelID); err != nil {
		logger.ErrorLogger.Error("Error deleting label", zap.Int("label_id", labelID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	logger.AuditLogger.Info("Label deleted", zap.Int("label_id", labelID), actor(c))
	return c.JSON(fiber.Map{"message": "Label deleted successfully"})
}
