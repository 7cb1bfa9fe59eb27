package handlers

import (
	"errors"

	"taskboard/internal/models"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxPasswordBytes is the bcrypt input limit. It counts bytes, not runes.
const maxPasswordBytes = 72

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user data")
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user data")
	}
	if len(req.Password) > maxPasswordBytes {
		logger.AuditLogger.Warn("Password too long during register", zap.Int("bytes", len(req.Password)))
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user data")
	}

	// store the user; the credential store hashes the password
	userID, err := h.users.Register(c.UserContext(), req.Username, req.Password)
	if errors.Is(err, models.ErrInvalidUserData) {
		logger.AuditLogger.Warn("Invalid user data during register", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user data")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("user_id", userID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"id":      userID,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Bad request")
	}
	if err := h.validate.Struct(req); err != nil {
		logger.SecurityLogger.Warn("Login rejected", zap.String("username", req.Username))
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	identity, err := h.users.Authenticate(c.UserContext(), req.Username, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		logger.SecurityLogger.Warn("Login failed", zap.String("username", req.Username))
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error during login", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	logger.AuditLogger.Info("Login success", zap.String("username", identity.Username))
	return c.JSON(fiber.Map{"token": token})
}
