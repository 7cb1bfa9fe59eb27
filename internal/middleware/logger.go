package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// ErrorHandler recovers panics into a generic 500 and writes one request log
// line per request. Errors from later handlers go through the app's
// ErrorHandler first so the logged status is the one sent.
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(requestIDKey, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		if chainErr := next(c, requestID); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.RequestLogger.Info("Request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}

// next runs the rest of the chain, turning a panic into a generic 500 response.
func next(c *fiber.Ctx, requestID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorLogger.Error(fmt.Sprintf("Recovered from panic: %v", r),
				zap.String("request_id", requestID),
				zap.String("stack", string(debug.Stack())))
			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}
	}()
	return c.Next()
}

// AppErrorHandler is the fiber.Config ErrorHandler. Fiber errors keep their
// code and message; anything else becomes a generic 500.
func AppErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logger.ErrorLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
