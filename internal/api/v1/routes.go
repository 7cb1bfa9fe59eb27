package v1

import (
	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public auth routes and the token-protected task
// and label routes on router.
func RegisterRoutes(router fiber.Router, h *handlers.Handler, verifier middleware.TokenVerifier) {
	router.Get("/health", h.Health)

	// Auth
	router.Post("/register", h.Register)
	router.Post("/login", h.Login)

	requireToken := middleware.UseToken(verifier)

	// Task
	taskRoutes := router.Group("/tasks", requireToken)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Get("/", h.ListTasks)
	taskRoutes.Get("/:id", h.GetTask)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)

	// Label
	labelRoutes := router.Group("/labels", requireToken)
	labelRoutes.Post("/", h.CreateLabel)
	labelRoutes.Get("/", h.ListLabels)
	labelRoutes.Get("/:id", h.GetLabel)
	labelRoutes.Put("/:id", h.UpdateLabel)
	labelRoutes.Delete("/:id", h.DeleteLabel)
}
