package handlers

import (
	"errors"

	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type taskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Labels      []int64 `json:"labels"`
}

func (r taskRequest) input() models.TaskInput {
	return models.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      models.Status(r.Status),
		Labels:      r.Labels,
	}
}

// parseTask reads and validates the request body. It writes the 400 itself
// and reports ok=false when the request should stop.
func (h *Handler) parseTask(c *fiber.Ctx) (taskRequest, bool, error) {
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in task body", zap.Error(err))
		return req, false, errorJSON(c, fiber.StatusBadRequest, "Invalid task data")
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in task body", zap.Error(err))
		return req, false, errorJSON(c, fiber.StatusBadRequest, "Invalid task data")
	}
	return req, true, nil
}

// taskWriteError maps a create/update failure to its 400 response.
func taskWriteError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidStatus):
		logger.AuditLogger.Warn("Invalid status in "+op, zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task status")
	case errors.Is(err, models.ErrInvalidTaskData):
		logger.AuditLogger.Warn("Invalid data in "+op, zap.Error(err))
	default:
		logger.ErrorLogger.Error("Error in "+op, zap.Error(err))
	}
	return errorJSON(c, fiber.StatusBadRequest, "Invalid task data")
}

// actor is the audit field naming the authenticated caller.
func actor(c *fiber.Ctx) zap.Field {
	identity, _ := middleware.IdentityFrom(c)
	return zap.String("username", identity.Username)
}

// CreateTask stores a new task and answers 201 with it.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	req, ok, err := h.parseTask(c)
	if !ok {
		return err
	}

	// insert; created_at comes from the database
	task, err := h.tasks.Create(c.UserContext(), req.input())
	if err != nil {
		return taskWriteError(c, "create task", err)
	}

	// return the stored row
	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", task.ID), actor(c))
	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks returns every task, oldest first.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.List(c.UserContext())
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(tasks)
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	// id must be an integer
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task data")
	}

	// fetch the row
	task, err := h.tasks.Get(c.UserContext(), taskID)
	if errors.Is(err, models.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Task not found")
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Int("task_id", taskID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(task)
}

// UpdateTask answers 200 with null when no task has the id.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task data")
	}
	req, ok, err := h.parseTask(c)
	if !ok {
		return err
	}

	// overwrite title, description, status and labels
	task, err := h.tasks.Update(c.UserContext(), taskID, req.input())
	if err != nil {
		return taskWriteError(c, "update task", err)
	}

	// no matching row is not an error
	if task == nil {
		logger.AuditLogger.Info("Task update matched nothing", zap.Int("task_id", taskID), actor(c))
		return c.JSON(nil)
	}
	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID), actor(c))
	return c.JSON(task)
}

// DeleteTask succeeds whether or not the task existed.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid task data")
	}

	if err := h.tasks.Delete(c.UserContext(), taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Int("task_id", taskID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID), actor(c))
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}
