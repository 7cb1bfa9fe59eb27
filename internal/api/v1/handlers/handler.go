package handlers

import (
	"context"

	"taskboard/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CredentialStore interface {
	Register(ctx context.Context, username, password string) (int, error)
	Authenticate(ctx context.Context, username, password string) (models.Identity, error)
}

type TokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

type TaskStore interface {
	Create(ctx context.Context, in models.TaskInput) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id int) (models.Task, error)
	Update(ctx context.Context, id int, in models.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int) error
}

type LabelStore interface {
	Create(ctx context.Context, name string) (models.Label, error)
	List(ctx context.Context) ([]models.Label, error)
	Get(ctx context.Context, id int) (models.Label, error)
	Update(ctx context.Context, id int, name string) (*models.Label, error)
	Delete(ctx context.Context, id int) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves every route. Each request works only with the stores it was
// built with; there is no other shared state.
type Handler struct {
	users    CredentialStore
	tokens   TokenIssuer
	tasks    TaskStore
	labels   LabelStore
	db       Pinger
	validate *validator.Validate
}

func New(users CredentialStore, tokens TokenIssuer, tasks TaskStore, labels LabelStore, db Pinger) *Handler {
	return &Handler{
		users:    users,
		tokens:   tokens,
		tasks:    tasks,
		labels:   labels,
		db:       db,
		validate: validator.New(),
	}
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
