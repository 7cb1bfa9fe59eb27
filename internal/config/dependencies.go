package config

import (
	"context"
	"database/sql"
	"fmt"

	"taskboard/configs"
	"taskboard/internal/auth"
	"taskboard/internal/repository"
	"taskboard/pkg/database"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

// Dependencies holds the shared resources built once at startup and passed
// to the router. The connection pool is the only state requests share.
type Dependencies struct {
	DB          *sql.DB
	RedisClient *redis.Client

	Tokens *auth.TokenService
	Users  *repository.UserRepository
	Tasks  *repository.TaskRepository
	Labels *repository.LabelRepository
}

// NewDependencies connects to PostgreSQL (and Redis when configured), creates
// the tables and builds the repositories.
func NewDependencies(ctx context.Context, cfg configs.Config) (*Dependencies, error) {
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{DB: db}

	if err := repository.CreateTableIfNotExists(ctx, db); err != nil {
		deps.Close()
		return nil, err
	}

	deps.RedisClient, err = database.ConnectRedis(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	if err := deps.build(db, cfg); err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

func (d *Dependencies) build(db *sql.DB, cfg configs.Config) error {
	tokens, err := auth.NewTokenService(cfg.SigningKey, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	users, err := repository.NewUserRepository(db, cfg.BcryptCost)
	if err != nil {
		return err
	}
	d.Tokens = tokens
	d.Users = users
	d.Tasks = repository.NewTaskRepository(db)
	d.Labels = repository.NewLabelRepository(db)
	return nil
}

// LimiterStorage returns Redis-backed limiter storage, or nil for the
// in-memory default.
func (d *Dependencies) LimiterStorage() fiber.Storage {
	if d.RedisClient == nil {
		return nil
	}
	return database.NewRedisStorage(d.RedisClient, "limiter:")
}

func (d *Dependencies) Close() {
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
