package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the credential store. Passwords are kept only as bcrypt
// hashes.
type UserRepository struct {
	db   *sql.DB
	cost int

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewUserRepository(db *sql.DB, cost int) (*UserRepository, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare password hasher: %w", err)
	}
	return &UserRepository{db: db, cost: cost, dummyHash: dummy}, nil
}

// Register hashes password and stores the user. A password over 72 bytes
// fails with models.ErrInvalidUserData. Duplicate usernames are not detected
// here.
func (r *UserRepository) Register(ctx context.Context, username, password string) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidUserData, err)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: hash password: %v", models.ErrStorage, err)
	}

	var id int
	err = r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, string(hashed)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert user: %v", models.ErrStorage, err)
	}
	return id, nil
}

// Authenticate checks password against the newest user row named username.
// Unknown users and wrong passwords both yield models.ErrInvalidCredentials.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (models.Identity, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = $1 ORDER BY id DESC LIMIT 1",
		username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(r.dummyHash, []byte(password))
		return models.Identity{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: select user: %v", models.ErrStorage, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.Identity{}, models.ErrInvalidCredentials
	}
	return models.Identity{Username: user.Username}, nil
}
