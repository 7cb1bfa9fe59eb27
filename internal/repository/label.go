package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/models"
)

// LabelRepository owns label rows. Deleting a label leaves task references
// to it untouched.
type LabelRepository struct {
	db *sql.DB
}

func NewLabelRepository(db *sql.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

func (r *LabelRepository) Create(ctx context.Context, name string) (models.Label, error) {
	if strings.TrimSpace(name) == "" {
		return models.Label{}, models.ErrInvalidLabelData
	}
	var label models.Label
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO labels (name) VALUES ($1) RETURNING id, name", name).Scan(&label.ID, &label.Name)
	if err != nil {
		return models.Label{}, fmt.Errorf("%w: insert label: %v", models.ErrStorage, err)
	}
	return label, nil
}

func (r *LabelRepository) List(ctx context.Context) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM labels ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: select labels: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	labels := []models.Label{}
	for rows.Next() {
		var label models.Label
		if err := rows.Scan(&label.ID, &label.Name); err != nil {
			return nil, fmt.Errorf("%w: scan label: %v", models.ErrStorage, err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate labels: %v", models.ErrStorage, err)
	}
	return labels, nil
}

func (r *LabelRepository) Get(ctx context.Context, id int) (models.Label, error) {
	var label models.Label
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM labels WHERE id = $1", id).Scan(&label.ID, &label.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Label{}, models.ErrNotFound
	}
	if err != nil {
		return models.Label{}, fmt.Errorf("%w: select label: %v", models.ErrStorage, err)
	}
	return label, nil
}

// Update renames label id. A missing id yields a nil label and no error.
func (r *LabelRepository) Update(ctx context.Context, id int, name string) (*models.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.ErrInvalidLabelData
	}
	var label models.Label
	err := r.db.QueryRowContext(ctx,
		"UPDATE labels SET name = $1 WHERE id = $2 RETURNING id, name", name, id).Scan(&label.ID, &label.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update label: %v", models.ErrStorage, err)
	}
	return &label, nil
}

func (r *LabelRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM labels WHERE id = $1", id); err != nil {
		return fmt.Errorf("%w: delete label: %v", models.ErrStorage, err)
	}
	return nil
}
