package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/models"

	"github.com/lib/pq"
)

const taskColumns = "id, title, COALESCE(description, ''), COALESCE(status, ''), created_at, labels"

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task   models.Task
		status string
		labels pq.Int64Array
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &status, &task.CreatedAt, &labels); err != nil {
		return models.Task{}, err
	}
	task.Status = models.Status(status)
	task.Labels = []int64(labels)
	if task.Labels == nil {
		task.Labels = []int64{}
	}
	return task, nil
}

func validateTask(in models.TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return models.ErrInvalidTaskData
	}
	if !in.Status.Valid() {
		return models.ErrInvalidStatus
	}
	return nil
}

func labelArray(labels []int64) pq.Int64Array {
	if labels == nil {
		return pq.Int64Array{}
	}
	return pq.Int64Array(labels)
}

// Create stores a new task. An empty title or unknown status fails before
// anything is written.
func (r *TaskRepository) Create(ctx context.Context, in models.TaskInput) (models.Task, error) {
	if err := validateTask(in); err != nil {
		return models.Task{}, err
	}

	row := r.db.QueryRowContext(ctx,
		"INSERT INTO tasks (title, description, status, labels) VALUES ($1, $2, $3, $4) RETURNING "+taskColumns,
		in.Title, in.Description, string(in.Status), labelArray(in.Labels))
	task, err := scanTask(row)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: insert task: %v", models.ErrStorage, err)
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: select tasks: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan task: %v", models.ErrStorage, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tasks: %v", models.ErrStorage, err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: select task: %v", models.ErrStorage, err)
	}
	return task, nil
}

// Update replaces every mutable field of task id. It validates input exactly
// like Create. A missing id is not an error: the result is nil.
func (r *TaskRepository) Update(ctx context.Context, id int, in models.TaskInput) (*models.Task, error) {
	if err := validateTask(in); err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		"UPDATE tasks SET title = $1, description = $2, status = $3, labels = $4 WHERE id = $5 RETURNING "+taskColumns,
		in.Title, in.Description, string(in.Status), labelArray(in.Labels), id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update task: %v", models.ErrStorage, err)
	}
	return &task, nil
}

// Delete removes task id. Deleting a missing id succeeds.
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id); err != nil {
		return fmt.Errorf("%w: delete task: %v", models.ErrStorage, err)
	}
	return nil
}
