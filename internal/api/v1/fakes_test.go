package v1

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/models"
)

var errDown = fmt.Errorf("%w: connection refused", models.ErrStorage)

type memUsers struct {
	mu     sync.Mutex
	users  []models.User
	fail   bool
	reject bool
}

func (m *memUsers) Register(_ context.Context, username, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errDown
	}
	if m.reject {
		return 0, fmt.Errorf("%w: bcrypt: password length exceeds 72 bytes", models.ErrInvalidUserData)
	}
	id := len(m.users) + 1
	m.users = append(m.users, models.User{ID: id, Username: username, PasswordHash: "hashed:" + password})
	return id, nil
}

func (m *memUsers) Authenticate(_ context.Context, username, password string) (models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.users) - 1; i >= 0; i-- {
		if m.users[i].Username != username {
			continue
		}
		if m.users[i].PasswordHash != "hashed:"+password {
			return models.Identity{}, models.ErrInvalidCredentials
		}
		return models.Identity{Username: username}, nil
	}
	return models.Identity{}, models.ErrInvalidCredentials
}

type memTasks struct {
	mu     sync.Mutex
	nextID int
	tasks  []models.Task
	fail   bool
}

func (m *memTasks) Create(_ context.Context, in models.TaskInput) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.Title == "" {
		return models.Task{}, models.ErrInvalidTaskData
	}
	if !in.Status.Valid() {
		return models.Task{}, models.ErrInvalidStatus
	}
	if m.fail {
		return models.Task{}, errDown
	}
	m.nextID++
	labels := in.Labels
	if labels == nil {
		labels = []int64{}
	}
	task := models.Task{
		ID:          m.nextID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Labels:      labels,
		CreatedAt:   time.Now().UTC(),
	}
	m.tasks = append(m.tasks, task)
	return task, nil
}

func (m *memTasks) List(context.Context) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errDown
	}
	return append([]models.Task{}, m.tasks...), nil
}

func (m *memTasks) Get(_ context.Context, id int) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, models.ErrNotFound
}

func (m *memTasks) Update(_ context.Context, id int, in models.TaskInput) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.Title == "" {
		return nil, models.ErrInvalidTaskData
	}
	if !in.Status.Valid() {
		return nil, models.ErrInvalidStatus
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Title = in.Title
			m.tasks[i].Description = in.Description
			m.tasks[i].Status = in.Status
			m.tasks[i].Labels = in.Labels
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memTasks) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errDown
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			break
		}
	}
	return nil
}

type memLabels struct {
	mu     sync.Mutex
	nextID int
	labels []models.Label
}

func (m *memLabels) Create(_ context.Context, name string) (models.Label, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		return models.Label{}, models.ErrInvalidLabelData
	}
	m.nextID++
	label := models.Label{ID: m.nextID, Name: name}
	m.labels = append(m.labels, label)
	return label, nil
}

func (m *memLabels) List(context.Context) ([]models.Label, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Label{}, m.labels...), nil
}

func (m *memLabels) Get(_ context.Context, id int) (models.Label, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.labels {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Label{}, models.ErrNotFound
}

func (m *memLabels) Update(_ context.Context, id int, name string) (*models.Label, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.labels {
		if m.labels[i].ID == id {
			m.labels[i].Name = name
			l := m.labels[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (m *memLabels) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.labels {
		if m.labels[i].ID == id {
			m.labels = append(m.labels[:i], m.labels[i+1:]...)
			break
		}
	}
	return nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

var errPing = errors.New("dial tcp: connection refused")
