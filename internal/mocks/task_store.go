package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore over an in-memory map.
type MockTaskStore struct {
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.TaskPatch, now time.Time) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, id int64) error
	ListFn    func(ctx context.Context) ([]*domain.Task, error)

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty store whose IDs start at 1.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[int64]*domain.Task), nextID: 1}
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.nextID
	m.nextID++
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// GetByID implements store.TaskStore. It returns a copy of the stored task.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	out := *task
	return &out, nil
}

// List implements store.TaskStore.
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.filter(func(*domain.Task) bool { return true }), nil
}

// ListByAssignee implements store.TaskStore.
func (m *MockTaskStore) ListByAssignee(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool { return t.AssignedToID == userID }), nil
}

func (m *MockTaskStore) filter(keep func(*domain.Task) bool) []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if keep(t) {
			out := *t
			tasks = append(tasks, &out)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID > tasks[j].ID })
	return tasks
}

// Update implements store.TaskStore using domain.TaskPatch.Apply.
func (m *MockTaskStore) Update(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
	now time.Time,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	patch.Apply(task, now)
	out := *task
	return &out, nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	return m
}
