package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Assignment records one TaskAssigned call.
type Assignment struct {
	AssigneeID int64
	TaskID     int64
}

// MockNotifier records assignment notifications.
type MockNotifier struct {
	Err error

	mu    sync.Mutex
	calls []Assignment
}

// TaskAssigned records the call and returns Err.
func (m *MockNotifier) TaskAssigned(_ context.Context, assignee *domain.User, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Assignment{AssigneeID: assignee.ID, TaskID: task.ID})
	return m.Err
}

// Calls returns the recorded notifications in order.
func (m *MockNotifier) Calls() []Assignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Assignment(nil), m.calls...)
}
