package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
// An absent role registers an EMPLOYEE.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. It never carries the hash.
type UserResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title        string   `json:"title"          validate:"required"`
	Description  *string  `json:"description"`
	AssignedToID int64    `json:"assigned_to_id" validate:"required,gt=0"`
	DueDate      *DueDate `json:"due_date"`
	Status       string   `json:"status"`
}

// UpdateTaskRequest is a partial update. Omitted keys are left unchanged and
// an explicit null clears description or due_date.
type UpdateTaskRequest struct {
	Title        domain.Field[string]            `json:"title"`
	Description  domain.Field[string]            `json:"description"`
	AssignedToID domain.Field[int64]             `json:"assigned_to_id"`
	DueDate      domain.Field[DueDate]           `json:"due_date"`
	Status       domain.Field[domain.TaskStatus] `json:"status"`
}

// Patch converts the request to a domain.TaskPatch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:        r.Title,
		Description:  r.Description,
		AssignedToID: r.AssignedToID,
		DueDate: domain.Field[time.Time]{
			Set:   r.DueDate.Set,
			Null:  r.DueDate.Null,
			Value: r.DueDate.Value.Time,
		},
		Status: r.Status,
	}
}

// UpdateStatusRequest defines the payload for an employee status update.
type UpdateStatusRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description"`
	AssignedToID int64             `json:"assigned_to_id"`
	Status       domain.TaskStatus `json:"status"`
	DueDate      *time.Time        `json:"due_date"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedToID: t.AssignedToID,
		Status:       t.Status,
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

// dueDateLayouts are tried in order. Layouts without a zone are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DueDate accepts RFC 3339 timestamps, zone-less timestamps and plain dates.
type DueDate struct {
	time.Time
}

type dueDateError struct {
	value string
}

func (e *dueDateError) Error() string {
	return fmt.Sprintf("due_date %q is not a valid date or timestamp", e.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dueDateError{value: string(data)}
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return &dueDateError{value: s}
}

// Ptr returns the time, or nil for a nil DueDate.
func (d *DueDate) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
