package domain

import (
	"strings"
	"time"
)

// TaskStatus represents the progress of a task.
type TaskStatus string

// Task statuses. Any status may be set from any other; transitions are not
// enforced.
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts s to a TaskStatus. An empty string yields Pending.
func ParseTaskStatus(s string) (TaskStatus, error) {
	if s == "" {
		return TaskStatusPending, nil
	}
	status := TaskStatus(s)
	if !status.Valid() {
		return "", NewValidationError(
			"status",
			"must be one of Pending, In Progress, Completed",
			ErrInvalidTaskStatus,
		)
	}
	return status, nil
}

// Task is a unit of work assigned to a single employee.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	AssignedToID int64      `json:"assigned_to_id"`
	Status       TaskStatus `json:"status"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTask builds a validated Task ready for persistence. An empty status
// defaults to Pending and both timestamps are set to the current time.
func NewTask(
	title string,
	description *string,
	assignedToID int64,
	dueDate *time.Time,
	status TaskStatus,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	now := time.Now().UTC()
	task := &Task{
		Title:        title,
		Description:  description,
		AssignedToID: assignedToID,
		Status:       status,
		DueDate:      dueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if t.AssignedToID <= 0 {
		return NewValidationError("assigned_to_id", "must be a positive id", ErrInvalidID)
	}
	if !t.Status.Valid() {
		return NewValidationError(
			"status",
			"must be one of Pending, In Progress, Completed",
			ErrInvalidTaskStatus,
		)
	}
	return nil
}

// TaskPatch is a partial update of a Task. Only fields with Set == true are
// written. Description and DueDate are nullable and may be cleared; the other
// fields reject an explicit null.
type TaskPatch struct {
	Title        Field[string]
	Description  Field[string]
	AssignedToID Field[int64]
	DueDate      Field[time.Time]
	Status       Field[TaskStatus]
}

// IsEmpty reports whether the patch changes no fields.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.AssignedToID.Set &&
		!p.DueDate.Set && !p.Status.Set
}

// Validate checks the present fields of the patch.
func (p TaskPatch) Validate() error {
	if p.Title.Set {
		if p.Title.Null {
			return NewValidationError("title", "cannot be null", ErrNullNotAllowed)
		}
		if strings.TrimSpace(p.Title.Value) == "" {
			return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
		}
	}
	if p.AssignedToID.Set {
		if p.AssignedToID.Null {
			return NewValidationError("assigned_to_id", "cannot be null", ErrNullNotAllowed)
		}
		if p.AssignedToID.Value <= 0 {
			return NewValidationError("assigned_to_id", "must be a positive id", ErrInvalidID)
		}
	}
	if p.Status.Set {
		if p.Status.Null {
			return NewValidationError("status", "cannot be null", ErrNullNotAllowed)
		}
		if !p.Status.Value.Valid() {
			return NewValidationError(
				"status",
				"must be one of Pending, In Progress, Completed",
				ErrInvalidTaskStatus,
			)
		}
	}
	return nil
}

// Apply merges the present fields of p into t and stamps UpdatedAt.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title.HasValue() {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.AssignedToID.HasValue() {
		t.AssignedToID = p.AssignedToID.Value
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Ptr()
	}
	if p.Status.HasValue() {
		t.Status = p.Status.Value
	}
	t.UpdatedAt = now
}
