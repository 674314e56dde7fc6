package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus tracks the chore lifecycle: a parent assigns a task, the child
// marks it completed, the parent approves and the reward is posted.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusApproved  TaskStatus = "approved"
)

// Task represents a chore assigned to a child
type Task struct {
	ID          string     `json:"id" db:"id" validate:"required,uuid"`
	FamilyID    string     `json:"family_id" db:"family_id" validate:"required,uuid"`
	ChildID     string     `json:"child_id" db:"child_id" validate:"required,uuid"`
	Title       string     `json:"title" db:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty" db:"description" validate:"max=1000"`
	RewardCents int64      `json:"reward_cents" db:"reward_cents" validate:"min=0"`
	Status      TaskStatus `json:"status" db:"status"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	CreatedBy   string     `json:"created_by" db:"created_by" validate:"required,uuid"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// NewTask creates a pending task with generated ID and timestamps
func NewTask(familyID, childID, title string, rewardCents int64, createdBy string) *Task {
	now := time.Now()
	return &Task{
		ID:          uuid.New().String(),
		FamilyID:    familyID,
		ChildID:     childID,
		Title:       title,
		RewardCents: rewardCents,
		Status:      TaskStatusPending,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MarkCompleted transitions pending → completed
func (t *Task) MarkCompleted() error {
	if t.Status != TaskStatusPending {
		return fmt.Errorf("task is %s, only pending tasks can be completed", t.Status)
	}
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// MarkApproved transitions completed → approved. Approval is what releases
// the reward, so it must happen at most once.
func (t *Task) MarkApproved() error {
	if t.Status != TaskStatusCompleted {
		return fmt.Errorf("task is %s, only completed tasks can be approved", t.Status)
	}
	now := time.Now()
	t.Status = TaskStatusApproved
	t.ApprovedAt = &now
	t.UpdatedAt = now
	return nil
}
