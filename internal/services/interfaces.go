package services

import (
	"context"
	"time"

	"family-finance-api/internal/models"
)

// FamilyService defines the interface for parent and child account operations.
// Every operation is scoped to a family: entities belonging to another family
// behave as if they do not exist.
type FamilyService interface {
	// Parent operations
	CreateParent(ctx context.Context, familyID string, req *CreateParentRequest) (*models.Parent, error)
	GetParent(ctx context.Context, familyID, id string) (*models.Parent, error)
	FindParentByEmail(ctx context.Context, email string) (*models.Parent, error)
	ListParents(ctx context.Context, familyID string) ([]*models.Parent, error)
	UpdateParent(ctx context.Context, familyID, id string, req *UpdateParentRequest) (*models.Parent, error)
	DeleteParent(ctx context.Context, familyID, id string) error

	// Child operations
	CreateChild(ctx context.Context, familyID string, req *CreateChildRequest) (*models.Child, error)
	GetChild(ctx context.Context, familyID, id string) (*models.Child, error)
	ListChildren(ctx context.Context, familyID string) ([]*models.Child, error)
	UpdateChild(ctx context.Context, familyID, id string, req *UpdateChildRequest) (*models.Child, error)
	DeleteChild(ctx context.Context, familyID, id string) error
	GetChildBalance(ctx context.Context, familyID, id string) (*ChildBalance, error)
}

// LedgerService defines the interface for transaction ledger operations
type LedgerService interface {
	RecordTransaction(ctx context.Context, familyID string, req *RecordTransactionRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, familyID, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, familyID string, filters *TransactionFilters) ([]*models.Transaction, error)
	PostAllowance(ctx context.Context, familyID, childID, createdBy string) (*models.Transaction, error)
}

// TaskService defines the interface for chore lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, familyID string, req *CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, familyID, id string) (*models.Task, error)
	ListTasks(ctx context.Context, familyID string, status models.TaskStatus) ([]*models.Task, error)
	UpdateTask(ctx context.Context, familyID, id string, req *UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, familyID, id string) error
	CompleteTask(ctx context.Context, familyID, id, completedBy string) (*models.Task, error)
	ApproveTask(ctx context.Context, familyID, id, approvedBy string) (*models.Task, error)
}

// GiftService defines the interface for gift goal operations
type GiftService interface {
	CreateGift(ctx context.Context, familyID string, req *CreateGiftRequest) (*models.Gift, error)
	GetGift(ctx context.Context, familyID, id string) (*models.Gift, error)
	ListGifts(ctx context.Context, familyID string) ([]*models.Gift, error)
	ContributeToGift(ctx context.Context, familyID, id string, req *ContributeRequest) (*models.Gift, error)
	CloseGift(ctx context.Context, familyID, id string) (*models.Gift, error)
}

// NotificationService defines the interface for in-app notifications
type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// Request and response types for service operations

// Family service types
type CreateParentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
}

type UpdateParentRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

type CreateChildRequest struct {
	ParentID       string     `json:"parent_id" validate:"required,uuid"`
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	AllowanceCents int64      `json:"allowance_cents" validate:"min=0"`
}

type UpdateChildRequest struct {
	FirstName      *string    `json:"first_name,omitempty" validate:"omitempty,max=100"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	AllowanceCents *int64     `json:"allowance_cents,omitempty" validate:"omitempty,min=0"`
}

// ChildBalance pairs the denormalized balance with the ledger-derived sum so
// callers can detect drift.
type ChildBalance struct {
	ChildID          string `json:"child_id"`
	BalanceCents     int64  `json:"balance_cents"`
	LedgerTotalCents int64  `json:"ledger_total_cents"`
}

// Ledger service types
type RecordTransactionRequest struct {
	ChildID     string                 `json:"child_id" validate:"required,uuid"`
	Type        models.TransactionType `json:"type" validate:"required"`
	AmountCents int64                  `json:"amount_cents" validate:"required"`
	Description string                 `json:"description,omitempty" validate:"max=500"`
	CreatedBy   string                 `json:"created_by" validate:"required,uuid"`
}

type TransactionFilters struct {
	ChildID       string     `json:"child_id,omitempty"`
	Type          string     `json:"type,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
	Limit         int        `json:"limit,omitempty"`
	Offset        int        `json:"offset,omitempty"`
}

// Task service types
type CreateTaskRequest struct {
	ChildID     string     `json:"child_id" validate:"required,uuid"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty" validate:"max=1000"`
	RewardCents int64      `json:"reward_cents" validate:"min=0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by" validate:"required,uuid"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	RewardCents *int64     `json:"reward_cents,omitempty" validate:"omitempty,min=0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Gift service types
type CreateGiftRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	RecipientName string `json:"recipient_name" validate:"required,max=200"`
	GoalCents     int64  `json:"goal_cents" validate:"required,gt=0"`
	CreatedBy     string `json:"created_by" validate:"required,uuid"`
}

type ContributeRequest struct {
	ChildID     string `json:"child_id" validate:"required,uuid"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
}
