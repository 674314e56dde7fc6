package repositories

import (
	"context"
	"time"

	"family-finance-api/internal/models"
)

// ParentRepository manages parent accounts
type ParentRepository interface {
	Create(ctx context.Context, parent *models.Parent) error
	GetByID(ctx context.Context, id string) (*models.Parent, error)
	GetByEmail(ctx context.Context, email string) (*models.Parent, error)
	ListByFamily(ctx context.Context, familyID string) ([]*models.Parent, error)
	Update(ctx context.Context, parent *models.Parent) error
	Delete(ctx context.Context, id string) error
}

// ChildRepository manages child accounts and their balances
type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	GetByID(ctx context.Context, id string) (*models.Child, error)
	ListByFamily(ctx context.Context, familyID string) ([]*models.Child, error)
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, id string) error
}

// LedgerFilters narrows transaction listings
type LedgerFilters struct {
	ChildID       string
	Type          models.TransactionType
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         int
	Offset        int
}

// LedgerRepository manages the transaction ledger. Every create atomically
// applies the signed amount to the child's denormalized balance; the
// CreateWith variants extend the same transaction to the task or gift row,
// so a status flip and its money movement commit together or not at all.
type LedgerRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CreateWithTask(ctx context.Context, tx *models.Transaction, task *models.Task) error
	CreateWithGift(ctx context.Context, tx *models.Transaction, gift *models.Gift) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	ListByFamily(ctx context.Context, familyID string, filters *LedgerFilters) ([]*models.Transaction, error)
	BalanceForChild(ctx context.Context, childID string) (int64, error)
}

// TaskRepository manages chores
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByFamily(ctx context.Context, familyID string, status models.TaskStatus) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

// GiftRepository manages gift goals
type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	ListByFamily(ctx context.Context, familyID string) ([]*models.Gift, error)
	Update(ctx context.Context, gift *models.Gift) error
}

// NotificationRepository manages in-app notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// RepositoryContainer bundles all repositories for dependency injection
type RepositoryContainer struct {
	ParentRepo       ParentRepository
	ChildRepo        ChildRepository
	LedgerRepo       LedgerRepository
	TaskRepo         TaskRepository
	GiftRepo         GiftRepository
	NotificationRepo NotificationRepository
}
