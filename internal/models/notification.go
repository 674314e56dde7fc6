package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind categorizes in-app notifications
type NotificationKind string

const (
	NotificationTaskCompleted   NotificationKind = "task_completed"
	NotificationTaskApproved    NotificationKind = "task_approved"
	NotificationAllowancePosted NotificationKind = "allowance_posted"
	NotificationGiftFunded      NotificationKind = "gift_funded"
)

// Notification is an in-app message for one user. Delivery (email/push) is
// handled outside this service; these rows are only the record.
type Notification struct {
	ID        string           `json:"id" db:"id" validate:"required,uuid"`
	FamilyID  string           `json:"family_id" db:"family_id" validate:"required,uuid"`
	UserID    string           `json:"user_id" db:"user_id" validate:"required,uuid"`
	Kind      NotificationKind `json:"kind" db:"kind" validate:"required"`
	Message   string           `json:"message" db:"message" validate:"required,max=500"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NewNotification creates an unread notification with generated ID
func NewNotification(familyID, userID string, kind NotificationKind, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
