package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GiftStatus tracks a gift goal's lifecycle
type GiftStatus string

const (
	GiftStatusOpen   GiftStatus = "open"
	GiftStatusFunded GiftStatus = "funded"
	GiftStatusClosed GiftStatus = "closed"
)

// Gift is a shared savings goal family members contribute to
type Gift struct {
	ID               string     `json:"id" db:"id" validate:"required,uuid"`
	FamilyID         string     `json:"family_id" db:"family_id" validate:"required,uuid"`
	Title            string     `json:"title" db:"title" validate:"required,max=200"`
	RecipientName    string     `json:"recipient_name" db:"recipient_name" validate:"required,max=200"`
	GoalCents        int64      `json:"goal_cents" db:"goal_cents" validate:"required,gt=0"`
	ContributedCents int64      `json:"contributed_cents" db:"contributed_cents"`
	Status           GiftStatus `json:"status" db:"status"`
	CreatedBy        string     `json:"created_by" db:"created_by" validate:"required,uuid"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// NewGift creates an open gift goal with generated ID and timestamps
func NewGift(familyID, title, recipientName string, goalCents int64, createdBy string) *Gift {
	now := time.Now()
	return &Gift{
		ID:            uuid.New().String(),
		FamilyID:      familyID,
		Title:         title,
		RecipientName: recipientName,
		GoalCents:     goalCents,
		Status:        GiftStatusOpen,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Contribute adds to the gift, flipping it to funded once the goal is met
func (g *Gift) Contribute(amountCents int64) error {
	if g.Status == GiftStatusClosed {
		return fmt.Errorf("gift is closed")
	}
	if amountCents <= 0 {
		return fmt.Errorf("contribution must be positive")
	}
	g.ContributedCents += amountCents
	if g.ContributedCents >= g.GoalCents {
		g.Status = GiftStatusFunded
	}
	g.UpdatedAt = time.Now()
	return nil
}
