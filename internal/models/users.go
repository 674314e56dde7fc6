package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role a family member holds
type UserRole string

const (
	RoleParent UserRole = "Parent"
	RoleChild  UserRole = "Child"
)

// Parent represents a parent account
type Parent struct {
	ID        string    `json:"id" db:"id" validate:"required,uuid"`
	FamilyID  string    `json:"family_id" db:"family_id" validate:"required,uuid"`
	FirstName string    `json:"first_name" db:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" db:"last_name" validate:"required,max=100"`
	Email     string    `json:"email" db:"email" validate:"required,email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewParent creates a parent with generated ID and timestamps
func NewParent(familyID, firstName, lastName, email string) *Parent {
	now := time.Now()
	return &Parent{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Child represents a child account. The balance is denormalized from the
// transaction ledger and kept in cents.
type Child struct {
	ID             string     `json:"id" db:"id" validate:"required,uuid"`
	FamilyID       string     `json:"family_id" db:"family_id" validate:"required,uuid"`
	ParentID       string     `json:"parent_id" db:"parent_id" validate:"required,uuid"`
	FirstName      string     `json:"first_name" db:"first_name" validate:"required,max=100"`
	BirthDate      *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	BalanceCents   int64      `json:"balance_cents" db:"balance_cents"`
	AllowanceCents int64      `json:"allowance_cents" db:"allowance_cents" validate:"min=0"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// NewChild creates a child with generated ID and timestamps
func NewChild(familyID, parentID, firstName string) *Child {
	now := time.Now()
	return &Child{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		ParentID:  parentID,
		FirstName: firstName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the child data
func (c *Child) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("child ID is required")
	}
	if c.FamilyID == "" {
		return fmt.Errorf("family ID is required")
	}
	if c.ParentID == "" {
		return fmt.Errorf("parent ID is required")
	}
	if c.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if c.AllowanceCents < 0 {
		return fmt.Errorf("allowance cannot be negative")
	}
	return nil
}
