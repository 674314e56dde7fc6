package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType categorizes ledger entries
type TransactionType string

const (
	TransactionTypeAllowance  TransactionType = "allowance"
	TransactionTypeTaskReward TransactionType = "task_reward"
	TransactionTypeGift       TransactionType = "gift"
	TransactionTypeSpending   TransactionType = "spending"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// ValidTransactionTypes lists the accepted type values
var ValidTransactionTypes = []TransactionType{
	TransactionTypeAllowance,
	TransactionTypeTaskReward,
	TransactionTypeGift,
	TransactionTypeSpending,
	TransactionTypeAdjustment,
}

// Transaction is one ledger entry against a child's balance. AmountCents is
// signed: positive credits, negative debits.
type Transaction struct {
	ID          string          `json:"id" db:"id" validate:"required,uuid"`
	FamilyID    string          `json:"family_id" db:"family_id" validate:"required,uuid"`
	ChildID     string          `json:"child_id" db:"child_id" validate:"required,uuid"`
	Type        TransactionType `json:"type" db:"type" validate:"required"`
	AmountCents int64           `json:"amount_cents" db:"amount_cents"`
	Description string          `json:"description" db:"description" validate:"max=500"`
	CreatedBy   string          `json:"created_by" db:"created_by" validate:"required,uuid"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// NewTransaction creates a transaction with generated ID and timestamp
func NewTransaction(familyID, childID string, txType TransactionType, amountCents int64, createdBy string) *Transaction {
	return &Transaction{
		ID:          uuid.New().String(),
		FamilyID:    familyID,
		ChildID:     childID,
		Type:        txType,
		AmountCents: amountCents,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the transaction data
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.ChildID == "" {
		return fmt.Errorf("child ID is required")
	}
	if t.AmountCents == 0 {
		return fmt.Errorf("transaction amount cannot be zero")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %s", t.Type)
	}
	return nil
}

// Valid reports whether the type is one of the accepted values
func (t TransactionType) Valid() bool {
	for _, v := range ValidTransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}
