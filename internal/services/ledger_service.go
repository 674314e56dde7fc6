package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	childRepo        repositories.ChildRepository
	ledgerRepo       repositories.LedgerRepository
	notificationRepo repositories.NotificationRepository
	validator        *validator.Validate
}

// NewLedgerService creates a new ledger service instance
func NewLedgerService(childRepo repositories.ChildRepository, ledgerRepo repositories.LedgerRepository, notificationRepo repositories.NotificationRepository) LedgerService {
	return &ledgerService{
		childRepo:        childRepo,
		ledgerRepo:       ledgerRepo,
		notificationRepo: notificationRepo,
		validator:        validator.New(),
	}
}

// RecordTransaction posts a ledger entry against a child's balance. Debits
// that would overdraw the balance are rejected.
func (s *ledgerService) RecordTransaction(ctx context.Context, familyID string, req *RecordTransactionRequest) (*models.Transaction, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: record transaction request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: invalid transaction type %q", ErrValidation, req.Type)
	}
	if req.AmountCents == 0 {
		return nil, fmt.Errorf("%w: transaction amount cannot be zero", ErrValidation)
	}

	child, err := s.childRepo.GetByID(ctx, req.ChildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child.FamilyID != familyID {
		return nil, repositories.NotFoundError("child", req.ChildID)
	}

	if req.AmountCents < 0 && child.BalanceCents+req.AmountCents < 0 {
		return nil, fmt.Errorf("%w: balance %d cents, debit %d cents", ErrInsufficientFunds, child.BalanceCents, -req.AmountCents)
	}

	entry := models.NewTransaction(familyID, req.ChildID, req.Type, req.AmountCents, req.CreatedBy)
	entry.Description = req.Description

	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	return entry, nil
}

// GetTransaction retrieves a ledger entry within the family
func (s *ledgerService) GetTransaction(ctx context.Context, familyID, id string) (*models.Transaction, error) {
	if err := validateUUID(id, "transaction ID"); err != nil {
		return nil, err
	}

	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if entry.FamilyID != familyID {
		return nil, repositories.NotFoundError("transaction", id)
	}
	return entry, nil
}

// ListTransactions lists the family's ledger entries with optional filters
func (s *ledgerService) ListTransactions(ctx context.Context, familyID string, filters *TransactionFilters) ([]*models.Transaction, error) {
	if filters == nil {
		filters = &TransactionFilters{}
	}
	if filters.Limit <= 0 {
		filters.Limit = 100
	}
	if filters.Type != "" && !models.TransactionType(filters.Type).Valid() {
		return nil, fmt.Errorf("%w: invalid transaction type %q", ErrValidation, filters.Type)
	}

	repoFilters := &repositories.LedgerFilters{
		ChildID:       filters.ChildID,
		Type:          models.TransactionType(filters.Type),
		CreatedAfter:  filters.CreatedAfter,
		CreatedBefore: filters.CreatedBefore,
		Limit:         filters.Limit,
		Offset:        filters.Offset,
	}

	entries, err := s.ledgerRepo.ListByFamily(ctx, familyID, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return entries, nil
}

// PostAllowance credits a child's configured allowance and notifies them
func (s *ledgerService) PostAllowance(ctx context.Context, familyID, childID, createdBy string) (*models.Transaction, error) {
	child, err := s.childRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child.FamilyID != familyID {
		return nil, repositories.NotFoundError("child", childID)
	}
	if child.AllowanceCents <= 0 {
		return nil, fmt.Errorf("%w: child has no allowance configured", ErrInvalidState)
	}

	entry := models.NewTransaction(familyID, childID, models.TransactionTypeAllowance, child.AllowanceCents, createdBy)
	entry.Description = "Weekly allowance"

	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to post allowance: %w", err)
	}

	notification := models.NewNotification(familyID, childID, models.NotificationAllowancePosted,
		fmt.Sprintf("Your allowance of %d cents was posted", child.AllowanceCents))
	// Notification failures do not roll back the committed ledger entry
	_ = s.notificationRepo.Create(ctx, notification)
	return entry, nil
}
