package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// familyService implements the FamilyService interface
type familyService struct {
	parentRepo repositories.ParentRepository
	childRepo  repositories.ChildRepository
	ledgerRepo repositories.LedgerRepository
	validator  *validator.Validate
}

// NewFamilyService creates a new family service instance
func NewFamilyService(parentRepo repositories.ParentRepository, childRepo repositories.ChildRepository, ledgerRepo repositories.LedgerRepository) FamilyService {
	return &familyService{
		parentRepo: parentRepo,
		childRepo:  childRepo,
		ledgerRepo: ledgerRepo,
		validator:  validator.New(),
	}
}

// CreateParent creates a new parent account
func (s *familyService) CreateParent(ctx context.Context, familyID string, req *CreateParentRequest) (*models.Parent, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create parent request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	parent := models.NewParent(familyID, req.FirstName, req.LastName, req.Email)
	if err := s.parentRepo.Create(ctx, parent); err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", err)
	}
	return parent, nil
}

// GetParent retrieves a parent within the family
func (s *familyService) GetParent(ctx context.Context, familyID, id string) (*models.Parent, error) {
	if err := validateUUID(id, "parent ID"); err != nil {
		return nil, err
	}

	parent, err := s.parentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent.FamilyID != familyID {
		return nil, repositories.NotFoundError("parent", id)
	}
	return parent, nil
}

// FindParentByEmail looks a parent up by email across families. Used by the
// login flow before any family scope exists.
func (s *familyService) FindParentByEmail(ctx context.Context, email string) (*models.Parent, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
	}
	parent, err := s.parentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find parent by email: %w", err)
	}
	return parent, nil
}

// ListParents lists all parents in the family
func (s *familyService) ListParents(ctx context.Context, familyID string) ([]*models.Parent, error) {
	parents, err := s.parentRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parents: %w", err)
	}
	return parents, nil
}

// UpdateParent updates an existing parent
func (s *familyService) UpdateParent(ctx context.Context, familyID, id string, req *UpdateParentRequest) (*models.Parent, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update parent request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	parent, err := s.GetParent(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		parent.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		parent.LastName = *req.LastName
	}
	if req.Email != nil {
		parent.Email = *req.Email
	}
	parent.UpdatedAt = nowFunc()

	if err := s.parentRepo.Update(ctx, parent); err != nil {
		return nil, fmt.Errorf("failed to update parent: %w", err)
	}
	return parent, nil
}

// DeleteParent deletes a parent. Parents with children cannot be deleted.
func (s *familyService) DeleteParent(ctx context.Context, familyID, id string) error {
	if _, err := s.GetParent(ctx, familyID, id); err != nil {
		return err
	}

	children, err := s.childRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return fmt.Errorf("failed to check parent's children: %w", err)
	}
	for _, child := range children {
		if child.ParentID == id {
			return fmt.Errorf("%w: parent has children and cannot be deleted", ErrInvalidState)
		}
	}

	if err := s.parentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete parent: %w", err)
	}
	return nil
}

// CreateChild creates a new child account with a zero balance
func (s *familyService) CreateChild(ctx context.Context, familyID string, req *CreateChildRequest) (*models.Child, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create child request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// The parent must exist in the same family
	if _, err := s.GetParent(ctx, familyID, req.ParentID); err != nil {
		return nil, err
	}

	child := models.NewChild(familyID, req.ParentID, req.FirstName)
	child.BirthDate = req.BirthDate
	child.AllowanceCents = req.AllowanceCents

	if err := child.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return child, nil
}

// GetChild retrieves a child within the family
func (s *familyService) GetChild(ctx context.Context, familyID, id string) (*models.Child, error) {
	if err := validateUUID(id, "child ID"); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child.FamilyID != familyID {
		return nil, repositories.NotFoundError("child", id)
	}
	return child, nil
}

// ListChildren lists all children in the family
func (s *familyService) ListChildren(ctx context.Context, familyID string) ([]*models.Child, error) {
	children, err := s.childRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return children, nil
}

// UpdateChild updates an existing child. The balance is never set directly;
// it only moves through ledger entries.
func (s *familyService) UpdateChild(ctx context.Context, familyID, id string, req *UpdateChildRequest) (*models.Child, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update child request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	child, err := s.GetChild(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		child.FirstName = *req.FirstName
	}
	if req.BirthDate != nil {
		child.BirthDate = req.BirthDate
	}
	if req.AllowanceCents != nil {
		child.AllowanceCents = *req.AllowanceCents
	}
	child.UpdatedAt = nowFunc()

	if err := s.childRepo.Update(ctx, child); err != nil {
		return nil, fmt.Errorf("failed to update child: %w", err)
	}
	return child, nil
}

// DeleteChild deletes a child account
func (s *familyService) DeleteChild(ctx context.Context, familyID, id string) error {
	if _, err := s.GetChild(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.childRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

// GetChildBalance reports the denormalized balance alongside the ledger sum
func (s *familyService) GetChildBalance(ctx context.Context, familyID, id string) (*ChildBalance, error) {
	child, err := s.GetChild(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	ledgerTotal, err := s.ledgerRepo.BalanceForChild(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger for child: %w", err)
	}

	return &ChildBalance{
		ChildID:          child.ID,
		BalanceCents:     child.BalanceCents,
		LedgerTotalCents: ledgerTotal,
	}, nil
}

// validateUUID checks an identifier is a well-formed UUID
func validateUUID(id, label string) error {
	if id == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidation, label)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid %s format", ErrValidation, label)
	}
	return nil
}
