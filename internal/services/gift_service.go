package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// giftService implements the GiftService interface
type giftService struct {
	giftRepo         repositories.GiftRepository
	childRepo        repositories.ChildRepository
	ledgerRepo       repositories.LedgerRepository
	notificationRepo repositories.NotificationRepository
	validator        *validator.Validate
}

// NewGiftService creates a new gift service instance
func NewGiftService(giftRepo repositories.GiftRepository, childRepo repositories.ChildRepository, ledgerRepo repositories.LedgerRepository, notificationRepo repositories.NotificationRepository) GiftService {
	return &giftService{
		giftRepo:         giftRepo,
		childRepo:        childRepo,
		ledgerRepo:       ledgerRepo,
		notificationRepo: notificationRepo,
		validator:        validator.New(),
	}
}

// CreateGift opens a new gift goal for the family
func (s *giftService) CreateGift(ctx context.Context, familyID string, req *CreateGiftRequest) (*models.Gift, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create gift request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	gift := models.NewGift(familyID, req.Title, req.RecipientName, req.GoalCents, req.CreatedBy)
	if err := s.giftRepo.Create(ctx, gift); err != nil {
		return nil, fmt.Errorf("failed to create gift: %w", err)
	}
	return gift, nil
}

// GetGift retrieves a gift within the family
func (s *giftService) GetGift(ctx context.Context, familyID, id string) (*models.Gift, error) {
	if err := validateUUID(id, "gift ID"); err != nil {
		return nil, err
	}

	gift, err := s.giftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}
	if gift.FamilyID != familyID {
		return nil, repositories.NotFoundError("gift", id)
	}
	return gift, nil
}

// ListGifts lists the family's gift goals
func (s *giftService) ListGifts(ctx context.Context, familyID string) ([]*models.Gift, error) {
	gifts, err := s.giftRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	return gifts, nil
}

// ContributeToGift debits the contributing child's balance and credits the
// gift. When the goal is reached every family child is notified.
func (s *giftService) ContributeToGift(ctx context.Context, familyID, id string, req *ContributeRequest) (*models.Gift, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: contribute request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	gift, err := s.GetGift(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if gift.Status != models.GiftStatusOpen {
		return nil, fmt.Errorf("%w: gift is %s, only open gifts accept contributions", ErrInvalidState, gift.Status)
	}

	child, err := s.childRepo.GetByID(ctx, req.ChildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child.FamilyID != familyID {
		return nil, repositories.NotFoundError("child", req.ChildID)
	}
	if child.BalanceCents < req.AmountCents {
		return nil, fmt.Errorf("%w: balance %d cents, contribution %d cents", ErrInsufficientFunds, child.BalanceCents, req.AmountCents)
	}

	if err := gift.Contribute(req.AmountCents); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// The debit and the gift update commit together; a failure leaves the
	// child's balance untouched.
	entry := models.NewTransaction(familyID, req.ChildID, models.TransactionTypeGift, -req.AmountCents, req.ChildID)
	entry.Description = fmt.Sprintf("Contribution to gift %q", gift.Title)
	if err := s.ledgerRepo.CreateWithGift(ctx, entry, gift); err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}

	if gift.Status == models.GiftStatusFunded {
		s.notifyGiftFunded(ctx, gift)
	}
	return gift, nil
}

// CloseGift closes a gift goal so it stops accepting contributions
func (s *giftService) CloseGift(ctx context.Context, familyID, id string) (*models.Gift, error) {
	gift, err := s.GetGift(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if gift.Status == models.GiftStatusClosed {
		return nil, fmt.Errorf("%w: gift is already closed", ErrInvalidState)
	}

	gift.Status = models.GiftStatusClosed
	gift.UpdatedAt = nowFunc()
	if err := s.giftRepo.Update(ctx, gift); err != nil {
		return nil, fmt.Errorf("failed to close gift: %w", err)
	}
	return gift, nil
}

func (s *giftService) notifyGiftFunded(ctx context.Context, gift *models.Gift) {
	children, err := s.childRepo.ListByFamily(ctx, gift.FamilyID)
	if err != nil {
		return
	}
	for _, child := range children {
		notification := models.NewNotification(gift.FamilyID, child.ID, models.NotificationGiftFunded,
			fmt.Sprintf("Gift %q reached its goal", gift.Title))
		_ = s.notificationRepo.Create(ctx, notification)
	}
}
