package sqlite

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// GiftRepository implements repositories.GiftRepository for SQLite
type GiftRepository struct {
	*BaseRepository
}

// NewGiftRepository creates a new SQLite gift repository
func NewGiftRepository(db *sql.DB, logger *logrus.Logger) repositories.GiftRepository {
	return &GiftRepository{BaseRepository: NewBaseRepository(db, "gifts", logger)}
}

// Create creates a new gift goal
func (r *GiftRepository) Create(ctx context.Context, gift *models.Gift) error {
	query := `
		INSERT INTO gifts (
			id, family_id, title, recipient_name, goal_cents,
			contributed_cents, status, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		gift.ID,
		gift.FamilyID,
		gift.Title,
		gift.RecipientName,
		gift.GoalCents,
		gift.ContributedCents,
		gift.Status,
		gift.CreatedBy,
		gift.CreatedAt,
		gift.UpdatedAt,
	)
	return err
}

// GetByID retrieves a gift by ID
func (r *GiftRepository) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, family_id, title, recipient_name, goal_cents,
			   contributed_cents, status, created_by, created_at, updated_at
		FROM gifts
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	gift := &models.Gift{}
	err := row.Scan(
		&gift.ID,
		&gift.FamilyID,
		&gift.Title,
		&gift.RecipientName,
		&gift.GoalCents,
		&gift.ContributedCents,
		&gift.Status,
		&gift.CreatedBy,
		&gift.CreatedAt,
		&gift.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("gift", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "gift", id, err)
	}
	return gift, nil
}

// ListByFamily lists a family's gift goals
func (r *GiftRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.Gift, error) {
	query := `
		SELECT id, family_id, title, recipient_name, goal_cents,
			   contributed_cents, status, created_by, created_at, updated_at
		FROM gifts
		WHERE family_id = ?
		ORDER BY created_at DESC`

	rows, err := r.executeQuery(ctx, "list_by_family", query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gifts []*models.Gift
	for rows.Next() {
		gift := &models.Gift{}
		if err := rows.Scan(
			&gift.ID,
			&gift.FamilyID,
			&gift.Title,
			&gift.RecipientName,
			&gift.GoalCents,
			&gift.ContributedCents,
			&gift.Status,
			&gift.CreatedBy,
			&gift.CreatedAt,
			&gift.UpdatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_by_family", "gift", "", err)
		}
		gifts = append(gifts, gift)
	}
	return gifts, rows.Err()
}

// Update updates an existing gift
func (r *GiftRepository) Update(ctx context.Context, gift *models.Gift) error {
	query := `
		UPDATE gifts
		SET title = ?, recipient_name = ?, goal_cents = ?,
			contributed_cents = ?, status = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "update", query,
		gift.Title,
		gift.RecipientName,
		gift.GoalCents,
		gift.ContributedCents,
		gift.Status,
		gift.UpdatedAt,
		gift.ID,
	)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "update", gift.ID)
}
