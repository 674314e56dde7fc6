package sqlite

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// ChildRepository implements repositories.ChildRepository for SQLite
type ChildRepository struct {
	*BaseRepository
}

// NewChildRepository creates a new SQLite child repository
func NewChildRepository(db *sql.DB, logger *logrus.Logger) repositories.ChildRepository {
	return &ChildRepository{BaseRepository: NewBaseRepository(db, "children", logger)}
}

// Create creates a new child
func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	if err := child.Validate(); err != nil {
		return repositories.ValidationError("child", child.ID, err)
	}

	query := `
		INSERT INTO children (
			id, family_id, parent_id, first_name, birth_date,
			balance_cents, allowance_cents, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		child.ID,
		child.FamilyID,
		child.ParentID,
		child.FirstName,
		child.BirthDate,
		child.BalanceCents,
		child.AllowanceCents,
		child.CreatedAt,
		child.UpdatedAt,
	)
	return err
}

// GetByID retrieves a child by ID
func (r *ChildRepository) GetByID(ctx context.Context, id string) (*models.Child, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, family_id, parent_id, first_name, birth_date,
			   balance_cents, allowance_cents, created_at, updated_at
		FROM children
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	child := &models.Child{}
	err := row.Scan(
		&child.ID,
		&child.FamilyID,
		&child.ParentID,
		&child.FirstName,
		&child.BirthDate,
		&child.BalanceCents,
		&child.AllowanceCents,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("child", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "child", id, err)
	}
	return child, nil
}

// ListByFamily lists all children of one family
func (r *ChildRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.Child, error) {
	query := `
		SELECT id, family_id, parent_id, first_name, birth_date,
			   balance_cents, allowance_cents, created_at, updated_at
		FROM children
		WHERE family_id = ?
		ORDER BY created_at`

	rows, err := r.executeQuery(ctx, "list_by_family", query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*models.Child
	for rows.Next() {
		child := &models.Child{}
		if err := rows.Scan(
			&child.ID,
			&child.FamilyID,
			&child.ParentID,
			&child.FirstName,
			&child.BirthDate,
			&child.BalanceCents,
			&child.AllowanceCents,
			&child.CreatedAt,
			&child.UpdatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_by_family", "child", "", err)
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

// Update updates an existing child
func (r *ChildRepository) Update(ctx context.Context, child *models.Child) error {
	if err := child.Validate(); err != nil {
		return repositories.ValidationError("child", child.ID, err)
	}

	query := `
		UPDATE children
		SET first_name = ?, birth_date = ?, allowance_cents = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "update", query,
		child.FirstName,
		child.BirthDate,
		child.AllowanceCents,
		child.UpdatedAt,
		child.ID,
	)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "update", child.ID)
}

// Delete deletes a child by ID
func (r *ChildRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, "delete", `DELETE FROM children WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "delete", id)
}
