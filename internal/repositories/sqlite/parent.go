package sqlite

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// ParentRepository implements repositories.ParentRepository for SQLite
type ParentRepository struct {
	*BaseRepository
}

// NewParentRepository creates a new SQLite parent repository
func NewParentRepository(db *sql.DB, logger *logrus.Logger) repositories.ParentRepository {
	return &ParentRepository{BaseRepository: NewBaseRepository(db, "parents", logger)}
}

// Create creates a new parent
func (r *ParentRepository) Create(ctx context.Context, parent *models.Parent) error {
	query := `
		INSERT INTO parents (id, family_id, first_name, last_name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		parent.ID,
		parent.FamilyID,
		parent.FirstName,
		parent.LastName,
		parent.Email,
		parent.CreatedAt,
		parent.UpdatedAt,
	)
	return err
}

// GetByID retrieves a parent by ID
func (r *ParentRepository) GetByID(ctx context.Context, id string) (*models.Parent, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, family_id, first_name, last_name, email, created_at, updated_at
		FROM parents
		WHERE id = ?`

	return r.scanParent(r.executeQueryRow(ctx, "get_by_id", query, id), id)
}

// GetByEmail retrieves a parent by email
func (r *ParentRepository) GetByEmail(ctx context.Context, email string) (*models.Parent, error) {
	query := `
		SELECT id, family_id, first_name, last_name, email, created_at, updated_at
		FROM parents
		WHERE email = ?`

	return r.scanParent(r.executeQueryRow(ctx, "get_by_email", query, email), email)
}

// ListByFamily lists all parents of one family
func (r *ParentRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.Parent, error) {
	query := `
		SELECT id, family_id, first_name, last_name, email, created_at, updated_at
		FROM parents
		WHERE family_id = ?
		ORDER BY created_at`

	rows, err := r.executeQuery(ctx, "list_by_family", query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parents []*models.Parent
	for rows.Next() {
		parent := &models.Parent{}
		if err := rows.Scan(
			&parent.ID,
			&parent.FamilyID,
			&parent.FirstName,
			&parent.LastName,
			&parent.Email,
			&parent.CreatedAt,
			&parent.UpdatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_by_family", "parent", "", err)
		}
		parents = append(parents, parent)
	}
	return parents, rows.Err()
}

// Update updates an existing parent
func (r *ParentRepository) Update(ctx context.Context, parent *models.Parent) error {
	query := `
		UPDATE parents
		SET first_name = ?, last_name = ?, email = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "update", query,
		parent.FirstName,
		parent.LastName,
		parent.Email,
		parent.UpdatedAt,
		parent.ID,
	)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "update", parent.ID)
}

// Delete deletes a parent by ID
func (r *ParentRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, "delete", `DELETE FROM parents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "delete", id)
}

func (r *ParentRepository) scanParent(row *sql.Row, id string) (*models.Parent, error) {
	parent := &models.Parent{}
	err := row.Scan(
		&parent.ID,
		&parent.FamilyID,
		&parent.FirstName,
		&parent.LastName,
		&parent.Email,
		&parent.CreatedAt,
		&parent.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("parent", id)
		}
		return nil, repositories.NewRepositoryError("get", "parent", id, err)
	}
	return parent, nil
}
