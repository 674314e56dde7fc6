package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// LedgerRepository implements repositories.LedgerRepository for SQLite
type LedgerRepository struct {
	*BaseRepository
}

// NewLedgerRepository creates a new SQLite ledger repository
func NewLedgerRepository(db *sql.DB, logger *logrus.Logger) repositories.LedgerRepository {
	return &LedgerRepository{BaseRepository: NewBaseRepository(db, "transactions", logger)}
}

// Create inserts a ledger entry and applies its amount to the child's
// balance in one database transaction.
func (r *LedgerRepository) Create(ctx context.Context, entry *models.Transaction) error {
	if err := entry.Validate(); err != nil {
		return repositories.ValidationError("transaction", entry.ID, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repositories.NewRepositoryError("create", "transaction", entry.ID, err)
	}
	defer tx.Rollback()

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return repositories.NewRepositoryError("create", "transaction", entry.ID, err)
	}
	return nil
}

// CreateWithTask persists the task's current state and posts its reward
// entry in one database transaction. The task row, the ledger row, and the
// child's balance all change or none do.
func (r *LedgerRepository) CreateWithTask(ctx context.Context, entry *models.Transaction, task *models.Task) error {
	if err := entry.Validate(); err != nil {
		return repositories.ValidationError("transaction", entry.ID, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repositories.NewRepositoryError("create_with_task", "transaction", entry.ID, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, reward_cents = ?, status = ?,
			due_date = ?, completed_at = ?, approved_at = ?, updated_at = ?
		WHERE id = ?`,
		task.Title,
		task.Description,
		task.RewardCents,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.ApprovedAt,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return repositories.NewRepositoryError("create_with_task", "task", task.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError("create_with_task", "task", task.ID, err)
	}
	if affected == 0 {
		return repositories.NotFoundError("task", task.ID)
	}

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return repositories.NewRepositoryError("create_with_task", "transaction", entry.ID, err)
	}
	return nil
}

// CreateWithGift persists the gift's current state and posts the
// contribution entry in one database transaction.
func (r *LedgerRepository) CreateWithGift(ctx context.Context, entry *models.Transaction, gift *models.Gift) error {
	if err := entry.Validate(); err != nil {
		return repositories.ValidationError("transaction", entry.ID, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repositories.NewRepositoryError("create_with_gift", "transaction", entry.ID, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE gifts
		SET title = ?, recipient_name = ?, goal_cents = ?,
			contributed_cents = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		gift.Title,
		gift.RecipientName,
		gift.GoalCents,
		gift.ContributedCents,
		gift.Status,
		gift.UpdatedAt,
		gift.ID,
	)
	if err != nil {
		return repositories.NewRepositoryError("create_with_gift", "gift", gift.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError("create_with_gift", "gift", gift.ID, err)
	}
	if affected == 0 {
		return repositories.NotFoundError("gift", gift.ID)
	}

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return repositories.NewRepositoryError("create_with_gift", "transaction", entry.ID, err)
	}
	return nil
}

// insertEntry applies the entry's amount to the child's balance and inserts
// the ledger row inside the caller's transaction.
func (r *LedgerRepository) insertEntry(ctx context.Context, tx *sql.Tx, entry *models.Transaction) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE children SET balance_cents = balance_cents + ?, updated_at = ? WHERE id = ?`,
		entry.AmountCents, entry.CreatedAt, entry.ChildID,
	)
	if err != nil {
		return repositories.NewRepositoryError("create", "transaction", entry.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError("create", "transaction", entry.ID, err)
	}
	if affected == 0 {
		return repositories.NotFoundError("child", entry.ChildID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id, family_id, child_id, type, amount_cents, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.FamilyID,
		entry.ChildID,
		entry.Type,
		entry.AmountCents,
		entry.Description,
		entry.CreatedBy,
		entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.DuplicateError("transaction", "id", entry.ID)
		}
		return repositories.NewRepositoryError("create", "transaction", entry.ID, err)
	}
	return nil
}

// GetByID retrieves a ledger entry by ID
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, family_id, child_id, type, amount_cents, description, created_by, created_at
		FROM transactions
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	entry := &models.Transaction{}
	err := row.Scan(
		&entry.ID,
		&entry.FamilyID,
		&entry.ChildID,
		&entry.Type,
		&entry.AmountCents,
		&entry.Description,
		&entry.CreatedBy,
		&entry.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("transaction", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "transaction", id, err)
	}
	return entry, nil
}

// ListByFamily lists ledger entries for a family, newest first
func (r *LedgerRepository) ListByFamily(ctx context.Context, familyID string, filters *repositories.LedgerFilters) ([]*models.Transaction, error) {
	query := `
		SELECT id, family_id, child_id, type, amount_cents, description, created_by, created_at
		FROM transactions
		WHERE family_id = ?`
	args := []any{familyID}

	if filters != nil {
		var conditions []string
		if filters.ChildID != "" {
			conditions = append(conditions, "child_id = ?")
			args = append(args, filters.ChildID)
		}
		if filters.Type != "" {
			conditions = append(conditions, "type = ?")
			args = append(args, filters.Type)
		}
		if filters.CreatedAfter != nil {
			conditions = append(conditions, "created_at >= ?")
			args = append(args, *filters.CreatedAfter)
		}
		if filters.CreatedBefore != nil {
			conditions = append(conditions, "created_at <= ?")
			args = append(args, *filters.CreatedBefore)
		}
		if len(conditions) > 0 {
			query += " AND " + strings.Join(conditions, " AND ")
		}
	}

	query += " ORDER BY created_at DESC"

	limit, offset := 100, 0
	if filters != nil {
		if filters.Limit > 0 {
			limit = filters.Limit
		}
		if filters.Offset > 0 {
			offset = filters.Offset
		}
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.executeQuery(ctx, "list_by_family", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.Transaction
	for rows.Next() {
		entry := &models.Transaction{}
		if err := rows.Scan(
			&entry.ID,
			&entry.FamilyID,
			&entry.ChildID,
			&entry.Type,
			&entry.AmountCents,
			&entry.Description,
			&entry.CreatedBy,
			&entry.CreatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_by_family", "transaction", "", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// BalanceForChild recomputes a child's balance from the ledger. The children
// table carries the same number denormalized; this is the source of truth.
func (r *LedgerRepository) BalanceForChild(ctx context.Context, childID string) (int64, error) {
	if err := r.validateID(childID); err != nil {
		return 0, err
	}

	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE child_id = ?`
	row := r.executeQueryRow(ctx, "balance_for_child", query, childID)

	var balance int64
	if err := row.Scan(&balance); err != nil {
		return 0, repositories.NewRepositoryError("balance_for_child", "transaction", childID, err)
	}
	return balance, nil
}
