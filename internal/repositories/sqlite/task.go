package sqlite

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// TaskRepository implements repositories.TaskRepository for SQLite
type TaskRepository struct {
	*BaseRepository
}

// NewTaskRepository creates a new SQLite task repository
func NewTaskRepository(db *sql.DB, logger *logrus.Logger) repositories.TaskRepository {
	return &TaskRepository{BaseRepository: NewBaseRepository(db, "tasks", logger)}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			id, family_id, child_id, title, description, reward_cents,
			status, due_date, completed_at, approved_at, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		task.ID,
		task.FamilyID,
		task.ChildID,
		task.Title,
		task.Description,
		task.RewardCents,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.ApprovedAt,
		task.CreatedBy,
		task.CreatedAt,
		task.UpdatedAt,
	)
	return err
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, family_id, child_id, title, description, reward_cents,
			   status, due_date, completed_at, approved_at, created_by, created_at, updated_at
		FROM tasks
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	task := &models.Task{}
	err := row.Scan(
		&task.ID,
		&task.FamilyID,
		&task.ChildID,
		&task.Title,
		&task.Description,
		&task.RewardCents,
		&task.Status,
		&task.DueDate,
		&task.CompletedAt,
		&task.ApprovedAt,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("task", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "task", id, err)
	}
	return task, nil
}

// ListByFamily lists a family's tasks, optionally narrowed to one status
func (r *TaskRepository) ListByFamily(ctx context.Context, familyID string, status models.TaskStatus) ([]*models.Task, error) {
	query := `
		SELECT id, family_id, child_id, title, description, reward_cents,
			   status, due_date, completed_at, approved_at, created_by, created_at, updated_at
		FROM tasks
		WHERE family_id = ?`
	args := []any{familyID}

	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.executeQuery(ctx, "list_by_family", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID,
			&task.FamilyID,
			&task.ChildID,
			&task.Title,
			&task.Description,
			&task.RewardCents,
			&task.Status,
			&task.DueDate,
			&task.CompletedAt,
			&task.ApprovedAt,
			&task.CreatedBy,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_by_family", "task", "", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, reward_cents = ?, status = ?,
			due_date = ?, completed_at = ?, approved_at = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "update", query,
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
		return err
	}
	return r.checkRowsAffected(result, "update", task.ID)
}

// Delete deletes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, "delete", `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "delete", id)
}
