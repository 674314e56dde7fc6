package sqlite

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// NotificationRepository implements repositories.NotificationRepository for SQLite
type NotificationRepository struct {
	*BaseRepository
}

// NewNotificationRepository creates a new SQLite notification repository
func NewNotificationRepository(db *sql.DB, logger *logrus.Logger) repositories.NotificationRepository {
	return &NotificationRepository{BaseRepository: NewBaseRepository(db, "notifications", logger)}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, family_id, user_id, kind, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		notification.ID,
		notification.FamilyID,
		notification.UserID,
		notification.Kind,
		notification.Message,
		notification.Read,
		notification.CreatedAt,
	)
	return err
}

// ListByUser lists one user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	query := `
		SELECT id, family_id, user_id, kind, message, read, created_at
		FROM notifications
		WHERE user_id = ?`
	if unreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.executeQuery(ctx, "list_by_user", query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(
			&n.ID,
			&n.FamilyID,
			&n.UserID,
			&n.Kind,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, repositories.NewRepositoryError("list_by_user", "notification", "", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, "mark_read", `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return r.checkRowsAffected(result, "mark_read", id)
}
