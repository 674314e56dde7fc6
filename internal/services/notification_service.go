package services

import (
	"context"
	"fmt"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// ListNotifications lists a user's notifications, newest first
func (s *notificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	if err := validateUUID(userID, "user ID"); err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flags a notification as read
func (s *notificationService) MarkNotificationRead(ctx context.Context, id string) error {
	if err := validateUUID(id, "notification ID"); err != nil {
		return err
	}
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
