package handlers

import (
	"context"
	"strconv"

	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List lists the caller's notifications. ?unread=true narrows to unread ones.
func (h *NotificationHandler) List(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	unreadOnly := false
	if raw, ok := serverless.QueryParam(c.Request(), "unread"); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			unreadOnly = v
		}
	}

	notifications, err := h.notificationService.ListNotifications(ctx, principal.UserID().String(), unreadOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(notifications)
}

// MarkRead flags one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_NOTIFICATION_ID", "Invalid notification ID format")
	}

	if err := h.notificationService.MarkNotificationRead(ctx, id.String()); err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateNoContentResponse(), nil
}
