package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	sessions *session.Store
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(sessions *session.Store) *NotificationHandler {
	return &NotificationHandler{sessions: sessions}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.POST("/notifications/refresh", h.Refresh)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications applies the optional tab and search filter, loading the
// list on first visit. Omitted parameters keep the current filter.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}

	var filter models.NotificationFilter
	if err := bindAndValidate(c, &filter); err != nil {
		return err
	}

	feed := sess.Notifications
	if !feed.Loaded() {
		feed.Load(c.Request().Context())
	}
	if filter.Tab != "" {
		feed.SetActiveTab(viewmodel.Tab(filter.Tab))
	}
	if c.QueryParams().Has("q") {
		feed.SetSearchQuery(filter.Query)
	}
	return respond(c, sess, http.StatusOK, feed.View())
}

// Refresh reloads the notification list
func (h *NotificationHandler) Refresh(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Notifications.Load(c.Request().Context())
	return respond(c, sess, http.StatusOK, sess.Notifications.View())
}

// MarkAsRead marks a notification as read; unknown ids leave the list unchanged
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Notifications.MarkRead(c.Request().Context(), c.Param("id"))
	return respond(c, sess, http.StatusOK, sess.Notifications.View())
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Notifications.MarkAllRead(c.Request().Context())
	return respond(c, sess, http.StatusOK, sess.Notifications.View())
}
