package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the viewer's own profile
type UserHandler struct {
	sessions *session.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(sessions *session.Store) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
}

// GetProfile returns the profile header and post grid, loading them until a fetch succeeds
func (h *UserHandler) GetProfile(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Profile.Loaded() {
		sess.Profile.Load(c.Request().Context())
	}
	return respond(c, sess, http.StatusOK, sess.Profile.View())
}
