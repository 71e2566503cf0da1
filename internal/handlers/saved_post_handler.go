package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles bookmarking posts
type SavedPostHandler struct {
	sessions *session.Store
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(sessions *session.Store) *SavedPostHandler {
	return &SavedPostHandler{sessions: sessions}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.ToggleSave)
}

func (h *SavedPostHandler) ToggleSave(c echo.Context) error {
	sess, post, err := lookupPost(c, h.sessions)
	if err != nil {
		return err
	}
	return respond(c, sess, http.StatusOK, post.ToggleSave())
}
