package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	sessions *session.Store
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(sessions *session.Store) *StoryHandler {
	return &StoryHandler{sessions: sessions}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories/:id/seen", h.MarkAsSeen)
}

// MarkAsSeen greys out a story in the viewer's carousel
func (h *StoryHandler) MarkAsSeen(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	if !sess.Feed.MarkStoryViewed(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	return respond(c, sess, http.StatusOK, echo.Map{"stories": sess.Feed.View().Stories})
}
