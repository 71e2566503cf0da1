package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	sessions *session.Store
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(sessions *session.Store) *LikeHandler {
	return &LikeHandler{sessions: sessions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/double-tap", h.DoubleTap)
}

// ToggleLike flips the viewer's like on a post
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	sess, post, err := lookupPost(c, h.sessions)
	if err != nil {
		return err
	}
	return respond(c, sess, http.StatusOK, post.ToggleLike())
}

// DoubleTap likes a post if it is not liked yet and raises the heart burst
func (h *LikeHandler) DoubleTap(c echo.Context) error {
	sess, post, err := lookupPost(c, h.sessions)
	if err != nil {
		return err
	}
	return respond(c, sess, http.StatusOK, post.DoubleTapLike())
}
