package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles the comment box under a post
type CommentHandler struct {
	sessions *session.Store
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(sessions *session.Store) *CommentHandler {
	return &CommentHandler{sessions: sessions}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.PUT("/posts/:id/draft", h.UpdateDraft)
	g.POST("/posts/:id/comments", h.SubmitComment)
}

// UpdateDraft replaces the text in the comment input
func (h *CommentHandler) UpdateDraft(c echo.Context) error {
	var req models.DraftCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, post, err := lookupPost(c, h.sessions)
	if err != nil {
		return err
	}
	return respond(c, sess, http.StatusOK, post.SetDraft(req.Text))
}

// SubmitComment appends a comment as the viewer. Blank text is ignored and
// reported as submitted=false.
func (h *CommentHandler) SubmitComment(c echo.Context) error {
	var req models.SubmitCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, post, err := lookupPost(c, h.sessions)
	if err != nil {
		return err
	}

	submitted := post.SubmitComment(req.Text)
	status := http.StatusOK
	if submitted {
		status = http.StatusCreated
	}
	return respond(c, sess, status, echo.Map{
		"submitted": submitted,
		"post":      post.State(),
	})
}
