package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"github.com/labstack/echo/v4"
)

// PostHandler handles single posts and the composer
type PostHandler struct {
	sessions *session.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(sessions *session.Store) *PostHandler {
	return &PostHandler{sessions: sessions}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost)
}

// lookupPost resolves the interaction model of a post in the viewer's feed
func lookupPost(c echo.Context, sessions *session.Store) (*session.Session, *viewmodel.PostInteraction, error) {
	sess, err := currentSession(c, sessions)
	if err != nil {
		return nil, nil, err
	}
	post, ok := sess.Post(c.Param("id"))
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return sess, post, nil
}

// GetPost returns the viewer's interaction state for one post
func (h *PostHandler) GetPost(c echo.Context) error {
	sess, post, err := lookupPost(c, h.sessions)
	if err != nil {
		return err
	}
	return respond(c, sess, http.StatusOK, post.State())
}

// CreatePost fills the composer from the request and submits it. A request
// without an image leaves the draft in place and reports submitted=false.
func (h *PostHandler) CreatePost(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess.Composer.SetCaption(req.Caption)
	if req.ImageURL != "" {
		sess.Composer.SelectImage(req.ImageURL)
	}
	submitted := sess.Composer.Submit(c.Request().Context())
	if submitted {
		// the new post shows up at the top of the next feed
		sess.Feed.LoadPosts(c.Request().Context())
	}

	status := http.StatusOK
	if submitted {
		status = http.StatusCreated
	}
	return respond(c, sess, status, echo.Map{
		"submitted": submitted,
		"composer":  sess.Composer.View(),
	})
}
