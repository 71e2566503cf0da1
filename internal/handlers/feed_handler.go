package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FeedHandler serves the home screen
type FeedHandler struct {
	sessions *session.Store
	auth     viewmodel.Authenticator
	logger   *zap.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(sessions *session.Store, auth viewmodel.Authenticator, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{sessions: sessions, auth: auth, logger: logger}
}

// RegisterFeedRoutes registers feed routes. GET /feed lives on the public
// group so anonymous visitors get a redirect instead of a bare 401.
func (h *FeedHandler) RegisterFeedRoutes(public, protected *echo.Group) {
	public.GET("/feed", h.GetFeed)
	protected.POST("/feed/refresh", h.RefreshFeed)
}

// FeedResponse pairs the feed with the viewer's interaction state per post
type FeedResponse struct {
	viewmodel.FeedView
	Interactions []viewmodel.PostState `json:"interactions"`
}

// GetFeed returns the home screen, loading it on first visit
func (h *FeedHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := getViewerFromContext(c)
	if !ok {
		nav := &session.Navigator{}
		gate := viewmodel.NewFeed(h.auth, nav, nil, nil, h.logger)
		gate.CheckAuthentication(ctx)
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success":  false,
			"message":  "User not authenticated",
			"redirect": nav.Take(),
		})
	}

	sess := h.sessions.Get(viewer)
	if !sess.Feed.CheckAuthentication(ctx) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success":  false,
			"message":  "User not authenticated",
			"redirect": sess.Nav.Take(),
		})
	}
	if !sess.Feed.Loaded() {
		sess.Feed.LoadPosts(ctx)
		sess.Feed.LoadStories(ctx)
	}
	return respond(c, sess, http.StatusOK, h.render(sess))
}

// RefreshFeed reloads posts and stories
func (h *FeedHandler) RefreshFeed(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	sess.Feed.LoadPosts(ctx)
	sess.Feed.LoadStories(ctx)
	return respond(c, sess, http.StatusOK, h.render(sess))
}

func (h *FeedHandler) render(sess *session.Session) FeedResponse {
	view := sess.Feed.View()
	return FeedResponse{FeedView: view, Interactions: sess.PostStates(view.Posts)}
}
