package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// SearchHandler handles the user search screen
type SearchHandler struct {
	sessions *session.Store
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(sessions *session.Store) *SearchHandler {
	return &SearchHandler{sessions: sessions}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.DELETE("/search/query", h.ClearQuery)
	g.POST("/search/recent", h.SelectResult)
	g.DELETE("/search/recent", h.ClearRecent)
	g.DELETE("/search/recent/:id", h.RemoveRecent)
}

// Search sets the query when q is given and waits for the lookup to settle.
// A client that disconnects first gets nothing; the lookup still completes
// unless a newer query supersedes it.
func (h *SearchHandler) Search(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}

	if c.QueryParams().Has("q") {
		done := sess.Search.SetQuery(c.QueryParam("q"))
		select {
		case <-done:
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}
	return respond(c, sess, http.StatusOK, sess.Search.View())
}

// ClearQuery empties the search box
func (h *SearchHandler) ClearQuery(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Search.ClearQuery()
	return respond(c, sess, http.StatusOK, sess.Search.View())
}

// SelectResult records a result row in the recent searches
func (h *SearchHandler) SelectResult(c echo.Context) error {
	var req models.SelectRecentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}

	user, ok := sess.Search.Result(req.UserID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User is not in the current results")
	}
	sess.Search.SelectResult(user)
	return respond(c, sess, http.StatusOK, sess.Search.View())
}

// RemoveRecent drops one entry from the recent searches
func (h *SearchHandler) RemoveRecent(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Search.RemoveRecent(c.Param("id"))
	return respond(c, sess, http.StatusOK, sess.Search.View())
}

// ClearRecent empties the recent searches
func (h *SearchHandler) ClearRecent(c echo.Context) error {
	sess, err := currentSession(c, h.sessions)
	if err != nil {
		return err
	}
	sess.Search.ClearAllRecent()
	return respond(c, sess, http.StatusOK, sess.Search.View())
}
