package handlers

import (
	"net/http"

	"github.com/anonto42/picgram/backend/internal/middleware"
	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// getViewerFromContext returns the signed-in viewer set by the auth middleware
func getViewerFromContext(c echo.Context) (models.Viewer, bool) {
	claims, ok := c.Get(middleware.UserContextKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return models.Viewer{}, false
	}
	return claims.Viewer(), true
}

// currentSession resolves the viewer's session or fails with 401
func currentSession(c echo.Context, sessions *session.Store) (*session.Session, error) {
	viewer, ok := getViewerFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return sessions.Get(viewer), nil
}

// respond writes the success envelope, adding any redirect the models asked for
func respond(c echo.Context, sess *session.Session, status int, data interface{}) error {
	body := echo.Map{"success": true, "data": data}
	if sess != nil {
		if route := sess.Nav.Take(); route != "" {
			body["redirect"] = route
		}
	}
	return c.JSON(status, body)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
