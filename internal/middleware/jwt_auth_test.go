package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, *models.JwtCustomClaims) {
	t.Helper()
	e := echo.New()
	var seen *models.JwtCustomClaims
	e.GET("/", func(c echo.Context) error {
		if claims, ok := ClaimsFromContext(c.Request().Context()); ok {
			seen = claims
		}
		return c.NoContent(http.StatusOK)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWTAuthMiddleware(t *testing.T) {
	user := &models.User{ID: 42, Username: "user_profile", Email: "demo@picgram.app"}
	valid, err := SignToken(testSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	expired, err := SignToken(testSecret, user, -time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	forged, err := SignToken("other-secret", user, time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}

	cases := []struct {
		name     string
		header   string
		optional bool
		status   int
		signedIn bool
	}{
		{"valid token", "Bearer " + valid, false, http.StatusOK, true},
		{"missing header", "", false, http.StatusUnauthorized, false},
		{"bad scheme", "Token " + valid, false, http.StatusUnauthorized, false},
		{"expired", "Bearer " + expired, false, http.StatusUnauthorized, false},
		{"wrong secret", "Bearer " + forged, false, http.StatusUnauthorized, false},
		{"optional anonymous", "", true, http.StatusOK, false},
		{"optional bad token", "Bearer " + forged, true, http.StatusOK, false},
		{"optional valid", "Bearer " + valid, true, http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mw := JWTAuthMiddleware(testSecret)
			if tc.optional {
				mw = OptionalJWTMiddleware(testSecret)
			}
			rec, claims := serve(t, mw, tc.header)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if (claims != nil) != tc.signedIn {
				t.Fatalf("signed in = %v, want %v", claims != nil, tc.signedIn)
			}
			if claims != nil && (claims.UserID != 42 || claims.Viewer().Username != "user_profile") {
				t.Fatalf("claims = %+v, want user 42 user_profile", claims)
			}
		})
	}
}

func TestRequestAuthenticator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if (RequestAuthenticator{}).IsAuthenticated(req.Context()) {
		t.Fatal("IsAuthenticated() = true without claims")
	}
	ctx := WithClaims(req.Context(), &models.JwtCustomClaims{UserID: 1})
	if !(RequestAuthenticator{}).IsAuthenticated(ctx) {
		t.Fatal("IsAuthenticated() = false with claims")
	}
}
