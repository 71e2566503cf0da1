package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where the auth middlewares store *models.JwtCustomClaims on the echo context
const UserContextKey = "user"

type claimsKey struct{}

var errMissingToken = errors.New("missing bearer token")

// WithClaims returns a copy of ctx carrying the viewer's claims
func WithClaims(ctx context.Context, claims *models.JwtCustomClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by an auth middleware, if any
func ClaimsFromContext(ctx context.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*models.JwtCustomClaims)
	return claims, ok && claims != nil
}

// RequestAuthenticator treats a request as signed in when an auth middleware
// attached claims to its context
type RequestAuthenticator struct{}

func (RequestAuthenticator) IsAuthenticated(ctx context.Context) bool {
	_, ok := ClaimsFromContext(ctx)
	return ok
}

// SignToken issues an HS256 token for user valid for ttl
func SignToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTAuthMiddleware rejects requests without a valid JWT and stores the user claims
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseRequest(c, secret)
			if err != nil {
				return err
			}
			attach(c, claims)
			return next(c)
		}
	}
}

// OptionalJWTMiddleware stores the user claims when a valid JWT is present
// and lets anonymous requests through
func OptionalJWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := parseRequest(c, secret); err == nil {
				attach(c, claims)
			}
			return next(c)
		}
	}
}

func attach(c echo.Context, claims *models.JwtCustomClaims) {
	c.Set(UserContextKey, claims)
	c.SetRequest(c.Request().WithContext(WithClaims(c.Request().Context(), claims)))
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}

func parseRequest(c echo.Context, secret string) (*models.JwtCustomClaims, error) {
	tokenString, err := bearerToken(c)
	if errors.Is(err, errMissingToken) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}
	if err != nil {
		return nil, err
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}
