package middleware

import (
	"context"
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// FirebaseUserLookup resolves a Firebase account to a local user
type FirebaseUserLookup interface {
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// FirebaseAuthMiddleware verifies Firebase ID tokens and stores the linked
// local user's claims. With optional set, anonymous requests pass through.
func FirebaseAuthMiddleware(authClient *auth.Client, users FirebaseUserLookup, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifyFirebase(c, authClient, users)
			if err != nil {
				if optional {
					return next(c)
				}
				return err
			}
			attach(c, claims)
			c.Set("firebaseUID", claims.Subject)
			return next(c)
		}
	}
}

func verifyFirebase(c echo.Context, authClient *auth.Client, users FirebaseUserLookup) (*models.JwtCustomClaims, error) {
	idToken, err := bearerToken(c)
	if errors.Is(err, errMissingToken) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
	}
	if err != nil {
		return nil, err
	}

	ctx := c.Request().Context()
	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	// the account must have gone through /auth/firebase-login first
	user, err := users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Firebase account is not linked")
	}

	claims := &models.JwtCustomClaims{UserID: user.ID, Username: user.Username, Email: user.Email}
	claims.Subject = token.UID
	return claims, nil
}
