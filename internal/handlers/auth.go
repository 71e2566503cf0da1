package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/picgram/backend/internal/middleware"
	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// UserStore is the account storage the auth endpoints need. It is served by
// PostgreSQL or, without a database, by the in-memory fixture accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users        UserStore
	firebaseAuth *auth.Client
	jwtSecret    string
	logger       *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil,
// which disables Firebase login.
func NewAuthHandler(users UserStore, firebaseAuthClient *auth.Client, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		firebaseAuth: firebaseAuthClient,
		jwtSecret:    jwtSecret,
		logger:       logger,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	// Check if user with this email already exists
	if _, err := h.users.GetUserByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		h.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	token, err := middleware.SignToken(h.jwtSecret, user, tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"token": token}})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := middleware.SignToken(h.jwtSecret, user, tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"token": token}})
}

// FirebaseLogin verifies a Firebase ID token, links or creates the local
// user and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "Firebase login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	token, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.linkFirebaseUser(ctx, token.UID, email, name)
	if err != nil {
		h.logger.Error("firebase login failed", zap.String("uid", token.UID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	localJWT, err := middleware.SignToken(h.jwtSecret, user, tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"token": localJWT}})
}

func (h *AuthHandler) linkFirebaseUser(ctx context.Context, uid, email, name string) (*models.User, error) {
	user, err := h.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		if email != "" {
			user.Email = email
		}
		if name != "" {
			user.Name = name
		}
		return user, h.users.UpdateUser(ctx, user)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	// not linked yet; attach the UID to an existing account with the same email
	user, err = h.users.GetUserByEmail(ctx, email)
	if err == nil {
		user.FirebaseUID = uid
		return user, h.users.UpdateUser(ctx, user)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		Username:    "user_" + uid,
		Name:        name,
		Email:       email,
		FirebaseUID: uid,
	}
	return user, h.users.CreateUser(ctx, user)
}
