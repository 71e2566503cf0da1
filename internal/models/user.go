package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account stored in PostgreSQL
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Password    string    `json:"-"`
	FirebaseUID string    `json:"firebase_uid,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSearchable converts a user into a search result row
func (u User) ToSearchable(following bool) SearchableUser {
	return SearchableUser{
		ID:          formatID(u.ID),
		Username:    u.Username,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		IsFollowing: following,
	}
}

// Viewer identifies the signed-in user a session belongs to
type Viewer struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// SearchableUser is a row in user search results and recent searches
type SearchableUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	IsFollowing bool   `json:"is_following"` // display only
}

// ProfileSummary is the header of the profile screen
type ProfileSummary struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
	Bio        string `json:"bio"`
	PostsCount int    `json:"posts_count"`
	Followers  int    `json:"followers"`
	Following  int    `json:"following"`
}

// ProfilePost is a tile of the profile grid
type ProfilePost struct {
	ID           string `json:"id"`
	ImageURL     string `json:"image_url"`
	Caption      string `json:"caption"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// SelectRecentRequest picks a result row into the recent searches
type SelectRecentRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Viewer returns the session identity carried by the claims
func (c *JwtCustomClaims) Viewer() Viewer {
	return Viewer{UserID: c.UserID, Username: c.Username}
}
