package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry as rendered on the home screen
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	LikeCount int       `json:"like_count"`
	Comments  []Comment `json:"comments"`
	Timestamp string    `json:"timestamp"`
	Liked     bool      `json:"liked"` // viewer state at load time
	Saved     bool      `json:"saved"` // viewer state at load time
}

// PostDocument is a post stored in MongoDB
type PostDocument struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"` // numeric user ID as string
	Caption       string             `json:"caption" bson:"caption"`
	ImageURLs     []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CoverImage returns the first image of the post, if any
func (d PostDocument) CoverImage() string {
	if len(d.ImageURLs) == 0 {
		return ""
	}
	return d.ImageURLs[0]
}

// PostDraft is what the composer hands to a publisher
type PostDraft struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
}

// CreatePostRequest defines the request body for sharing a new post
type CreatePostRequest struct {
	Caption  string `json:"caption" validate:"max=2200"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}
