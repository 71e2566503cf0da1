package models

import "gorm.io/gorm"

// Comment is a comment as displayed under a post
type Comment struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// CommentRecord is a persisted comment on a post
type CommentRecord struct {
	gorm.Model
	PostID  string `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID  uint   `json:"user_id" gorm:"index"`
	Content string `json:"content"`
}

func (CommentRecord) TableName() string { return "comments" }

// SubmitCommentRequest defines the request body for commenting on a post.
// Blank text is accepted here and ignored by the interaction model.
type SubmitCommentRequest struct {
	Text string `json:"text" validate:"max=500"`
}

// DraftCommentRequest defines the request body for updating the comment input
type DraftCommentRequest struct {
	Text string `json:"text" validate:"max=500"`
}
