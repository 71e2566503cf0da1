package models

import "time"

// NotificationType is the kind of activity a notification reports
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
)

// Notification is a notification as shown in the activity list
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Username  string           `json:"username"`
	AvatarURL string           `json:"avatar_url"`
	Content   string           `json:"content"`
	Timestamp string           `json:"timestamp"`
	Read      bool             `json:"read"`
}

// NotificationRecord represents a stored user notification (PostgreSQL)
type NotificationRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // like, comment, follow, mention
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    string    `json:"target_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (NotificationRecord) TableName() string { return "notifications" }

// NotificationFilter is the query string of the notification list
type NotificationFilter struct {
	Tab   string `query:"tab" validate:"omitempty,oneof=all unread"`
	Query string `query:"q" validate:"max=100"`
}
