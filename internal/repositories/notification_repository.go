package repositories

import (
	"context"

	"github.com/anonto42/picgram/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository reads a user's notifications and stores read flags
type NotificationRepository interface {
	GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.NotificationRecord, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// GetByRecipientID returns the newest notifications first
func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, limit int) ([]models.NotificationRecord, error) {
	var notifications []models.NotificationRecord
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead flags one of the recipient's notifications as read
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, recipientID, notificationID uint) error {
	return r.db.WithContext(ctx).Model(&models.NotificationRecord{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) error {
	return r.db.WithContext(ctx).Model(&models.NotificationRecord{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}
