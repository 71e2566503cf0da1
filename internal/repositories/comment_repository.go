package repositories

import (
	"context"

	"github.com/anonto42/picgram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository reads the stored comments of posts
type CommentRepository interface {
	GetCommentsByPostIDs(ctx context.Context, postIDs []string) (map[string][]models.CommentRecord, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// GetCommentsByPostIDs groups comments by post, oldest first
func (r *PostgresCommentRepository) GetCommentsByPostIDs(ctx context.Context, postIDs []string) (map[string][]models.CommentRecord, error) {
	result := make(map[string][]models.CommentRecord)
	if len(postIDs) == 0 {
		return result, nil
	}
	var comments []models.CommentRecord
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		result[c.PostID] = append(result[c.PostID], c)
	}
	return result, nil
}
