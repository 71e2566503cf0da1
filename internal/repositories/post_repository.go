package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.PostDocument) error
	GetRecentPosts(ctx context.Context, limit int64) ([]models.PostDocument, error)
	GetPostsByUserID(ctx context.Context, userID string, limit int64) ([]models.PostDocument, error)
	CountPostsByUserID(ctx context.Context, userID string) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost inserts a new post, assigning its ID and timestamps
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.PostDocument) error {
	now := time.Now()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetRecentPosts returns the newest posts across all users
func (r *MongoPostRepository) GetRecentPosts(ctx context.Context, limit int64) ([]models.PostDocument, error) {
	return r.find(ctx, bson.D{}, limit)
}

// GetPostsByUserID returns a user's posts, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string, limit int64) ([]models.PostDocument, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit)
}

func (r *MongoPostRepository) CountPostsByUserID(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *MongoPostRepository) find(ctx context.Context, filter interface{}, limit int64) ([]models.PostDocument, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.PostDocument
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}
