package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	GetActiveStories(ctx context.Context) ([]models.StoryDocument, error)
	GetSeenStoryIDs(ctx context.Context, userID uint, storyIDs []string) (map[string]bool, error)
	DeleteExpiredStories(ctx context.Context) (int64, error)
}

type storyRepository struct {
	mongoCollection *mongo.Collection
	pgDB            *gorm.DB
}

func NewStoryRepository(mongoDB *mongo.Database, pgDB *gorm.DB) StoryRepository {
	return &storyRepository{
		mongoCollection: mongoDB.Collection("stories"),
		pgDB:            pgDB,
	}
}

func (r *storyRepository) GetActiveStories(ctx context.Context) ([]models.StoryDocument, error) {
	filter := bson.M{"expires_at": bson.M{"$gt": time.Now()}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.mongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find stories: %w", err)
	}
	defer cursor.Close(ctx)

	var stories []models.StoryDocument
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}
	return stories, nil
}

func (r *storyRepository) GetSeenStoryIDs(ctx context.Context, userID uint, storyIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var seen []models.StorySeen
	err := r.pgDB.WithContext(ctx).Where("user_id = ? AND story_id IN ?", userID, storyIDs).Find(&seen).Error
	if err != nil {
		return nil, err
	}
	for _, s := range seen {
		result[s.StoryID] = true
	}
	return result, nil
}

// DeleteExpiredStories removes stories past their expiry and their view records
func (r *storyRepository) DeleteExpiredStories(ctx context.Context) (int64, error) {
	filter := bson.M{"expires_at": bson.M{"$lte": time.Now()}}

	cursor, err := r.mongoCollection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, fmt.Errorf("find expired stories: %w", err)
	}
	var expired []models.StoryDocument
	if err := cursor.All(ctx, &expired); err != nil {
		return 0, fmt.Errorf("decode expired stories: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	res, err := r.mongoCollection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete expired stories: %w", err)
	}

	ids := make([]string, len(expired))
	for i, s := range expired {
		ids[i] = s.ID.Hex()
	}
	if err := r.pgDB.WithContext(ctx).Where("story_id IN ?", ids).Delete(&models.StorySeen{}).Error; err != nil {
		return res.DeletedCount, fmt.Errorf("delete story views: %w", err)
	}
	return res.DeletedCount, nil
}
