package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/anonto42/picgram/backend/internal/cache"
	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	feedLimit         = 30
	notificationLimit = 50
	searchLimit       = 20
	profileGridLimit  = 60
)

// Provider builds database-backed collaborators for a viewer's session
type Provider struct {
	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	SavedPosts    SavedPostRepository
	Follows       FollowRepository
	Notifications NotificationRepository
	Stories       StoryRepository

	// SearchCache, when set, memoises search results for SearchCacheTTL
	SearchCache    cache.Cache
	SearchCacheTTL time.Duration
	Logger         *zap.Logger
}

func (p *Provider) PostFetcher(v models.Viewer) viewmodel.PostFetcher {
	return feedSource{p: p, viewer: v}
}

func (p *Provider) StoryFetcher(v models.Viewer) viewmodel.StoryFetcher {
	return storySource{p: p, viewer: v}
}

func (p *Provider) NotificationFetcher(v models.Viewer) viewmodel.NotificationFetcher {
	return notificationSource{p: p, viewer: v}
}

func (p *Provider) UserSearcher(v models.Viewer) viewmodel.UserSearcher {
	var searcher viewmodel.UserSearcher = searchSource{p: p, viewer: v}
	if p.SearchCache != nil {
		searcher = cache.NewSearcher(searcher, p.SearchCache, p.SearchCacheTTL, formatUserID(v.UserID), p.Logger)
	}
	return searcher
}

func (p *Provider) PostPublisher(v models.Viewer) viewmodel.PostPublisher {
	return publisher{p: p, viewer: v}
}

func (p *Provider) ProfileFetcher(v models.Viewer) viewmodel.ProfileFetcher {
	return profileSource{p: p, viewer: v}
}

// RecentSearches starts every session with an empty list
func (p *Provider) RecentSearches(models.Viewer) []models.SearchableUser { return nil }

func formatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseUserID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type feedSource struct {
	p      *Provider
	viewer models.Viewer
}

func (s feedSource) FetchPosts(ctx context.Context) ([]models.Post, error) {
	docs, err := s.p.Posts.GetRecentPosts(ctx, feedLimit)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, len(docs))
	var userIDs []uint
	for i, d := range docs {
		postIDs[i] = d.ID.Hex()
		if id, ok := parseUserID(d.UserID); ok {
			userIDs = append(userIDs, id)
		}
	}

	comments, err := s.p.Comments.GetCommentsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	for _, list := range comments {
		for _, c := range list {
			userIDs = append(userIDs, c.UserID)
		}
	}

	users, err := s.p.Users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	liked, err := s.p.Likes.GetLikedPostIDs(ctx, s.viewer.UserID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	saved, err := s.p.SavedPosts.GetSavedPostIDs(ctx, s.viewer.UserID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load saved posts: %w", err)
	}

	posts := make([]models.Post, len(docs))
	for i, d := range docs {
		pid := postIDs[i]
		var author models.User
		if id, ok := parseUserID(d.UserID); ok {
			author = users[id]
		}
		postComments := make([]models.Comment, 0, len(comments[pid]))
		for _, c := range comments[pid] {
			postComments = append(postComments, models.Comment{Username: users[c.UserID].Username, Text: c.Content})
		}
		posts[i] = models.Post{
			ID:        pid,
			AuthorID:  d.UserID,
			Username:  author.Username,
			AvatarURL: author.AvatarURL,
			ImageURL:  d.CoverImage(),
			Caption:   d.Caption,
			LikeCount: d.LikesCount,
			Comments:  postComments,
			Timestamp: humanize.Time(d.CreatedAt),
			Liked:     liked[pid],
			Saved:     saved[pid],
		}
	}
	return posts, nil
}

type storySource struct {
	p      *Provider
	viewer models.Viewer
}

func (s storySource) FetchStories(ctx context.Context) ([]models.Story, error) {
	docs, err := s.p.Stories.GetActiveStories(ctx)
	if err != nil {
		return nil, err
	}

	storyIDs := make([]string, len(docs))
	var userIDs []uint
	for i, d := range docs {
		storyIDs[i] = d.ID.Hex()
		if id, ok := parseUserID(d.UserID); ok {
			userIDs = append(userIDs, id)
		}
	}
	users, err := s.p.Users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load story authors: %w", err)
	}
	seen, err := s.p.Stories.GetSeenStoryIDs(ctx, s.viewer.UserID, storyIDs)
	if err != nil {
		return nil, fmt.Errorf("load seen stories: %w", err)
	}

	stories := make([]models.Story, len(docs))
	for i, d := range docs {
		var author models.User
		if id, ok := parseUserID(d.UserID); ok {
			author = users[id]
		}
		stories[i] = models.Story{
			ID:        storyIDs[i],
			Username:  author.Username,
			AvatarURL: author.AvatarURL,
			Viewed:    seen[storyIDs[i]],
		}
	}
	return stories, nil
}

type notificationSource struct {
	p      *Provider
	viewer models.Viewer
}

func (s notificationSource) FetchNotifications(ctx context.Context) ([]models.Notification, error) {
	records, err := s.p.Notifications.GetByRecipientID(ctx, s.viewer.UserID, notificationLimit)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]uint, len(records))
	for i, r := range records {
		actorIDs[i] = r.ActorID
	}
	actors, err := s.p.Users.GetUsersByIDs(ctx, actorIDs)
	if err != nil {
		return nil, fmt.Errorf("load notification actors: %w", err)
	}

	notifications := make([]models.Notification, len(records))
	for i, r := range records {
		actor := actors[r.ActorID]
		notifications[i] = models.Notification{
			ID:        formatUserID(r.ID),
			Type:      models.NotificationType(r.Type),
			Username:  actor.Username,
			AvatarURL: actor.AvatarURL,
			Content:   r.Message,
			Timestamp: humanize.Time(r.CreatedAt),
			Read:      r.IsRead,
		}
	}
	return notifications, nil
}

func (s notificationSource) MarkNotificationRead(ctx context.Context, id string) error {
	notificationID, ok := parseUserID(id)
	if !ok {
		return fmt.Errorf("invalid notification id %q", id)
	}
	return s.p.Notifications.MarkAsRead(ctx, s.viewer.UserID, notificationID)
}

func (s notificationSource) MarkAllNotificationsRead(ctx context.Context) error {
	return s.p.Notifications.MarkAllAsRead(ctx, s.viewer.UserID)
}

type searchSource struct {
	p      *Provider
	viewer models.Viewer
}

func (s searchSource) SearchUsers(ctx context.Context, query string) ([]models.SearchableUser, error) {
	users, err := s.p.Users.SearchUsers(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	following, err := s.p.Follows.GetFollowedAmong(ctx, s.viewer.UserID, ids)
	if err != nil {
		return nil, fmt.Errorf("load follow state: %w", err)
	}

	results := make([]models.SearchableUser, len(users))
	for i, u := range users {
		results[i] = u.ToSearchable(following[u.ID])
	}
	return results, nil
}

type publisher struct {
	p      *Provider
	viewer models.Viewer
}

func (pub publisher) PublishPost(ctx context.Context, draft models.PostDraft) error {
	doc := &models.PostDocument{
		UserID:    formatUserID(pub.viewer.UserID),
		Caption:   draft.Caption,
		ImageURLs: []string{draft.ImageURL},
	}
	return pub.p.Posts.CreatePost(ctx, doc)
}

type profileSource struct {
	p      *Provider
	viewer models.Viewer
}

func (s profileSource) FetchProfile(ctx context.Context) (models.ProfileSummary, []models.ProfilePost, error) {
	user, err := s.p.Users.GetUserByID(ctx, s.viewer.UserID)
	if err != nil {
		return models.ProfileSummary{}, nil, fmt.Errorf("load profile user: %w", err)
	}
	uid := formatUserID(user.ID)

	postsCount, err := s.p.Posts.CountPostsByUserID(ctx, uid)
	if err != nil {
		return models.ProfileSummary{}, nil, fmt.Errorf("count posts: %w", err)
	}
	followers, err := s.p.Follows.GetFollowersCount(ctx, user.ID)
	if err != nil {
		return models.ProfileSummary{}, nil, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.p.Follows.GetFollowingCount(ctx, user.ID)
	if err != nil {
		return models.ProfileSummary{}, nil, fmt.Errorf("count following: %w", err)
	}
	docs, err := s.p.Posts.GetPostsByUserID(ctx, uid, profileGridLimit)
	if err != nil {
		return models.ProfileSummary{}, nil, err
	}

	summary := models.ProfileSummary{
		Username:   user.Username,
		Name:       user.Name,
		AvatarURL:  user.AvatarURL,
		Bio:        user.Bio,
		PostsCount: int(postsCount),
		Followers:  int(followers),
		Following:  int(following),
	}
	posts := make([]models.ProfilePost, len(docs))
	for i, d := range docs {
		posts[i] = models.ProfilePost{
			ID:           d.ID.Hex(),
			ImageURL:     d.CoverImage(),
			Caption:      d.Caption,
			LikeCount:    d.LikesCount,
			CommentCount: d.CommentsCount,
		}
	}
	return summary, posts, nil
}
