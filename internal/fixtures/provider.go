// Package fixtures serves the built-in demo data with simulated latency.
package fixtures

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"github.com/google/uuid"
)

// Provider hands out fixture collaborators. Posts shared through the composer
// are kept in memory and show up at the top of every feed.
type Provider struct {
	Latency        time.Duration // feed, stories, notifications, profile
	PublishLatency time.Duration

	mu        sync.Mutex
	published []models.Post
}

func NewProvider(latency, publishLatency time.Duration) *Provider {
	return &Provider{Latency: latency, PublishLatency: publishLatency}
}

func (p *Provider) PostFetcher(models.Viewer) viewmodel.PostFetcher { return postSource{p} }

func (p *Provider) StoryFetcher(models.Viewer) viewmodel.StoryFetcher { return storySource{p} }

func (p *Provider) NotificationFetcher(models.Viewer) viewmodel.NotificationFetcher {
	return notificationSource{p}
}

// UserSearcher filters the fixed directory; lookup delay is left to the search debounce
func (p *Provider) UserSearcher(models.Viewer) viewmodel.UserSearcher { return Directory{} }

func (p *Provider) PostPublisher(v models.Viewer) viewmodel.PostPublisher {
	return publisher{p: p, viewer: v}
}

func (p *Provider) ProfileFetcher(v models.Viewer) viewmodel.ProfileFetcher {
	return profileSource{p: p, viewer: v}
}

func (p *Provider) RecentSearches(models.Viewer) []models.SearchableUser {
	recent := make([]models.SearchableUser, 0, len(recentSeed))
	for _, i := range recentSeed {
		recent = append(recent, Users[i])
	}
	return recent
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type postSource struct{ p *Provider }

func (s postSource) FetchPosts(ctx context.Context) ([]models.Post, error) {
	if err := sleep(ctx, s.p.Latency); err != nil {
		return nil, err
	}
	s.p.mu.Lock()
	all := append(append([]models.Post{}, s.p.published...), feedPosts...)
	s.p.mu.Unlock()

	posts := make([]models.Post, len(all))
	for i, post := range all {
		post.Comments = append([]models.Comment{}, post.Comments...)
		posts[i] = post
	}
	return posts, nil
}

type storySource struct{ p *Provider }

func (s storySource) FetchStories(ctx context.Context) ([]models.Story, error) {
	if err := sleep(ctx, s.p.Latency); err != nil {
		return nil, err
	}
	return append([]models.Story{}, stories...), nil
}

type notificationSource struct{ p *Provider }

func (s notificationSource) FetchNotifications(ctx context.Context) ([]models.Notification, error) {
	if err := sleep(ctx, s.p.Latency); err != nil {
		return nil, err
	}
	return append([]models.Notification{}, notifications...), nil
}

// Directory searches the fixed user list by username or display name
type Directory struct{}

func (Directory) SearchUsers(ctx context.Context, query string) ([]models.SearchableUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	var matches []models.SearchableUser
	for _, u := range Users {
		if strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

type publisher struct {
	p      *Provider
	viewer models.Viewer
}

func (pub publisher) PublishPost(ctx context.Context, draft models.PostDraft) error {
	if err := sleep(ctx, pub.p.PublishLatency); err != nil {
		return err
	}
	post := models.Post{
		ID:        uuid.NewString(),
		AuthorID:  pub.viewer.Username,
		Username:  pub.viewer.Username,
		AvatarURL: avatar(pub.viewer.Username),
		ImageURL:  draft.ImageURL,
		Caption:   draft.Caption,
		Timestamp: "just now",
	}
	pub.p.mu.Lock()
	pub.p.published = append([]models.Post{post}, pub.p.published...)
	pub.p.mu.Unlock()
	return nil
}

type profileSource struct {
	p      *Provider
	viewer models.Viewer
}

func (s profileSource) FetchProfile(ctx context.Context) (models.ProfileSummary, []models.ProfilePost, error) {
	if err := sleep(ctx, s.p.Latency); err != nil {
		return models.ProfileSummary{}, nil, err
	}
	summary := profileSummary
	if s.viewer.Username != "" {
		summary.Username = s.viewer.Username
	}
	return summary, append([]models.ProfilePost{}, profilePosts...), nil
}
