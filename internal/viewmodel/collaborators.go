// Package viewmodel holds the per-screen state models. Every model owns its
// state behind a mutex and talks to the outside world only through the
// collaborator interfaces declared here.
package viewmodel

import (
	"context"

	"github.com/anonto42/picgram/backend/internal/models"
)

// Authenticator reports whether the current request belongs to a signed-in user
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Navigator receives redirect intents; models never navigate themselves
type Navigator interface {
	RedirectTo(route string)
}

type PostFetcher interface {
	FetchPosts(ctx context.Context) ([]models.Post, error)
}

type StoryFetcher interface {
	FetchStories(ctx context.Context) ([]models.Story, error)
}

type NotificationFetcher interface {
	FetchNotifications(ctx context.Context) ([]models.Notification, error)
}

// NotificationMarker persists read flags. Reads only ever go from unread to read.
type NotificationMarker interface {
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type UserSearcher interface {
	SearchUsers(ctx context.Context, query string) ([]models.SearchableUser, error)
}

type PostPublisher interface {
	PublishPost(ctx context.Context, draft models.PostDraft) error
}

type ProfileFetcher interface {
	FetchProfile(ctx context.Context) (models.ProfileSummary, []models.ProfilePost, error)
}

// Routes handed to the Navigator
const (
	RouteAuth = "/auth"
	RouteHome = "/"
)
