// Package session keeps one set of screen models per signed-in viewer.
package session

import (
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
)

// Provider builds the collaborators a viewer's models talk to
type Provider interface {
	PostFetcher(models.Viewer) viewmodel.PostFetcher
	StoryFetcher(models.Viewer) viewmodel.StoryFetcher
	NotificationFetcher(models.Viewer) viewmodel.NotificationFetcher
	UserSearcher(models.Viewer) viewmodel.UserSearcher
	PostPublisher(models.Viewer) viewmodel.PostPublisher
	ProfileFetcher(models.Viewer) viewmodel.ProfileFetcher
	RecentSearches(models.Viewer) []models.SearchableUser
}

// Session is the state of every screen for one viewer
type Session struct {
	Viewer        models.Viewer
	Nav           *Navigator
	Feed          *viewmodel.Feed
	Notifications *viewmodel.NotificationFeed
	Search        *viewmodel.Search
	Composer      *viewmodel.Composer
	Profile       *viewmodel.Profile

	postOpts []viewmodel.PostOption

	mu       sync.Mutex
	posts    map[string]*viewmodel.PostInteraction
	lastSeen time.Time
}

// Post returns the interaction model of a loaded feed post, creating it from
// the feed entry on first use. Reloading the feed keeps existing models.
func (s *Session) Post(id string) (*viewmodel.PostInteraction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		return p, true
	}
	post, ok := s.Feed.Post(id)
	if !ok {
		return nil, false
	}
	p := viewmodel.NewPostInteraction(post, s.Viewer.Username, s.postOpts...)
	s.posts[id] = p
	return p, true
}

// PostStates returns the current interaction state of the given posts,
// falling back to the feed entry for posts never interacted with
func (s *Session) PostStates(posts []models.Post) []viewmodel.PostState {
	s.mu.Lock()
	defer s.mu.Unlock()
	states := make([]viewmodel.PostState, len(posts))
	for i, post := range posts {
		if p, ok := s.posts[post.ID]; ok {
			states[i] = p.State()
			continue
		}
		states[i] = viewmodel.NewPostInteraction(post, s.Viewer.Username).State()
	}
	return states
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
