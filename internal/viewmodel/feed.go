package viewmodel

import (
	"context"
	"sync"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
	"go.uber.org/zap"
)

// FeedView is what the home screen renders. Posts is nil while Loading.
type FeedView struct {
	Authenticated bool           `json:"authenticated"`
	Loading       bool           `json:"loading"`
	Posts         []models.Post  `json:"posts"`
	Stories       []models.Story `json:"stories"`
}

// Feed owns the home screen: the auth gate, the ordered posts and the stories carousel.
// Posts are swapped in whole, together with the loading flag.
type Feed struct {
	mu sync.Mutex

	auth    Authenticator
	nav     Navigator
	posts   PostFetcher
	stories StoryFetcher
	logger  *zap.Logger

	authenticated bool
	loading       bool
	loaded        bool
	postList      []models.Post
	storyList     []models.Story
}

func NewFeed(auth Authenticator, nav Navigator, posts PostFetcher, stories StoryFetcher, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		auth:    auth,
		nav:     nav,
		posts:   posts,
		stories: stories,
		logger:  logger,
		loading: true,
	}
}

// CheckAuthentication refreshes the auth gate and asks for the sign-in
// screen when the viewer is not signed in
func (f *Feed) CheckAuthentication(ctx context.Context) bool {
	ok := f.auth.IsAuthenticated(ctx)

	f.mu.Lock()
	f.authenticated = ok
	f.mu.Unlock()

	if !ok {
		f.nav.RedirectTo(RouteAuth)
	}
	return ok
}

// LoadPosts fetches the feed and installs it in one step
func (f *Feed) LoadPosts(ctx context.Context) {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	fetched, err := f.posts.FetchPosts(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		metrics.CollaboratorFailed("feed")
		f.logger.Error("failed to fetch posts", zap.Error(err))
		return
	}
	f.loaded = true
	f.postList = append([]models.Post(nil), fetched...)
}

// Loaded reports whether posts were ever fetched successfully
func (f *Feed) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

// LoadStories replaces the stories carousel; a failed fetch keeps the old one
func (f *Feed) LoadStories(ctx context.Context) {
	fetched, err := f.stories.FetchStories(ctx)
	if err != nil {
		metrics.CollaboratorFailed("stories")
		f.logger.Error("failed to fetch stories", zap.Error(err))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.storyList = append([]models.Story(nil), fetched...)
}

// MarkStoryViewed flags a story as viewed; unknown ids are ignored
func (f *Feed) MarkStoryViewed(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.storyList {
		if f.storyList[i].ID == id {
			f.storyList[i].Viewed = true
			return true
		}
	}
	return false
}

// Snapshot returns the loading flag and, when not loading, the complete post list
func (f *Feed) Snapshot() (bool, []models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading {
		return true, nil
	}
	return false, append([]models.Post{}, f.postList...)
}

// Post returns a loaded post by id
func (f *Feed) Post(id string) (models.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading {
		return models.Post{}, false
	}
	for _, p := range f.postList {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (f *Feed) View() FeedView {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := FeedView{
		Authenticated: f.authenticated,
		Loading:       f.loading,
		Stories:       append([]models.Story{}, f.storyList...),
	}
	if !f.loading {
		v.Posts = append([]models.Post{}, f.postList...)
	}
	return v
}
