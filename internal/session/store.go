package session

import (
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"go.uber.org/zap"
)

// Store owns the sessions of all signed-in viewers
type Store struct {
	provider Provider
	auth     viewmodel.Authenticator
	logger   *zap.Logger
	debounce time.Duration
	postOpts []viewmodel.PostOption
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uint]*Session
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithSearchDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// WithPostOptions applies opts to every post interaction model created
func WithPostOptions(opts ...viewmodel.PostOption) Option {
	return func(s *Store) { s.postOpts = append(s.postOpts, opts...) }
}

// WithClock replaces time.Now for idle tracking
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(provider Provider, auth viewmodel.Authenticator, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		auth:     auth,
		logger:   zap.NewNop(),
		debounce: viewmodel.DefaultSearchDebounce,
		now:      time.Now,
		sessions: make(map[uint]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the viewer's session, creating it on first use, and marks it active
func (s *Store) Get(v models.Viewer) *Session {
	s.mu.Lock()
	sess, ok := s.sessions[v.UserID]
	if !ok {
		sess = s.newSession(v)
		s.sessions[v.UserID] = sess
		metrics.SetActiveSessions(len(s.sessions))
		s.logger.Info("session opened", zap.Uint("user_id", v.UserID), zap.String("username", v.Username))
	}
	s.mu.Unlock()

	sess.touch(s.now())
	return sess
}

func (s *Store) newSession(v models.Viewer) *Session {
	logger := s.logger.With(zap.Uint("user_id", v.UserID))
	nav := &Navigator{}
	return &Session{
		Viewer: v,
		Nav:    nav,
		Feed: viewmodel.NewFeed(s.auth, nav,
			s.provider.PostFetcher(v), s.provider.StoryFetcher(v), logger),
		Notifications: viewmodel.NewNotificationFeed(s.provider.NotificationFetcher(v), logger),
		Search: viewmodel.NewSearch(s.provider.UserSearcher(v), logger,
			viewmodel.WithDebounce(s.debounce),
			viewmodel.WithRecent(s.provider.RecentSearches(v))),
		Composer: viewmodel.NewComposer(s.provider.PostPublisher(v), nav, logger),
		Profile:  viewmodel.NewProfile(s.provider.ProfileFetcher(v), logger),
		postOpts: s.postOpts,
		posts:    make(map[string]*viewmodel.PostInteraction),
	}
}

// EvictIdle drops sessions unused for longer than timeout and returns how many were dropped
func (s *Store) EvictIdle(timeout time.Duration) int {
	cutoff := s.now().Add(-timeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	metrics.SetActiveSessions(len(s.sessions))
	return evicted
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
