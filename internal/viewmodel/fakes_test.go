package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
)

var errBackend = errors.New("backend unavailable")

// manualTimer captures heart burst resets so tests decide when they fire
type manualTimer struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualTimer) afterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualTimer) fireAll() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

func (m *manualTimer) fireNext() {
	m.mu.Lock()
	f := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	f()
}

type recordingNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNav) RedirectTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNav) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

type staticAuth bool

func (a staticAuth) IsAuthenticated(context.Context) bool { return bool(a) }

type stubPosts struct {
	posts []models.Post
	err   error
}

func (s *stubPosts) FetchPosts(context.Context) ([]models.Post, error) {
	return s.posts, s.err
}

type stubStories struct {
	stories []models.Story
	err     error
}

func (s *stubStories) FetchStories(context.Context) ([]models.Story, error) {
	return s.stories, s.err
}

type stubNotifications struct {
	notifications []models.Notification
	err           error
}

func (s *stubNotifications) FetchNotifications(context.Context) ([]models.Notification, error) {
	return s.notifications, s.err
}

type markingNotifications struct {
	stubNotifications
	marked    []string
	allMarked int
	err       error
}

func (m *markingNotifications) MarkNotificationRead(_ context.Context, id string) error {
	m.marked = append(m.marked, id)
	return m.err
}

func (m *markingNotifications) MarkAllNotificationsRead(context.Context) error {
	m.allMarked++
	return m.err
}

type stubPublisher struct {
	mu     sync.Mutex
	drafts []models.PostDraft
	err    error
}

func (s *stubPublisher) PublishPost(ctx context.Context, draft models.PostDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append(s.drafts, draft)
	return s.err
}

func (s *stubPublisher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

type stubProfile struct {
	summary models.ProfileSummary
	posts   []models.ProfilePost
	err     error
}

func (s *stubProfile) FetchProfile(context.Context) (models.ProfileSummary, []models.ProfilePost, error) {
	return s.summary, s.posts, s.err
}

// gatedSearcher answers a query only once its gate is opened, ignoring
// cancellation so late answers really arrive late
type gatedSearcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	results map[string][]models.SearchableUser
	errs    map[string]error
}

func newGatedSearcher() *gatedSearcher {
	return &gatedSearcher{
		gates:   make(map[string]chan struct{}),
		results: make(map[string][]models.SearchableUser),
		errs:    make(map[string]error),
	}
}

func (g *gatedSearcher) gate(query string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[query]
	if !ok {
		ch = make(chan struct{})
		g.gates[query] = ch
	}
	return ch
}

func (g *gatedSearcher) release(query string) { close(g.gate(query)) }

func (g *gatedSearcher) SearchUsers(_ context.Context, query string) ([]models.SearchableUser, error) {
	<-g.gate(query)
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.results[query], g.errs[query]
}

// directorySearcher filters a fixed user list immediately
type directorySearcher []models.SearchableUser

func (d directorySearcher) SearchUsers(_ context.Context, query string) ([]models.SearchableUser, error) {
	var out []models.SearchableUser
	for _, u := range d {
		if containsFold(u.Username, query) || containsFold(u.Name, query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
