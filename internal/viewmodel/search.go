package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
	"go.uber.org/zap"
)

const (
	// MaxRecentSearches bounds the recent searches list
	MaxRecentSearches = 5

	DefaultSearchDebounce = 300 * time.Millisecond
)

// SearchView is what the search screen renders
type SearchView struct {
	Query   string                  `json:"query"`
	Loading bool                    `json:"loading"`
	Results []models.SearchableUser `json:"results"`
	Recent  []models.SearchableUser `json:"recent"`
}

// Search owns the query, its results and the recent searches list.
// Each non-empty query runs as its own task; a task applies its results only
// while its sequence token is still the latest one issued.
type Search struct {
	mu sync.Mutex

	searcher UserSearcher
	logger   *zap.Logger
	debounce time.Duration

	query   string
	results []models.SearchableUser
	recent  []models.SearchableUser
	loading bool

	seq    uint64
	cancel context.CancelFunc
}

// SearchOption customises a Search
type SearchOption func(*Search)

// WithDebounce sets the delay between a query change and the lookup
func WithDebounce(d time.Duration) SearchOption {
	return func(s *Search) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithRecent seeds the recent searches list
func WithRecent(users []models.SearchableUser) SearchOption {
	return func(s *Search) {
		for i := len(users) - 1; i >= 0; i-- {
			s.selectLocked(users[i])
		}
	}
}

func NewSearch(searcher UserSearcher, logger *zap.Logger, opts ...SearchOption) *Search {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Search{
		searcher: searcher,
		logger:   logger,
		debounce: DefaultSearchDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuery updates the query text. A blank query clears the results at once;
// anything else starts a lookup task. The returned channel is closed when the
// task has settled, whether or not its results were applied.
func (s *Search) SetQuery(text string) <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	s.query = text
	token := s.supersedeLocked()

	if strings.TrimSpace(text) == "" {
		s.results = nil
		s.loading = false
		s.mu.Unlock()
		close(done)
		return done
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.mu.Unlock()

	metrics.SearchIssued()
	go s.run(ctx, cancel, token, text, done)
	return done
}

func (s *Search) run(ctx context.Context, cancel context.CancelFunc, token uint64, text string, done chan struct{}) {
	defer close(done)
	defer cancel()

	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			metrics.SearchDiscarded()
			return
		case <-timer.C:
		}
	}

	users, err := s.searcher.SearchUsers(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		metrics.SearchDiscarded()
		return
	}
	s.cancel = nil
	s.loading = false
	if err != nil {
		metrics.CollaboratorFailed("search")
		s.logger.Error("user search failed", zap.String("query", text), zap.Error(err))
		return
	}
	s.results = append([]models.SearchableUser(nil), users...)
}

// supersedeLocked invalidates any in-flight task and returns the new token
func (s *Search) supersedeLocked() uint64 {
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.seq
}

// SelectResult moves user to the front of the recent searches
func (s *Search) SelectResult(user models.SearchableUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectLocked(user)
}

func (s *Search) selectLocked(user models.SearchableUser) {
	recent := make([]models.SearchableUser, 0, MaxRecentSearches)
	recent = append(recent, user)
	for _, r := range s.recent {
		if len(recent) == MaxRecentSearches {
			break
		}
		if r.ID != user.ID {
			recent = append(recent, r)
		}
	}
	s.recent = recent
}

// Result looks up a row of the current results by id
func (s *Search) Result(id string) (models.SearchableUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.results {
		if u.ID == id {
			return u, true
		}
	}
	return models.SearchableUser{}, false
}

func (s *Search) RemoveRecent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.recent {
		if r.ID == id {
			s.recent = append(s.recent[:i:i], s.recent[i+1:]...)
			return
		}
	}
}

// ClearQuery empties the query and results and drops any in-flight lookup
func (s *Search) ClearQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.query = ""
	s.results = nil
	s.loading = false
}

func (s *Search) ClearAllRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
}

func (s *Search) View() SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SearchView{
		Query:   s.query,
		Loading: s.loading,
		Results: append([]models.SearchableUser{}, s.results...),
		Recent:  append([]models.SearchableUser{}, s.recent...),
	}
}
