package viewmodel

import (
	"context"
	"sync"

	"github.com/anonto42/picgram/backend/internal/metrics"
	"github.com/anonto42/picgram/backend/internal/models"
	"go.uber.org/zap"
)

type ProfileView struct {
	Loading bool                  `json:"loading"`
	Summary models.ProfileSummary `json:"summary"`
	Posts   []models.ProfilePost  `json:"posts"`
}

// Profile owns the viewer's profile header and post grid
type Profile struct {
	mu sync.Mutex

	fetcher ProfileFetcher
	logger  *zap.Logger

	loading bool
	loaded  bool
	summary models.ProfileSummary
	posts   []models.ProfilePost
}

func NewProfile(fetcher ProfileFetcher, logger *zap.Logger) *Profile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profile{fetcher: fetcher, logger: logger, loading: true}
}

func (p *Profile) Load(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	summary, posts, err := p.fetcher.FetchProfile(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		metrics.CollaboratorFailed("profile")
		p.logger.Error("failed to fetch profile", zap.Error(err))
		return
	}
	p.loaded = true
	p.summary = summary
	p.posts = append([]models.ProfilePost(nil), posts...)
}

// Loaded reports whether a fetch has ever succeeded
func (p *Profile) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *Profile) View() ProfileView {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := ProfileView{Loading: p.loading, Summary: p.summary}
	if !p.loading {
		v.Posts = append([]models.ProfilePost{}, p.posts...)
	}
	return v
}
