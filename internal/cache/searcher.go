package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/viewmodel"
	"go.uber.org/zap"
)

// Searcher memoises user search results per viewer and query.
// Cache failures are logged and fall through to the wrapped searcher.
type Searcher struct {
	next   viewmodel.UserSearcher
	cache  Cache
	ttl    time.Duration
	scope  string
	logger *zap.Logger
}

func NewSearcher(next viewmodel.UserSearcher, c Cache, ttl time.Duration, scope string, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{next: next, cache: c, ttl: ttl, scope: scope, logger: logger}
}

// SearchKey folds case only; whitespace is significant to the LIKE match
func SearchKey(scope, query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(query)))
	return "search:" + scope + ":" + hex.EncodeToString(sum[:])
}

func (s *Searcher) SearchUsers(ctx context.Context, query string) ([]models.SearchableUser, error) {
	key := SearchKey(s.scope, query)

	cached, err := GetJSON[[]models.SearchableUser](ctx, s.cache, key)
	if err == nil {
		return *cached, nil
	}
	if !errors.Is(err, ErrMiss) {
		s.logger.Warn("search cache read failed", zap.String("key", key), zap.Error(err))
	}

	results, err := s.next.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := SetJSON(ctx, s.cache, key, results, s.ttl); err != nil {
		s.logger.Warn("search cache write failed", zap.String("key", key), zap.Error(err))
	}
	return results, nil
}
