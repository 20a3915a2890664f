// Package historycache caches persisted session history in memory.
package historycache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.HistoryStore       = (*Store)(nil)
	_ driven.HistoryInvalidator = (*Store)(nil)
)

// Default expiry settings.
const (
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Store decorates a HistoryStore, caching each session's pairs until they
// are invalidated or expire.
type Store struct {
	next  driven.HistoryStore
	cache *cache.Cache
}

// New wraps next. Non-positive durations fall back to the defaults.
func New(next driven.HistoryStore, ttl, cleanup time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &Store{
		next:  next,
		cache: cache.New(ttl, cleanup),
	}
}

// ListPersistedExchanges returns cached pairs or loads them from the wrapped store.
// Callers receive a copy and may modify it.
func (s *Store) ListPersistedExchanges(ctx context.Context, sessionID string) ([]domain.QuestionAnswerPair, error) {
	if cached, ok := s.cache.Get(sessionID); ok {
		logger.Debug("History cache hit for session %s", sessionID)
		return clonePairs(cached.([]domain.QuestionAnswerPair)), nil
	}

	pairs, err := s.next.ListPersistedExchanges(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(sessionID, clonePairs(pairs))
	return pairs, nil
}

// Invalidate drops the cached pairs of a session.
func (s *Store) Invalidate(sessionID string) {
	s.cache.Delete(sessionID)
}

// Flush drops every cached session.
func (s *Store) Flush() {
	s.cache.Flush()
}

func clonePairs(pairs []domain.QuestionAnswerPair) []domain.QuestionAnswerPair {
	out := make([]domain.QuestionAnswerPair, len(pairs))
	copy(out, pairs)
	return out
}
