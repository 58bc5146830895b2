package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/db/redis"
)

type incr struct {
	key    string
	member string
	by     float64
	ttl    time.Duration
}

// mockStore implements the consumer interface for tests.
type mockStore struct {
	zincrbyFn func(ctx context.Context, key, member string, by float64, ttl time.Duration) error
	ztopFn    func(ctx context.Context, key string, n int) ([]redis.ScoredMember, error)
	delFn     func(ctx context.Context, keys ...string) error

	incrs []incr
}

func (m *mockStore) ZIncrBy(ctx context.Context, key, member string, by float64, ttl time.Duration) error {
	m.incrs = append(m.incrs, incr{key, member, by, ttl})
	if m.zincrbyFn != nil {
		return m.zincrbyFn(ctx, key, member, by, ttl)
	}
	return nil
}

func (m *mockStore) ZTop(ctx context.Context, key string, n int) ([]redis.ScoredMember, error) {
	if m.ztopFn != nil {
		return m.ztopFn(ctx, key, n)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "seekr:", 24*time.Hour), ms
}
