package audit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	stubTimelineRepo
	calls int
}

func (c *countingRepo) Timeline(ctx context.Context, filters TimelineFilters, limit, offset int) ([]StoredEvent, error) {
	c.calls++
	return c.stubTimelineRepo.Timeline(ctx, filters, limit, offset)
}

func newCachedService(t *testing.T, repo Repository) (*Service, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Minute)
	return NewService(repo, cache), cache
}

func TestTimelineCachesUntilBump(t *testing.T) {
	at := time.Date(2024, 9, 17, 10, 0, 0, 0, time.UTC)
	repo := &countingRepo{stubTimelineRepo: stubTimelineRepo{rows: []StoredEvent{storedEvent("a", at)}}}
	svc, cache := newCachedService(t, repo)
	ctx := context.Background()

	first, err := svc.Timeline(ctx, TimelineFilters{})
	require.NoError(t, err)
	require.Len(t, first.Rows, 1)
	assert.Equal(t, 1, repo.calls)

	second, err := svc.Timeline(ctx, TimelineFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second read served from cache")
	assert.Equal(t, first.Rows, second.Rows)

	require.NoError(t, cache.Bump(ctx))
	repo.rows = append(repo.rows, storedEvent("b", at.Add(-time.Hour)))

	third, err := svc.Timeline(ctx, TimelineFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "bump invalidates cached pages")
	assert.Len(t, third.Rows, 2)
}

func TestTimelineCacheKeyVariesByFilter(t *testing.T) {
	repo := &countingRepo{}
	svc, _ := newCachedService(t, repo)
	ctx := context.Background()

	_, err := svc.Timeline(ctx, TimelineFilters{Type: "teacher_registered_as_ect"})
	require.NoError(t, err)
	_, err = svc.Timeline(ctx, TimelineFilters{Type: "teacher_mentorship_updated"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "distinct filters never share a cache entry")
}
