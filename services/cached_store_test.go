package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/dailycheckin/calendar"
)

// countingStore is an in-memory LedgerStore that counts Find calls.
// afterFind, when set, runs after the snapshot is taken and before Find returns.
type countingStore struct {
	mu        sync.Mutex
	ledgers   map[string]calendar.DateSet
	finds     int
	afterFind func()
}

func newCountingStore() *countingStore {
	return &countingStore{ledgers: map[string]calendar.DateSet{}}
}

func (s *countingStore) Find(_ context.Context, userID string) (calendar.DateSet, bool, error) {
	s.mu.Lock()
	s.finds++
	d, ok := s.ledgers[userID]
	dates := calendar.NewDateSet(d.Sorted()...)
	hook := s.afterFind
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return dates, ok, nil
}

func (s *countingStore) findCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finds
}

func (s *countingStore) Add(_ context.Context, userID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[userID] = calendar.NewDateSet(append(s.ledgers[userID].Sorted(), date)...)
	return nil
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return mr, rc
}

func TestNewCachedStoreWithoutRedis(t *testing.T) {
	inner := newCountingStore()
	assert.Same(t, inner, NewCachedStore(inner, nil, time.Minute))
}

func TestCachedStoreServesRepeatReadsFromRedis(t *testing.T) {
	mr, rc := newTestRedis(t)
	inner := newCountingStore()
	store := NewCachedStore(inner, rc, time.Minute)
	ctx := context.Background()

	require.NoError(t, inner.Add(ctx, "alice", "2024-01-01"))

	for i := 0; i < 3; i++ {
		dates, exists, err := store.Find(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, []string{"2024-01-01"}, dates.Sorted())
	}
	assert.Equal(t, 1, inner.findCount())
	assert.True(t, mr.Exists(cacheKey("alice", 0)))
	assert.Equal(t, time.Minute, mr.TTL(cacheKey("alice", 0)))
}

func TestCachedStoreInvalidatesOnAdd(t *testing.T) {
	mr, rc := newTestRedis(t)
	inner := newCountingStore()
	store := NewCachedStore(inner, rc, time.Minute)
	ctx := context.Background()

	_, exists, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, mr.Exists(cacheKey("alice", 0)))

	require.NoError(t, store.Add(ctx, "alice", "2024-01-03"))
	gen, err := mr.Get(genKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
	assert.Equal(t, 2*time.Minute, mr.TTL(genKey("alice")))

	dates, exists, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"2024-01-03"}, dates.Sorted())
	assert.True(t, mr.Exists(cacheKey("alice", 1)))
}

func TestCachedStoreFallsThroughWhenRedisIsDown(t *testing.T) {
	mr, rc := newTestRedis(t)
	inner := newCountingStore()
	store := NewCachedStore(inner, rc, time.Minute)
	ctx := context.Background()
	mr.Close()

	require.NoError(t, store.Add(ctx, "alice", "2024-01-03"))
	dates, exists, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"2024-01-03"}, dates.Sorted())
}

func TestCachedStoreIgnoresCorruptEntries(t *testing.T) {
	mr, rc := newTestRedis(t)
	inner := newCountingStore()
	store := NewCachedStore(inner, rc, time.Minute)
	ctx := context.Background()

	require.NoError(t, inner.Add(ctx, "alice", "2024-01-03"))
	require.NoError(t, mr.Set(cacheKey("alice", 0), "not json"))

	dates, _, err := store.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-03"}, dates.Sorted())
	assert.Equal(t, 1, inner.findCount())
}

func TestLedgerServiceWithCache(t *testing.T) {
	_, rc := newTestRedis(t)
	store := NewCachedStore(NewGormStore(newTestDB(t)), rc, time.Minute)
	svc := NewLedgerService(store, calendar.FixedClock(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	dates, err := svc.GetLedger(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, dates)

	dates, err = svc.CheckIn(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-03"}, dates)

	dates, err = svc.GetLedger(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-03"}, dates)
}

func TestCachedStoreSlowReadDoesNotHideCheckIn(t *testing.T) {
	_, rc := newTestRedis(t)
	inner := newCountingStore()
	store := NewCachedStore(inner, rc, time.Minute)
	svc := NewLedgerService(store, calendar.FixedClock(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	snapshotTaken := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	inner.mu.Lock()
	inner.afterFind = func() {
		once.Do(func() {
			close(snapshotTaken)
			<-release
		})
	}
	inner.mu.Unlock()

	type result struct {
		dates []string
		err   error
	}
	slow := make(chan result, 1)
	go func() {
		dates, err := svc.GetLedger(ctx, "alice")
		slow <- result{dates, err}
	}()
	<-snapshotTaken

	dates, err := svc.CheckIn(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-03"}, dates)

	close(release)
	stale := <-slow
	require.NoError(t, stale.err)
	assert.Empty(t, stale.dates)

	dates, err = svc.GetLedger(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-03"}, dates)
}
