package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cppla/dailycheckin/calendar"
	"github.com/cppla/dailycheckin/utils"
)

const (
	cacheKeyPrefix  = "checkin:dates:"
	cacheGenPrefix  = "checkin:gen:"
	defaultCacheTTL = time.Hour
	redisOpTimeout  = 2 * time.Second
)

// CachedStore fronts a LedgerStore with a Redis read cache.
// Redis faults never fail a request: reads fall through to the inner store.
//
// Entries are keyed by a per-user generation that Add increments after every insert.
// A reader only fills the entry of the generation it observed before reading the inner
// store, and only if that entry is still empty, so a slow read can never hide a newer write.
type CachedStore struct {
	inner LedgerStore
	rc    *redis.Client
	ttl   time.Duration
}

// NewCachedStore wraps inner. A nil client disables caching and returns inner unchanged.
func NewCachedStore(inner LedgerStore, rc *redis.Client, ttl time.Duration) LedgerStore {
	if rc == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{inner: inner, rc: rc, ttl: ttl}
}

type cachedLedger struct {
	Exists bool     `json:"exists"`
	Dates  []string `json:"dates"`
}

func cacheKey(userID string, gen int64) string {
	return cacheKeyPrefix + userID + ":" + strconv.FormatInt(gen, 10)
}

func genKey(userID string) string {
	return cacheGenPrefix + userID
}

func (s *CachedStore) Find(ctx context.Context, userID string) (calendar.DateSet, bool, error) {
	gen, genOK := s.generation(ctx, userID)
	if genOK {
		if entry, ok := s.get(ctx, userID, gen); ok {
			return calendar.NewDateSet(entry.Dates...), entry.Exists, nil
		}
	}

	dates, exists, err := s.inner.Find(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if genOK {
		s.fill(ctx, userID, gen, cachedLedger{Exists: exists, Dates: dates.Sorted()})
	}
	return dates, exists, nil
}

func (s *CachedStore) Add(ctx context.Context, userID, date string) error {
	if err := s.inner.Add(ctx, userID, date); err != nil {
		return err
	}
	s.bump(ctx, userID)
	return nil
}

// generation returns the user's current cache generation; false when Redis cannot be read.
func (s *CachedStore) generation(ctx context.Context, userID string) (int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	gen, err := s.rc.Get(ctx, genKey(userID)).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		utils.Sugar.Debugw("ledger cache generation failed", "user_id", userID, "err", err)
		return 0, false
	}
}

func (s *CachedStore) get(ctx context.Context, userID string, gen int64) (cachedLedger, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	var entry cachedLedger
	b, err := s.rc.Get(ctx, cacheKey(userID, gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Sugar.Debugw("ledger cache get failed", "user_id", userID, "err", err)
		}
		return entry, false
	}
	if err := json.Unmarshal(b, &entry); err != nil {
		return entry, false
	}
	return entry, true
}

func (s *CachedStore) fill(ctx context.Context, userID string, gen int64, entry cachedLedger) {
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := s.rc.SetNX(ctx, cacheKey(userID, gen), b, s.ttl).Err(); err != nil {
		utils.Sugar.Warnw("ledger cache set failed", "user_id", userID, "err", err)
	}
}

// bump moves the user to a new generation. The counter outlives the entries it names so an
// expired counter cannot resurrect an old entry.
func (s *CachedStore) bump(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	_, err := s.rc.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(userID))
		p.Expire(ctx, genKey(userID), 2*s.ttl)
		return nil
	})
	if err != nil {
		utils.Sugar.Warnw("ledger cache invalidate failed", "user_id", userID, "err", err)
	}
}
