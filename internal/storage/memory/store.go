package memory

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spaolacci/murmur3"
)

// Entry is the stored form of a key.
type Entry struct {
	Value string

	// ExpiresAt is the instant the entry stops being visible.
	// The zero value means the entry never expires.
	ExpiresAt time.Time
}

// HasExpiry reports whether the entry carries an expiry.
func (e Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// Expired reports whether the entry is expired at now.
// An entry is expired from its ExpiresAt instant onward.
func (e Entry) Expired(now time.Time) bool {
	return e.HasExpiry() && !now.Before(e.ExpiresAt)
}

// Store is a concurrent string map with lazy per-key expiry.
type Store struct {
	data *xsync.MapOf[string, Entry]

	now      func() time.Time
	onExpire func(key string)
	presize  int
}

// Option configures the Store.
type Option func(*Store)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithExpireHook registers fn to run after Get deletes an expired key.
// fn runs outside the map's internal lock.
func WithExpireHook(fn func(key string)) Option {
	return func(s *Store) {
		s.onExpire = fn
	}
}

// WithPresize sizes the map for n keys up front.
func WithPresize(n int) Option {
	return func(s *Store) {
		s.presize = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	var mapOpts []func(*xsync.MapConfig)
	if s.presize > 0 {
		mapOpts = append(mapOpts, xsync.WithPresize(s.presize))
	}
	s.data = xsync.NewMapOfWithHasher[string, Entry](hashKey, mapOpts...)

	return s
}

func hashKey(key string, seed uint64) uint64 {
	return murmur3.Sum64WithSeed([]byte(key), uint32(seed))
}

// Put stores value under key, replacing any previous value and expiry.
// A zero expiresAt stores the value without expiry.
func (s *Store) Put(key, value string, expiresAt time.Time) {
	s.data.Store(key, Entry{Value: value, ExpiresAt: expiresAt})
}

// Get returns the value stored under key.
//
// If the entry has expired it is deleted and Get reports false, exactly as
// for a key that was never set.
func (s *Store) Get(key string) (string, bool) {
	now := s.now()

	var (
		value   string
		ok      bool
		expired bool
	)

	s.data.Compute(key, func(e Entry, loaded bool) (Entry, bool) {
		// case the key doesn't exist; delete so Compute doesn't create it
		if !loaded {
			return e, true
		}

		if e.Expired(now) {
			expired = true
			return e, true
		}

		value, ok = e.Value, true
		return e, false
	})

	if expired && s.onExpire != nil {
		s.onExpire(key)
	}

	return value, ok
}

// Lookup returns the raw entry for key without applying expiry.
func (s *Store) Lookup(key string) (Entry, bool) {
	return s.data.Load(key)
}

// Len returns the number of entries held, including expired entries that
// have not been read since they expired.
func (s *Store) Len() int {
	return s.data.Size()
}
