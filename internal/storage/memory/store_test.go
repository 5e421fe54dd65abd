package memory

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// ============================================================
// Entry Tests
// ============================================================

func TestEntry_Expired(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry Entry
		now   time.Time
		want  bool
	}{
		{"no expiry", Entry{Value: "v"}, base.Add(100 * time.Hour), false},
		{"before expiry", Entry{Value: "v", ExpiresAt: base}, base.Add(-time.Nanosecond), false},
		{"at expiry", Entry{Value: "v", ExpiresAt: base}, base, true},
		{"after expiry", Entry{Value: "v", ExpiresAt: base}, base.Add(time.Millisecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Expired(tt.now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================
// Put/Get Tests
// ============================================================

func TestStore_PutGet(t *testing.T) {
	store := New()

	store.Put("k", "v", time.Time{})

	got, ok := store.Get("k")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := New()

	if _, ok := store.Get("never-set"); ok {
		t.Error("Get() ok = true for missing key")
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (Get must not create entries)", store.Len())
	}
}

func TestStore_Overwrite(t *testing.T) {
	store := New()

	store.Put("k", "v1", time.Time{})
	store.Put("k", "v2", time.Time{})

	if got, _ := store.Get("k"); got != "v2" {
		t.Errorf("Get() = %q, want v2", got)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStore_EmptyKeyAndValue(t *testing.T) {
	store := New()
	store.Put("", "", time.Time{})

	got, ok := store.Get("")
	if !ok || got != "" {
		t.Errorf("Get(\"\") = (%q, %v), want (\"\", true)", got, ok)
	}
}

// ============================================================
// Lazy Expiry Tests
// ============================================================

func TestStore_LazyExpiry(t *testing.T) {
	clock := newFakeClock()
	store := New(WithClock(clock.Now))

	store.Put("k", "v", clock.Now().Add(100*time.Millisecond))

	clock.Advance(99 * time.Millisecond)
	if got, ok := store.Get("k"); !ok || got != "v" {
		t.Fatalf("Get() before expiry = (%q, %v), want (v, true)", got, ok)
	}

	clock.Advance(time.Millisecond)

	// Expired but not yet observed: still held.
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 before expired read", store.Len())
	}

	if _, ok := store.Get("k"); ok {
		t.Fatal("Get() at expiry ok = true, want false")
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expired read", store.Len())
	}
	if _, ok := store.Lookup("k"); ok {
		t.Error("Lookup() found expired key after deletion")
	}

	// A subsequent get is still absent.
	if _, ok := store.Get("k"); ok {
		t.Error("second Get() ok = true, want false")
	}
}

func TestStore_PutWithoutExpiryClearsExpiry(t *testing.T) {
	clock := newFakeClock()
	store := New(WithClock(clock.Now))

	store.Put("k", "v1", clock.Now().Add(10*time.Millisecond))
	store.Put("k", "v2", time.Time{})

	clock.Advance(20 * time.Millisecond)

	got, ok := store.Get("k")
	if !ok || got != "v2" {
		t.Errorf("Get() = (%q, %v), want (v2, true)", got, ok)
	}

	e, _ := store.Lookup("k")
	if e.HasExpiry() {
		t.Errorf("entry still has expiry %v", e.ExpiresAt)
	}
}

func TestStore_PutReplacesExpiry(t *testing.T) {
	clock := newFakeClock()
	store := New(WithClock(clock.Now))

	store.Put("k", "v1", clock.Now().Add(time.Hour))
	store.Put("k", "v2", clock.Now().Add(10*time.Millisecond))

	clock.Advance(10 * time.Millisecond)
	if _, ok := store.Get("k"); ok {
		t.Error("Get() ok = true, want false (new shorter expiry applies)")
	}
}

func TestStore_ExpireHook(t *testing.T) {
	clock := newFakeClock()

	var expired []string
	store := New(
		WithClock(clock.Now),
		WithExpireHook(func(key string) { expired = append(expired, key) }),
	)

	store.Put("a", "1", clock.Now().Add(time.Millisecond))
	store.Put("b", "2", time.Time{})
	clock.Advance(time.Second)

	store.Get("a")
	store.Get("a")
	store.Get("b")
	store.Get("missing")

	if len(expired) != 1 || expired[0] != "a" {
		t.Errorf("expired = %v, want [a]", expired)
	}
}

func TestStore_WithPresize(t *testing.T) {
	store := New(WithPresize(1024))
	store.Put("k", "v", time.Time{})
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

// ============================================================
// Concurrency Tests
// ============================================================

func TestStore_ConcurrentAccess(t *testing.T) {
	store := New()

	const (
		workers = 16
		ops     = 1000
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				key := "key-" + strconv.Itoa(i%32)
				val := strconv.Itoa(w) + ":" + strconv.Itoa(i)
				store.Put(key, val, time.Time{})
				if got, ok := store.Get(key); !ok || got == "" {
					t.Errorf("Get(%q) = (%q, %v)", key, got, ok)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if store.Len() != 32 {
		t.Errorf("Len() = %d, want 32", store.Len())
	}
}

func TestStore_ConcurrentExpiryDeletesOnce(t *testing.T) {
	clock := newFakeClock()

	var hookCalls atomic.Int64
	store := New(
		WithClock(clock.Now),
		WithExpireHook(func(string) { hookCalls.Add(1) }),
	)

	store.Put("k", "v", clock.Now().Add(time.Millisecond))
	clock.Advance(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.Get("k"); ok {
				t.Error("Get() ok = true for expired key")
			}
		}()
	}
	wg.Wait()

	if n := hookCalls.Load(); n != 1 {
		t.Errorf("expire hook called %d times, want 1", n)
	}
}

// ============================================================
// Benchmarks
// ============================================================

func BenchmarkStore_Get(b *testing.B) {
	store := New()
	for i := 0; i < 1024; i++ {
		store.Put("key-"+strconv.Itoa(i), "value", time.Time{})
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			store.Get("key-" + strconv.Itoa(i&1023))
			i++
		}
	})
}

func BenchmarkStore_Put(b *testing.B) {
	store := New()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			store.Put("key-"+strconv.Itoa(i&1023), "value", time.Time{})
			i++
		}
	})
}
