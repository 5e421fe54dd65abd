package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/kvmesh/internal/core/service"
	"github.com/yndnr/kvmesh/internal/storage/memory"
)

// ============================================================================
// Dispatcher (no network)
// ============================================================================

func BenchmarkDispatch_Get(b *testing.B) {
	for _, n := range KeyCounts {
		b.Run(fmt.Sprintf("keys=%d", n), func(b *testing.B) {
			store := memory.New(memory.WithPresize(n))
			keys := prefillStore(store, n)
			d := service.NewDispatcher(store)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d.Dispatch([]string{"get", keys[i%n]})
			}
		})
	}
}

func BenchmarkDispatch_SetPX(b *testing.B) {
	store := memory.New()
	d := service.NewDispatcher(store)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Dispatch([]string{"set", "k", "v", "px", "60000"})
	}
}

func BenchmarkDispatch_Parallel(b *testing.B) {
	store := memory.New()
	keys := prefillStore(store, 10000)
	d := service.NewDispatcher(store)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := keys[i%len(keys)]
			if i%4 == 0 {
				d.Dispatch([]string{"set", key, "updated"})
			} else {
				d.Dispatch([]string{"get", key})
			}
			i++
		}
	})
}

// ============================================================================
// Round trip over loopback
// ============================================================================

func BenchmarkRoundTrip_Ping(b *testing.B) {
	c := newClient(b, startServer(b, memory.New()))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Do(ctx, "ping"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRoundTrip_SetGet(b *testing.B) {
	for _, size := range []int{16, 1024, 64 * 1024} {
		b.Run(fmt.Sprintf("value=%d", size), func(b *testing.B) {
			c := newClient(b, startServer(b, memory.New()))
			ctx := context.Background()
			value := strings.Repeat("x", size)

			b.SetBytes(int64(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Do(ctx, "set", "bench", value); err != nil {
					b.Fatal(err)
				}
				if _, err := c.Do(ctx, "get", "bench"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRoundTrip_Parallel(b *testing.B) {
	store := memory.New()
	keys := prefillStore(store, 10000)
	addr := startServer(b, store)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		c := newClient(b, addr)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		i := 0
		for pb.Next() {
			if _, err := c.Do(ctx, "get", keys[i%len(keys)]); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}
