package store

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/tgienger/tboard/internal/db"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", prefix, s.n)
}

func (s *seqIDs) UUID() string  { return s.next("uuid-") }
func (s *seqIDs) Short() string { return s.next("") }

var fixedNow = time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	kv     *db.Memory
	stores *Stores
	logs   *bytes.Buffer
	clock  *time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{kv: db.NewMemory(), logs: &bytes.Buffer{}}
	now := fixedNow
	f.clock = &now
	base := []Option{
		WithIDs(&seqIDs{}),
		WithClock(func() time.Time { return *f.clock }),
		WithLogger(slog.New(slog.NewJSONHandler(f.logs, nil))),
	}
	f.stores = Open(f.kv, append(base, opts...)...)
	return f
}

func (f *fixture) advance(d time.Duration) { *f.clock = f.clock.Add(d) }

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("stream closed")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
	}
	var zero T
	return zero
}
