package history

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"placement-backend/internal/shared/storage/kv"
)

// reactAWSJD matches exactly "react" and "aws".
var reactAWSJD = "We need React and AWS experience. " + strings.Repeat("Strong communication skills required for this role. ", 4)

type countingRepo struct {
	Repo
	mu    sync.Mutex
	saves int
}

func (r *countingRepo) Save(ctx context.Context, owner string, entries []Entry) error {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return r.Repo.Save(ctx, owner, entries)
}

func (r *countingRepo) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func newTestService(t *testing.T, debounce time.Duration) (*Service, *countingRepo, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	repo := &countingRepo{Repo: &KVRepo{Store: store}}
	svc := NewService(repo, debounce)
	fixed := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }
	n := 0
	svc.NewID = func() string {
		n++
		return "entry-" + string(rune('0'+n))
	}
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return svc, repo, store
}
