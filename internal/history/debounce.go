package history

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"placement-backend/internal/analysis"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
)

// pendingUpdate is the latest unsaved confidence state of one entry.
type pendingUpdate struct {
	owner      string
	id         string
	confidence map[string]analysis.Confidence
	finalScore int
	seq        uint64
}

type pendingSlot struct {
	update pendingUpdate
	timer  *time.Timer
	seq    uint64
}

// debouncer coalesces writes per entry: each schedule restarts the entry's
// timer and only the last update is written when it fires.
type debouncer struct {
	delay time.Duration
	write func(ctx context.Context, u pendingUpdate) error

	mu       sync.Mutex
	pending  map[string]*pendingSlot
	seq      uint64
	closed   bool
	inflight sync.WaitGroup
}

func newDebouncer(delay time.Duration, write func(ctx context.Context, u pendingUpdate) error) *debouncer {
	return &debouncer{
		delay:   delay,
		write:   write,
		pending: make(map[string]*pendingSlot),
	}
}

func pendingKey(owner, id string) string {
	return owner + "|" + id
}

// schedule queues u and reports whether it was queued. It refuses once closed
// or when debouncing is disabled; the caller then writes synchronously.
func (d *debouncer) schedule(u pendingUpdate) bool {
	key := pendingKey(u.owner, u.id)

	d.mu.Lock()
	if d.closed || d.delay <= 0 {
		d.mu.Unlock()
		return false
	}
	if slot, ok := d.pending[key]; ok {
		slot.timer.Stop()
	}
	d.seq++
	seq := d.seq
	u.seq = seq
	slot := &pendingSlot{update: u, seq: seq}
	slot.timer = time.AfterFunc(d.delay, func() { d.fire(key, seq) })
	d.pending[key] = slot
	d.mu.Unlock()
	return true
}

// fire writes the slot if it is still the latest for key. The slot stays
// visible to peek until the write completes.
func (d *debouncer) fire(key string, seq uint64) {
	d.mu.Lock()
	slot, ok := d.pending[key]
	if !ok || slot.seq != seq {
		d.mu.Unlock()
		return
	}
	d.inflight.Add(1)
	d.mu.Unlock()
	defer d.inflight.Done()

	d.run(context.Background(), slot.update)
	d.release(slot.update)
}

func (d *debouncer) run(ctx context.Context, u pendingUpdate) error {
	if err := d.write(ctx, u); err != nil {
		metrics.IncPersistFailures()
		telemetry.Error("history.persist_failed", map[string]any{
			"entry_id": u.id,
			"err":      err,
		})
		return err
	}
	metrics.IncPersistFlushes()
	return nil
}

// current reports whether u is still the pending update of its entry. Slots
// stay pending until their write finishes, so a write that lost the race to a
// newer schedule, a flush or a clear finds itself replaced or gone.
func (d *debouncer) current(u pendingUpdate) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.pending[pendingKey(u.owner, u.id)]
	return ok && slot.seq == u.seq
}

// peek returns the unsaved state of an entry, if any.
func (d *debouncer) peek(owner, id string) (pendingUpdate, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.pending[pendingKey(owner, id)]
	if !ok {
		return pendingUpdate{}, false
	}
	u := slot.update
	u.confidence = copyConfidence(u.confidence)
	return u, true
}

// cancelOwner drops every unsaved update of owner.
func (d *debouncer) cancelOwner(owner string) {
	prefix := owner + "|"
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, slot := range d.pending {
		if strings.HasPrefix(key, prefix) {
			slot.timer.Stop()
			delete(d.pending, key)
		}
	}
}

// flush writes every pending update now and waits for in-flight writes. Slots
// are released only after their write.
func (d *debouncer) flush(ctx context.Context) error {
	d.mu.Lock()
	updates := make([]pendingUpdate, 0, len(d.pending))
	for _, slot := range d.pending {
		slot.timer.Stop()
		updates = append(updates, slot.update)
	}
	d.mu.Unlock()

	var errs []error
	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := d.run(ctx, u); err != nil {
			errs = append(errs, err)
		}
		d.release(u)
	}
	d.inflight.Wait()
	return errors.Join(errs...)
}

// release drops u's slot unless a newer update took it.
func (d *debouncer) release(u pendingUpdate) {
	key := pendingKey(u.owner, u.id)
	d.mu.Lock()
	if cur, ok := d.pending[key]; ok && cur.seq == u.seq {
		delete(d.pending, key)
	}
	d.mu.Unlock()
}

// close flushes and makes later schedules refuse.
func (d *debouncer) close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.flush(ctx)
}
