package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysesCreatedTotal  atomic.Uint64
	analysesRejectedTotal atomic.Uint64
	skillTogglesTotal     atomic.Uint64
	persistFlushesTotal   atomic.Uint64
	persistFailuresTotal  atomic.Uint64
	panicsRecoveredTotal  atomic.Uint64
	throttledTotal        atomic.Uint64

	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500})

	requestsMu    sync.Mutex
	requestsTotal = map[requestKey]uint64{}
)

type requestKey struct {
	method string
	route  string
	status int
}

// IncAnalysesCreated counts analyses saved to history.
func IncAnalysesCreated() {
	analysesCreatedTotal.Add(1)
}

// IncAnalysesRejected counts analyses refused by validation.
func IncAnalysesRejected() {
	analysesRejectedTotal.Add(1)
}

// IncSkillToggles counts confidence toggles.
func IncSkillToggles() {
	skillTogglesTotal.Add(1)
}

// IncPersistFlushes counts debounced writes reaching the store.
func IncPersistFlushes() {
	persistFlushesTotal.Add(1)
}

// IncPersistFailures counts debounced writes the store rejected.
func IncPersistFailures() {
	persistFailuresTotal.Add(1)
}

// IncPanicsRecovered counts handler panics turned into 500 responses.
func IncPanicsRecovered() {
	panicsRecoveredTotal.Add(1)
}

// IncThrottled counts requests refused by the rate limiter.
func IncThrottled() {
	throttledTotal.Add(1)
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, durationMs float64) {
	if durationMs < 0 {
		durationMs = 0
	}
	requestDuration.Observe(durationMs)
	requestsMu.Lock()
	requestsTotal[requestKey{method: method, route: route, status: status}]++
	requestsMu.Unlock()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analyses_created_total", "Total analyses saved to history", analysesCreatedTotal.Load())
	writeCounter(&buf, "analyses_rejected_total", "Total analyses rejected by validation", analysesRejectedTotal.Load())
	writeCounter(&buf, "skill_toggles_total", "Total skill confidence toggles", skillTogglesTotal.Load())
	writeCounter(&buf, "persist_flushes_total", "Total debounced writes flushed", persistFlushesTotal.Load())
	writeCounter(&buf, "persist_failures_total", "Total debounced writes that failed", persistFailuresTotal.Load())
	writeCounter(&buf, "panics_recovered_total", "Total handler panics recovered", panicsRecoveredTotal.Load())
	writeCounter(&buf, "requests_throttled_total", "Total requests refused by the rate limiter", throttledTotal.Load())
	writeRequests(&buf)
	writeHistogram(&buf, "http_request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeRequests(buf *bytes.Buffer) {
	requestsMu.Lock()
	keys := make([]requestKey, 0, len(requestsTotal))
	for k := range requestsTotal {
		keys = append(keys, k)
	}
	values := make(map[requestKey]uint64, len(requestsTotal))
	for k, v := range requestsTotal {
		values[k] = v
	}
	requestsMu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].route != keys[j].route {
			return keys[i].route < keys[j].route
		}
		if keys[i].method != keys[j].method {
			return keys[i].method < keys[j].method
		}
		return keys[i].status < keys[j].status
	})

	fmt.Fprintf(buf, "# HELP http_requests_total Total HTTP requests\n")
	fmt.Fprintf(buf, "# TYPE http_requests_total counter\n")
	for _, k := range keys {
		fmt.Fprintf(buf, "http_requests_total{method=%q,route=%q,status=\"%d\"} %d\n", k.method, k.route, k.status, values[k])
	}
}

// writeHistogram emits cumulative buckets; Observe stores per-bucket counts.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
