// Package metrics provides lightweight performance counters for gv.
//
// Counters cover the data plane: fetch timings, dataset reload cost, and
// the detail cache hit rate. Collection is in-memory with atomic
// operations, enabled by default, and disabled with GUILDVIEW_METRICS=0.
// The companion server exposes a snapshot at /debug/metrics; the
// browser's counters stay in-process.
//
// Usage:
//
//	func (s *Store) LoadDataset(ctx context.Context) (source.Dataset, error) {
//	    defer metrics.Timer(metrics.StoreLoad)()
//	    // ... query
//	}
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

// enabled controls whether metrics are collected.
// Defaults to true unless GUILDVIEW_METRICS=0 is set.
var enabled = os.Getenv("GUILDVIEW_METRICS") != "0"

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of metrics collection.
func SetEnabled(e bool) {
	enabled = e
}

// TimingMetric tracks timing statistics for a named operation.
// All methods are thread-safe using atomic operations.
type TimingMetric struct {
	name    string
	count   int64
	totalNs int64
	maxNs   int64
	minNs   int64 // 0 means not set
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record records a single timing measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !enabled {
		return
	}
	ns := d.Nanoseconds()

	atomic.AddInt64(&m.count, 1)
	atomic.AddInt64(&m.totalNs, ns)

	// Update max atomically using compare-and-swap
	for {
		old := atomic.LoadInt64(&m.maxNs)
		if ns <= old || atomic.CompareAndSwapInt64(&m.maxNs, old, ns) {
			break
		}
	}

	// Update min atomically using compare-and-swap
	for {
		old := atomic.LoadInt64(&m.minNs)
		if old != 0 && ns >= old {
			break
		}
		if atomic.CompareAndSwapInt64(&m.minNs, old, ns) {
			break
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string {
	return m.name
}

// Count returns the number of recorded measurements.
func (m *TimingMetric) Count() int64 {
	return atomic.LoadInt64(&m.count)
}

// TotalNs returns the total time in nanoseconds.
func (m *TimingMetric) TotalNs() int64 {
	return atomic.LoadInt64(&m.totalNs)
}

// MaxNs returns the maximum recorded time in nanoseconds.
func (m *TimingMetric) MaxNs() int64 {
	return atomic.LoadInt64(&m.maxNs)
}

// MinNs returns the minimum recorded time in nanoseconds.
// Returns 0 if no measurements have been recorded.
func (m *TimingMetric) MinNs() int64 {
	return atomic.LoadInt64(&m.minNs)
}

// AvgNs returns the average time in nanoseconds.
// Returns 0 if no measurements have been recorded.
func (m *TimingMetric) AvgNs() int64 {
	count := atomic.LoadInt64(&m.count)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.totalNs)
	return total / count
}

// Stats returns all timing statistics at once.
func (m *TimingMetric) Stats() TimingStats {
	count := atomic.LoadInt64(&m.count)
	totalNs := atomic.LoadInt64(&m.totalNs)
	maxNs := atomic.LoadInt64(&m.maxNs)
	minNs := atomic.LoadInt64(&m.minNs)

	var avgNs int64
	if count > 0 {
		avgNs = totalNs / count
	}

	return TimingStats{
		Name:    m.name,
		Count:   count,
		TotalMs: float64(totalNs) / 1e6,
		AvgMs:   float64(avgNs) / 1e6,
		MaxMs:   float64(maxNs) / 1e6,
		MinMs:   float64(minNs) / 1e6,
	}
}

// Reset clears all recorded measurements.
func (m *TimingMetric) Reset() {
	atomic.StoreInt64(&m.count, 0)
	atomic.StoreInt64(&m.totalNs, 0)
	atomic.StoreInt64(&m.maxNs, 0)
	atomic.StoreInt64(&m.minNs, 0)
}

// TimingStats holds a snapshot of timing statistics.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	MinMs   float64 `json:"min_ms,omitempty"`
}

// Timer returns a function that records elapsed time when called.
// Use with defer for automatic timing:
//
//	defer metrics.Timer(metrics.DetailFetch)()
func Timer(m *TimingMetric) func() {
	if !enabled || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.Record(time.Since(start))
	}
}

// CacheMetric tracks hit/miss counts for a named cache.
type CacheMetric struct {
	name   string
	hits   int64
	misses int64
}

func newCacheMetric(name string) *CacheMetric {
	return &CacheMetric{name: name}
}

// Hit records a cache hit.
func (m *CacheMetric) Hit() {
	if !enabled {
		return
	}
	atomic.AddInt64(&m.hits, 1)
}

// Miss records a cache miss.
func (m *CacheMetric) Miss() {
	if !enabled {
		return
	}
	atomic.AddInt64(&m.misses, 1)
}

// Name returns the metric name.
func (m *CacheMetric) Name() string {
	return m.name
}

// Hits returns the recorded hit count.
func (m *CacheMetric) Hits() int64 {
	return atomic.LoadInt64(&m.hits)
}

// Misses returns the recorded miss count.
func (m *CacheMetric) Misses() int64 {
	return atomic.LoadInt64(&m.misses)
}

// HitRate returns hits / (hits + misses), or 0 with no lookups.
func (m *CacheMetric) HitRate() float64 {
	hits := atomic.LoadInt64(&m.hits)
	misses := atomic.LoadInt64(&m.misses)
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Stats returns a snapshot of the cache counters.
func (m *CacheMetric) Stats() CacheStats {
	return CacheStats{
		Name:    m.name,
		Hits:    m.Hits(),
		Misses:  m.Misses(),
		HitRate: m.HitRate(),
	}
}

// Reset clears the cache counters.
func (m *CacheMetric) Reset() {
	atomic.StoreInt64(&m.hits, 0)
	atomic.StoreInt64(&m.misses, 0)
}

// CacheStats holds a snapshot of cache counters.
type CacheStats struct {
	Name    string  `json:"name"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Global metrics for the gv data plane.
var (
	PageFetch     = newTimingMetric("page_fetch")
	DetailFetch   = newTimingMetric("detail_fetch")
	FacetsFetch   = newTimingMetric("facets_fetch")
	DatasetReload = newTimingMetric("dataset_reload")
	APIRequest    = newTimingMetric("api_request")
	StoreLoad     = newTimingMetric("store_load")
	ServerRequest = newTimingMetric("server_request")

	DetailCache = newCacheMetric("detail_cache")
)

// AllTimingMetrics returns all registered timing metrics.
func AllTimingMetrics() []*TimingMetric {
	return []*TimingMetric{
		PageFetch,
		DetailFetch,
		FacetsFetch,
		DatasetReload,
		APIRequest,
		StoreLoad,
		ServerRequest,
	}
}

// AllCacheMetrics returns all registered cache metrics.
func AllCacheMetrics() []*CacheMetric {
	return []*CacheMetric{DetailCache}
}

// ResetAll resets every registered metric.
func ResetAll() {
	for _, m := range AllTimingMetrics() {
		m.Reset()
	}
	for _, m := range AllCacheMetrics() {
		m.Reset()
	}
}

// Snapshot is a point-in-time view of every metric with data.
type Snapshot struct {
	Timings []TimingStats `json:"timings"`
	Caches  []CacheStats  `json:"caches"`
}

// TakeSnapshot collects stats for all metrics that recorded anything.
func TakeSnapshot() Snapshot {
	var snap Snapshot
	for _, m := range AllTimingMetrics() {
		if m.Count() > 0 {
			snap.Timings = append(snap.Timings, m.Stats())
		}
	}
	for _, m := range AllCacheMetrics() {
		if m.Hits() > 0 || m.Misses() > 0 {
			snap.Caches = append(snap.Caches, m.Stats())
		}
	}
	return snap
}
