package observability

import (
	"strconv"
	"sync"
	"time"
)

type routeStats struct {
	count         int64
	totalDuration time.Duration
}

// Metrics keeps in-process request and error counters. There is no
// exporter; the counters exist so operators can inspect them from a
// debugger or a future admin endpoint without changing call sites.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*routeStats
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*routeStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest accumulates count and latency for a route/status pair.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &routeStats{}
		m.requests[key] = stats
	}
	stats.count++
	stats.totalDuration += duration
}

// RecordError counts mapped error codes per route.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method+" "+path+" "+code]++
}
