package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters per route. Requests accumulate total
// latency alongside the hit count; errors are keyed by domain error code.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	latency  map[string]time.Duration
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		latency:  make(map[string]time.Duration),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a finished request and its duration.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(method, path, strconv.Itoa(status))
	m.mu.Lock()
	m.requests[key]++
	m.latency[key] += duration
	m.mu.Unlock()
}

// RecordError counts a request that ended in a domain error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.errors[routeKey(method, path, code)]++
	m.mu.Unlock()
}

func routeKey(method, path, suffix string) string {
	return method + " " + path + " " + suffix
}
