// Package stats tracks in-process request statistics.
//
// The counter is deliberately in-memory only: it starts at zero on every
// process start and is never persisted. It exists to illustrate pod-local
// state in an orchestrated deployment, not to provide durable metrics.
package stats

import (
	"math"
	"sync/atomic"
	"time"
)

// RequestCounter counts requests handled since process start. Increments are
// atomic, so the count observed by concurrent handlers is exact.
type RequestCounter struct {
	count atomic.Int64
	start time.Time
}

// NewRequestCounter returns a counter starting at zero. The construction
// instant is recorded as the process start time used for uptime reporting.
func NewRequestCounter() *RequestCounter {
	return &RequestCounter{start: time.Now()}
}

// Inc increments the counter and returns the post-increment value.
func (c *RequestCounter) Inc() int64 {
	return c.count.Add(1)
}

// Value returns the current counter value.
func (c *RequestCounter) Value() int64 {
	return c.count.Load()
}

// StartTime returns the instant the counter was constructed.
func (c *RequestCounter) StartTime() time.Time {
	return c.start
}

// UptimeSeconds returns seconds elapsed since construction, rounded to two
// decimal places.
func (c *RequestCounter) UptimeSeconds() float64 {
	secs := time.Since(c.start).Seconds()
	return math.Round(secs*100) / 100
}
