package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters for the /metrics endpoint.
type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	conflicts       uint64
	totalDurationMs uint64
	approvals       uint64
	denials         uint64
	leaveFiled      uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	if status == 409 {
		atomic.AddUint64(&c.conflicts, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// LeaveFiled counts a newly created leave request.
func (c *Collector) LeaveFiled() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.leaveFiled, 1)
}

// LeaveDecided counts a successful approval or denial.
func (c *Collector) LeaveDecided(approved bool) {
	if c == nil {
		return
	}
	if approved {
		atomic.AddUint64(&c.approvals, 1)
		return
	}
	atomic.AddUint64(&c.denials, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"clientErrorsTotal":  atomic.LoadUint64(&c.clientErrors),
		"errorsTotal":        atomic.LoadUint64(&c.serverErrors),
		"conflictsTotal":     atomic.LoadUint64(&c.conflicts),
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"leaveFiledTotal":    atomic.LoadUint64(&c.leaveFiled),
		"leaveApprovedTotal": atomic.LoadUint64(&c.approvals),
		"leaveDeniedTotal":   atomic.LoadUint64(&c.denials),
	}
}
