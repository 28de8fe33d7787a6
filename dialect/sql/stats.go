package sql

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultSlowThreshold is the duration above which a statement counts as slow.
const DefaultSlowThreshold = 100 * time.Millisecond

// OpStats are the counters of one store operation, e.g. "insert".
type OpStats struct {
	Count    int64
	Rows     int64 // affected or returned
	Errors   int64
	Slow     int64
	Duration time.Duration
}

// QueryStats collects the statement statistics of a Driver, per store
// operation. It is safe for concurrent use.
type QueryStats struct {
	mu  sync.Mutex
	ops map[string]OpStats
}

// Stats returns a copy of the counters keyed by operation.
func (s *QueryStats) Stats() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot(maps.Clone(s.ops))
}

// Reset drops every counter.
func (s *QueryStats) Reset() {
	s.mu.Lock()
	s.ops = nil
	s.mu.Unlock()
}

// record accounts one statement of op and reports whether it was slow.
func (s *QueryStats) record(op string, rows int64, d, threshold time.Duration, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ops == nil {
		s.ops = make(map[string]OpStats)
	}
	o := s.ops[op]
	o.Count++
	o.Rows += rows
	o.Duration += d
	if err != nil {
		o.Errors++
	}
	slow := d > threshold
	if slow {
		o.Slow++
	}
	s.ops[op] = o
	return slow
}

// StatsSnapshot is a point-in-time copy of QueryStats.
type StatsSnapshot map[string]OpStats

// Total sums the counters of every operation.
func (s StatsSnapshot) Total() OpStats {
	var t OpStats
	for _, o := range s {
		t.Count += o.Count
		t.Rows += o.Rows
		t.Errors += o.Errors
		t.Slow += o.Slow
		t.Duration += o.Duration
	}
	return t
}

// AvgDuration returns the average statement duration.
func (o OpStats) AvgDuration() time.Duration {
	if o.Count == 0 {
		return 0
	}
	return o.Duration / time.Duration(o.Count)
}

// String lists the operations in name order, e.g.
// "find=2/5rows insert=1/1rows errors=0 slow=0".
func (s StatsSnapshot) String() string {
	var b strings.Builder
	for _, op := range slices.Sorted(maps.Keys(s)) {
		o := s[op]
		fmt.Fprintf(&b, "%s=%d/%drows ", op, o.Count, o.Rows)
	}
	t := s.Total()
	fmt.Fprintf(&b, "errors=%d slow=%d avg=%s", t.Errors, t.Slow, t.AvgDuration())
	return b.String()
}
