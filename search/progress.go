package search

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many queries of a batch have completed.
// It is safe for concurrent use by pool workers.
type ProgressTracker struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	done     int
	every    int
	reported int
	began    time.Time
	running  bool
}

// NewProgressTracker creates a tracker for total queries that writes a
// progress line to w every `every` completed queries.
func NewProgressTracker(w io.Writer, total, every int) *ProgressTracker {
	if every < 1 {
		every = 1
	}
	return &ProgressTracker{w: w, total: total, every: every}
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.began = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Increment records delta completed queries.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+delta, p.total)
	if p.done-p.reported >= p.every {
		p.print()
		p.reported = p.done
	}
}

// Finish prints the final line and stops tracking.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = p.total
	p.print()
	fmt.Fprintln(p.w)
	p.running = false
}

// Done returns the number of completed queries.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Elapsed returns the time since Start, or zero before Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.began.IsZero() {
		return 0
	}
	return time.Since(p.began)
}

// print writes the progress line. Callers hold mu.
func (p *ProgressTracker) print() {
	pct := 0.0
	if p.total > 0 {
		pct = float64(p.done) * 100 / float64(p.total)
	}
	rate := 0.0
	if secs := time.Since(p.began).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	fmt.Fprintf(p.w, "\rsearched %d/%d queries (%.1f%%, %.1f queries/s)", p.done, p.total, pct, rate)
}
