package errors

import (
	"sync"
)

// Collector accumulates row-level errors during a pipeline run. Counts are
// kept per kind; a bounded sample of full errors is retained for the cleaning
// report so a run over millions of rows cannot exhaust memory.
type Collector struct {
	mu         sync.Mutex
	counts     map[Kind]int
	samples    []*RowError
	sampleSize int
}

// NewCollector creates a collector retaining at most sampleSize errors
// verbatim. A zero or negative sampleSize disables sampling.
func NewCollector(sampleSize int) *Collector {
	return &Collector{
		counts:     make(map[Kind]int),
		sampleSize: sampleSize,
	}
}

// Add records a row error.
func (c *Collector) Add(err *RowError) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[err.Kind]++
	if len(c.samples) < c.sampleSize {
		c.samples = append(c.samples, err)
	}
}

// Count returns the number of errors recorded for a kind.
func (c *Collector) Count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kind]
}

// Total returns the number of errors recorded across all kinds.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// CountsByKind returns a copy of the per-kind counts with string keys,
// ready for the run summary.
func (c *Collector) CountsByKind() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for kind, n := range c.counts {
		out[string(kind)] = n
	}
	return out
}

// Samples returns the retained error samples in arrival order.
func (c *Collector) Samples() []*RowError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*RowError, len(c.samples))
	copy(out, c.samples)
	return out
}

// Merge folds another collector's counts and samples into this one,
// respecting the sample bound.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	other.mu.Lock()
	counts := make(map[Kind]int, len(other.counts))
	for k, n := range other.counts {
		counts[k] = n
	}
	samples := make([]*RowError, len(other.samples))
	copy(samples, other.samples)
	other.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, n := range counts {
		c.counts[k] += n
	}
	for _, s := range samples {
		if len(c.samples) >= c.sampleSize {
			break
		}
		c.samples = append(c.samples, s)
	}
}
