package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// runCounter numbers runs within the process
var runCounter uint64

// Run is the context of one pipeline execution
type Run struct {
	ID        string    // Unique run identifier (UUID), carried by every event
	Seq       uint64    // Per-process sequence number
	Active    bool      // Whether the run is still in progress
	StartTime time.Time // When the run began
}

// NewRun creates a new run with a unique ID
func NewRun() *Run {
	return &Run{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&runCounter, 1),
		Active:    true,
		StartTime: time.Now(),
	}
}

// Close marks the run as finished and returns its duration
func (r *Run) Close() time.Duration {
	r.Active = false
	return time.Since(r.StartTime)
}
