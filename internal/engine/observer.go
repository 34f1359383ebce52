package engine

import "time"

// EventType represents different lifecycle phases of a pipeline run
type EventType string

const (
	EventLoadStart EventType = "load_start"
	EventLoadEnd   EventType = "load_end"
	EventPlanStart EventType = "plan_start"
	EventPlanEnd   EventType = "plan_end"
	EventExecStart EventType = "exec_start"
	EventExecEnd   EventType = "exec_end"
	EventRunFailed EventType = "run_failed"
)

// Event represents a lifecycle event of a pipeline run
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Run ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., config path, plan, result size)
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}
