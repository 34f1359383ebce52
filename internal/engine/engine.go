package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/leengari/timeframe/internal/config"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/executor"
	"github.com/leengari/timeframe/internal/plan"
	"github.com/leengari/timeframe/internal/planner"
)

// Engine runs pipelines: plan, then execute, notifying observers at each phase
type Engine struct {
	loader    executor.Loader
	observers []Observer // Observers for lifecycle events
}

// Result is the outcome of one pipeline run
type Result struct {
	RunID    string
	Table    *table.Table
	Plan     string // rendered plan tree
	Duration time.Duration
}

// New creates a new Engine reading sources through loader
func New(loader executor.Loader) *Engine {
	return &Engine{
		loader:    loader,
		observers: make([]Observer, 0),
	}
}

// RunFile loads a pipeline definition and runs it. Relative source paths
// are resolved against the directory of the definition.
func (e *Engine) RunFile(path string) (*Result, error) {
	run := NewRun()

	e.notify(Event{Type: EventLoadStart, RunID: run.ID, Data: path})
	p, err := config.Load(path)
	if err != nil {
		e.fail(run, err)
		return nil, fmt.Errorf("config error: %w", err)
	}
	e.notify(Event{Type: EventLoadEnd, RunID: run.ID, Data: map[string]interface{}{
		"sources": len(p.Sources),
		"steps":   len(p.Steps),
	}})

	return e.execute(run, p, filepath.Dir(path))
}

// Run runs a pipeline; relative source paths are resolved against baseDir.
func (e *Engine) Run(p *config.Pipeline, baseDir string) (*Result, error) {
	return e.execute(NewRun(), p, baseDir)
}

func (e *Engine) execute(run *Run, p *config.Pipeline, baseDir string) (*Result, error) {
	// 1. Plan
	e.notify(Event{Type: EventPlanStart, RunID: run.ID, Data: p.Output})
	root, err := planner.Plan(p)
	if err != nil {
		e.fail(run, err)
		return nil, fmt.Errorf("planning error: %w", err)
	}
	tree := plan.PrintTree(root)
	e.notify(Event{Type: EventPlanEnd, RunID: run.ID, Data: map[string]interface{}{
		"nodes":   plan.CountNodes(root),
		"sources": plan.Sources(root),
	}})

	// 2. Execute
	e.notify(Event{Type: EventExecStart, RunID: run.ID})
	t, err := executor.Execute(root, executor.NewExecutionContext(e.loader, baseDir))
	if err != nil {
		e.fail(run, err)
		return nil, fmt.Errorf("execution error: %w", err)
	}
	duration := run.Close()
	e.notify(Event{Type: EventExecEnd, RunID: run.ID, Data: map[string]interface{}{
		"rows_returned":    t.NRow(),
		"columns_returned": t.NCol(),
		"duration":         duration,
	}})

	return &Result{
		RunID:    run.ID,
		Table:    t,
		Plan:     tree,
		Duration: duration,
	}, nil
}

func (e *Engine) fail(run *Run, err error) {
	run.Close()
	e.notify(Event{Type: EventRunFailed, RunID: run.ID, Data: err.Error()})
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
