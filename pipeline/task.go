// Package pipeline runs the pipeline stages as a dependency-ordered task
// DAG with per-task retries, optional NATS progress events, and optional
// Prometheus metrics.
package pipeline

import "context"

// Task is one pipeline stage. Deps name the tasks that must complete
// before this one may start.
type Task struct {
	Name string
	Deps []string
	Run  func(ctx context.Context) error
}
