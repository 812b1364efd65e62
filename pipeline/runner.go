package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Runner executes a task DAG in dependency order. Tasks whose
// dependencies are all satisfied run concurrently.
type Runner struct {
	retry     RetryConfig
	manager   *RetryManager
	publisher *Publisher
	metrics   *Metrics
	logger    *slog.Logger
}

// NewRunner returns a runner. publisher and metrics may be nil.
func NewRunner(retry RetryConfig, publisher *Publisher, metrics *Metrics, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if retry.MaxAttempts < 1 {
		retry = DefaultRetryConfig()
	}
	return &Runner{
		retry:     retry,
		manager:   NewRetryManager(retry),
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run executes the tasks, honoring dependencies, and returns the first
// task error. Each run gets a fresh run ID carried on events and logs.
func (r *Runner) Run(ctx context.Context, tasks []Task) error {
	byName := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		if _, dup := byName[t.Name]; dup {
			return fmt.Errorf("duplicate task %q", t.Name)
		}
		byName[t.Name] = t
	}
	for _, t := range tasks {
		for _, dep := range t.Deps {
			if _, ok := byName[dep]; !ok {
				return fmt.Errorf("task %q depends on unknown task %q", t.Name, dep)
			}
		}
	}

	runID := uuid.NewString()
	r.logger.Info("pipeline run starting", "run_id", runID, "tasks", len(tasks))
	_ = r.publisher.Publish(TaskEvent{RunID: runID, Status: StatusStarted, Timestamp: time.Now()})

	done := make(map[string]bool, len(tasks))
	for len(done) < len(tasks) {
		ready := readyTasks(tasks, done)
		if len(ready) == 0 {
			return fmt.Errorf("dependency cycle among remaining tasks")
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, t := range ready {
			g.Go(func() error {
				return r.runTask(gctx, runID, t)
			})
		}
		if err := g.Wait(); err != nil {
			_ = r.publisher.Publish(TaskEvent{
				RunID: runID, Status: StatusFailed, Error: err.Error(), Timestamp: time.Now(),
			})
			return err
		}
		for _, t := range ready {
			done[t.Name] = true
		}
	}

	r.logger.Info("pipeline run completed", "run_id", runID)
	_ = r.publisher.Publish(TaskEvent{RunID: runID, Status: StatusCompleted, Timestamp: time.Now()})
	return nil
}

// readyTasks returns the not-yet-done tasks whose dependencies are all
// done, in name order so scheduling is deterministic.
func readyTasks(tasks []Task, done map[string]bool) []Task {
	var ready []Task
	for _, t := range tasks {
		if done[t.Name] {
			continue
		}
		ok := true
		for _, dep := range t.Deps {
			if !done[dep] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, t)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].Name < ready[j].Name })
	return ready
}

func (r *Runner) runTask(ctx context.Context, runID string, t Task) error {
	var lastErr error
	for r.manager.CanRetry(runID, t.Name) {
		attempt := r.manager.RecordAttempt(runID, t.Name)
		r.logger.Info("task starting", "run_id", runID, "task", t.Name, "attempt", attempt)
		_ = r.publisher.Publish(TaskEvent{
			RunID: runID, Task: t.Name, Status: StatusStarted, Attempt: attempt, Timestamp: time.Now(),
		})

		start := time.Now()
		err := t.Run(ctx)
		elapsed := time.Since(start)

		if err == nil {
			r.metrics.ObserveRun(t.Name, StatusSucceeded, elapsed)
			r.logger.Info("task succeeded", "run_id", runID, "task", t.Name, "duration", elapsed)
			_ = r.publisher.Publish(TaskEvent{
				RunID: runID, Task: t.Name, Status: StatusSucceeded, Attempt: attempt, Timestamp: time.Now(),
			})
			return nil
		}

		lastErr = err
		r.manager.RecordFailure(runID, t.Name, err.Error())
		r.metrics.ObserveRun(t.Name, StatusFailed, elapsed)
		r.logger.Warn("task failed", "run_id", runID, "task", t.Name, "attempt", attempt, "error", err)
		_ = r.publisher.Publish(TaskEvent{
			RunID: runID, Task: t.Name, Status: StatusFailed, Attempt: attempt,
			Error: err.Error(), Timestamp: time.Now(),
		})

		if !r.manager.CanRetry(runID, t.Name) {
			break
		}
		select {
		case <-time.After(r.retry.Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("task %s failed after %d attempts: %w", t.Name, r.retry.MaxAttempts, lastErr)
}
