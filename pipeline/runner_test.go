package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietRunner(retry RetryConfig) *Runner {
	return NewRunner(retry, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, BackoffBase: time.Millisecond, BackoffMultiplier: 1.0}
}

// recorder collects task completion order.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) task(name string, deps ...string) Task {
	return Task{
		Name: name,
		Deps: deps,
		Run: func(context.Context) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.names = append(r.names, name)
			return nil
		},
	}
}

func (r *recorder) indexOf(name string) int {
	for i, n := range r.names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestRunDependencyOrder(t *testing.T) {
	rec := &recorder{}
	tasks := []Task{
		rec.task("load", "transform"),
		rec.task("extract"),
		rec.task("cube", "load"),
		rec.task("transform", "extract"),
		rec.task("validate", "cube"),
	}

	require.NoError(t, quietRunner(fastRetry(1)).Run(context.Background(), tasks))
	require.Len(t, rec.names, 5)
	assert.Less(t, rec.indexOf("extract"), rec.indexOf("transform"))
	assert.Less(t, rec.indexOf("transform"), rec.indexOf("load"))
	assert.Less(t, rec.indexOf("load"), rec.indexOf("cube"))
	assert.Less(t, rec.indexOf("cube"), rec.indexOf("validate"))
}

func TestRunRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	task := Task{
		Name: "flaky",
		Run: func(context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		},
	}

	require.NoError(t, quietRunner(fastRetry(3)).Run(context.Background(), []Task{task}))
	assert.Equal(t, 3, attempts)
}

func TestRunExhaustsAttempts(t *testing.T) {
	attempts := 0
	task := Task{
		Name: "broken",
		Run: func(context.Context) error {
			attempts++
			return errors.New("permanent")
		},
	}

	err := quietRunner(fastRetry(2)).Run(context.Background(), []Task{task})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.ErrorContains(t, err, "permanent")
	assert.Equal(t, 2, attempts)
}

func TestRunUnknownDependency(t *testing.T) {
	err := quietRunner(fastRetry(1)).Run(context.Background(), []Task{
		{Name: "a", Deps: []string{"missing"}, Run: func(context.Context) error { return nil }},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task")
}

func TestRunDetectsCycle(t *testing.T) {
	noop := func(context.Context) error { return nil }
	err := quietRunner(fastRetry(1)).Run(context.Background(), []Task{
		{Name: "a", Deps: []string{"b"}, Run: noop},
		{Name: "b", Deps: []string{"a"}, Run: noop},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestRetryManager(t *testing.T) {
	m := NewRetryManager(fastRetry(2))

	assert.True(t, m.CanRetry("run", "task"))
	assert.Equal(t, 1, m.RecordAttempt("run", "task"))
	m.RecordFailure("run", "task", "boom")
	assert.True(t, m.CanRetry("run", "task"))
	assert.Equal(t, 2, m.RecordAttempt("run", "task"))
	assert.False(t, m.CanRetry("run", "task"))

	state, ok := m.State("run", "task")
	require.True(t, ok)
	assert.Equal(t, 2, state.Attempts)
	assert.Equal(t, "boom", state.LastError)

	_, ok = m.State("run", "other")
	assert.False(t, ok)
}

func TestBackoffGrows(t *testing.T) {
	c := RetryConfig{MaxAttempts: 4, BackoffBase: time.Second, BackoffMultiplier: 2.0}
	assert.Equal(t, time.Second, c.Backoff(1))
	assert.Equal(t, 2*time.Second, c.Backoff(2))
	assert.Equal(t, 4*time.Second, c.Backoff(3))
}

func TestTaskEventJSON(t *testing.T) {
	event := TaskEvent{
		RunID:     "run-1",
		Task:      "extract",
		Status:    StatusFailed,
		Attempt:   2,
		Error:     "timeout",
		Timestamp: time.Date(2022, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"run_id": "run-1",
		"task": "extract",
		"status": "failed",
		"attempt": 2,
		"error": "timeout",
		"timestamp": "2022-03-01T12:00:00Z"
	}`, string(data))

	// Omitted fields stay out of run-level events.
	data, err = json.Marshal(TaskEvent{RunID: "run-1", Status: StatusCompleted,
		Timestamp: time.Date(2022, time.March, 1, 12, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"run_id": "run-1",
		"status": "completed",
		"timestamp": "2022-03-01T12:00:00Z"
	}`, string(data))
}

func TestNilPublisherAndMetrics(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.Publish(TaskEvent{Status: StatusStarted}))
	p.Close()

	var m *Metrics
	m.ObserveRun("task", StatusSucceeded, time.Second)
}
