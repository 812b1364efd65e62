package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts       int           `json:"max_attempts"`
	BackoffBase       time.Duration `json:"backoff_base"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`
}

// DefaultRetryConfig returns sensible retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       5 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Backoff returns the delay before the given retry. The first retry
// (after attempt 1) waits BackoffBase; each further retry is scaled by
// BackoffMultiplier.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	d := c.BackoffBase
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * c.BackoffMultiplier)
	}
	return d
}

// RetryState tracks retry attempts for one task within a run.
type RetryState struct {
	RunID       string    `json:"run_id"`
	Task        string    `json:"task"`
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
	LastAttempt time.Time `json:"last_attempt"`
	LastError   string    `json:"last_error,omitempty"`
}

// RetryManager tracks and manages retry attempts.
type RetryManager struct {
	config RetryConfig
	states map[string]*RetryState // key: runID:task
	mu     sync.RWMutex
}

// NewRetryManager creates a new retry manager.
func NewRetryManager(config RetryConfig) *RetryManager {
	return &RetryManager{
		config: config,
		states: make(map[string]*RetryState),
	}
}

func stateKey(runID, task string) string {
	return fmt.Sprintf("%s:%s", runID, task)
}

// RecordAttempt records an attempt for a task and returns the current
// attempt number.
func (m *RetryManager) RecordAttempt(runID, task string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.state(runID, task)
	state.Attempts++
	state.LastAttempt = time.Now()
	return state.Attempts
}

// RecordFailure records the error of a failed attempt.
func (m *RetryManager) RecordFailure(runID, task, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state(runID, task).LastError = errorMsg
}

// CanRetry reports whether the task has attempts left.
func (m *RetryManager) CanRetry(runID, task string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.states[stateKey(runID, task)]
	if !exists {
		return true
	}
	return state.Attempts < m.config.MaxAttempts
}

// State returns a copy of the retry state for a task, if any.
func (m *RetryManager) State(runID, task string) (RetryState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.states[stateKey(runID, task)]
	if !exists {
		return RetryState{}, false
	}
	return *state, true
}

// state returns the tracked state, creating it on first use. Callers
// hold the write lock.
func (m *RetryManager) state(runID, task string) *RetryState {
	key := stateKey(runID, task)
	st, exists := m.states[key]
	if !exists {
		st = &RetryState{
			RunID:     runID,
			Task:      task,
			CreatedAt: time.Now(),
		}
		m.states[key] = st
	}
	return st
}
