package observability

import (
	"context"
	"log/slog"
	"time"
)

// Timer tracks the duration of an operation and logs it when stopped.
type Timer struct {
	operation string
	start     time.Time
	logger    *slog.Logger
	now       func() time.Time
}

// StartTimer creates a new timer for the given operation.
func StartTimer(operation string) *Timer {
	return &Timer{
		operation: operation,
		start:     time.Now(),
		now:       time.Now,
	}
}

// WithLogger adds a logger to the timer for automatic logging on stop.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// Elapsed returns the elapsed time without stopping the timer.
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Stop logs a successful completion.
func (t *Timer) Stop(ctx context.Context) time.Duration {
	return t.StopWithError(ctx, nil)
}

// StopWithError logs the outcome of the operation at info or error level.
func (t *Timer) StopWithError(ctx context.Context, err error) time.Duration {
	duration := t.Elapsed()
	if t.logger == nil {
		return duration
	}

	if err != nil {
		t.logger.ErrorContext(ctx, "operation failed",
			OperationKey, t.operation,
			DurationKey, duration.Milliseconds(),
			ErrorKey, err.Error(),
		)
	} else {
		t.logger.InfoContext(ctx, "operation completed",
			OperationKey, t.operation,
			DurationKey, duration.Milliseconds(),
		)
	}
	return duration
}

// TimeOperation times fn and logs its outcome.
func TimeOperation(ctx context.Context, logger *slog.Logger, operation string, fn func() error) error {
	timer := StartTimer(operation).WithLogger(logger)
	err := fn()
	timer.StopWithError(ctx, err)
	return err
}

// TimeOperationResult is TimeOperation for functions that return a value.
func TimeOperationResult[T any](ctx context.Context, logger *slog.Logger, operation string, fn func() (T, error)) (T, error) {
	timer := StartTimer(operation).WithLogger(logger)
	result, err := fn()
	timer.StopWithError(ctx, err)
	return result, err
}
