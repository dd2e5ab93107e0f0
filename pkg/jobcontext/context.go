package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyMeetingID  KeyContext = "meeting_id"
	keyGeneration KeyContext = "generation"
	keyStartTime  KeyContext = "start_time"
)

// RunBegin initializes a detached pipeline-run context with metadata and a
// timeout. The returned context is independent of the HTTP request that
// scheduled the run.
func RunBegin(meetingID uuid.UUID, generation int, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyGeneration, generation)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// RunEnd executes the run function with a panic boundary, so nothing thrown
// inside a detached run can escape the worker goroutine.
func RunEnd(ctx context.Context, runFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before run execution: %w", ctx.Err())
	}

	return runFunc(ctx)
}

// Elapsed returns how long the run has been executing
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
