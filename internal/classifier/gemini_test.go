package classifier

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMapModelError(t *testing.T) {
	start := time.Now()

	t.Run("call deadline maps to timeout", func(t *testing.T) {
		ctx := context.Background()
		callCtx, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
		defer cancel()

		err := mapModelError(ctx, callCtx, callCtx.Err(), start)
		if !errors.Is(err, ErrTimedOut) {
			t.Errorf("err = %v, want ErrTimedOut", err)
		}
	})

	t.Run("wrapped deadline maps to timeout", func(t *testing.T) {
		ctx := context.Background()
		callCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		err := mapModelError(ctx, callCtx, context.DeadlineExceeded, start)
		if !errors.Is(err, ErrTimedOut) {
			t.Errorf("err = %v, want ErrTimedOut", err)
		}
	})

	t.Run("parent cancellation is not a timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		callCtx, callCancel := context.WithTimeout(ctx, time.Minute)
		defer callCancel()
		cancel()

		err := mapModelError(ctx, callCtx, callCtx.Err(), start)
		if !errors.Is(err, ErrFailed) {
			t.Errorf("err = %v, want ErrFailed", err)
		}
		if errors.Is(err, ErrTimedOut) {
			t.Errorf("err = %v, must not be ErrTimedOut", err)
		}
	})

	t.Run("model error maps to failure", func(t *testing.T) {
		ctx := context.Background()
		callCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		modelErr := errors.New("quota exceeded")
		err := mapModelError(ctx, callCtx, modelErr, start)
		if !errors.Is(err, ErrFailed) {
			t.Errorf("err = %v, want ErrFailed", err)
		}
		if !errors.Is(err, modelErr) {
			t.Errorf("err = %v, want wrapped model error", err)
		}
	})
}
