package context

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeoutOrCancel(t *testing.T) {
	ctx, cancel := WithTimeoutOrCancel(context.Background(), 10*time.Millisecond)
	defer cancel()

	if IsCanceled(ctx) {
		t.Fatal("fresh context should not be canceled")
	}

	<-ctx.Done()
	if !IsCanceled(ctx) {
		t.Fatal("expired context should be canceled")
	}
	if !IsTimedOut(ctx) {
		t.Fatal("expired context should report timed out")
	}
}

func TestWithDeadlineOrCancel(t *testing.T) {
	ctx, cancel := WithDeadlineOrCancel(context.Background(), time.Now().Add(time.Hour))
	if IsCanceled(ctx) {
		t.Fatal("context with future deadline should not be canceled")
	}

	cancel()
	if !IsCanceled(ctx) {
		t.Fatal("canceled context should report canceled")
	}
	if IsTimedOut(ctx) {
		t.Fatal("manual cancel should not report timed out")
	}
}

func TestIsTimedOutDistinguishesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if IsTimedOut(ctx) {
		t.Fatal("canceled context is not timed out")
	}
	if !IsCanceled(ctx) {
		t.Fatal("canceled context should be canceled")
	}
}
