package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/termsight/termsight/pkg/lifecycle"
)

func TestNotReadyBeforeStartup(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup")
	}
}

func TestReadyAfterStartup(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	if !lc.Ready() {
		t.Error("should be ready after WaitForStartup")
	}
}

func TestStartupHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 3 {
		t.Errorf("startup hooks: got %d, want 3", got)
	}
}

func TestStartupErrBlocksReadiness(t *testing.T) {
	lc := lifecycle.New()

	wantErr := errors.New("container init failed")
	lc.OnStartupErr(func() error {
		return wantErr
	})

	if err := lc.WaitForStartup(); !errors.Is(err, wantErr) {
		t.Errorf("WaitForStartup() = %v, want %v", err, wantErr)
	}
	if lc.Ready() {
		t.Error("should not be ready after a failed startup hook")
	}
	if !errors.Is(lc.Err(), wantErr) {
		t.Errorf("Err() = %v, want %v", lc.Err(), wantErr)
	}
}

func TestFailFirstErrorWins(t *testing.T) {
	lc := lifecycle.New()

	first := errors.New("first")
	second := errors.New("second")
	lc.Fail(first)
	lc.Fail(second)

	if !errors.Is(lc.Err(), first) {
		t.Errorf("Err() = %v, want %v", lc.Err(), first)
	}
}

func TestShutdownHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if !cleaned.Load() {
		t.Error("shutdown hook did not execute")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	lc.WaitForStartup()

	err := lc.Shutdown(50 * time.Millisecond)
	if err == nil {
		t.Error("expected timeout error, got nil")
	}
}

func TestContextCancelledOnShutdown(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}
