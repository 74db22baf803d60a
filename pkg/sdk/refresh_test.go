package sdk

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefreshCoordinatorCollapsesConcurrentCalls(t *testing.T) {
	var calls int32
	release := make(chan struct{})

	rc := &refreshCoordinator{
		run: func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return "fresh-token", nil
		},
	}

	const waiters = 8
	var wg sync.WaitGroup
	results := make([]*Credential, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rc.refresh(context.Background(), RoleAdmin)
		}(i)
	}

	// Give every waiter time to join the in-flight call, then let the
	// single round trip settle.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 refresh round trip, got %d", got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d: unexpected error %v", i, errs[i])
		}
		if results[i].Token != "fresh-token" || results[i].Role != RoleAdmin {
			t.Fatalf("waiter %d: got %+v", i, results[i])
		}
	}
}

func TestRefreshCoordinatorAllowsNewAttemptAfterSettling(t *testing.T) {
	var calls int32
	rc := &refreshCoordinator{
		run: func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			return "token", nil
		},
	}

	if _, err := rc.refresh(context.Background(), RoleUser); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if _, err := rc.refresh(context.Background(), RoleUser); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("sequential refreshes should each round trip, got %d calls", got)
	}
}

func TestRefreshCoordinatorPropagatesFailure(t *testing.T) {
	boom := errors.New("refresh endpoint said no")
	rc := &refreshCoordinator{
		run: func(ctx context.Context) (string, error) {
			return "", boom
		},
	}

	_, err := rc.refresh(context.Background(), RoleClient)
	if !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("expected ErrRefreshFailed, got %v", err)
	}
}
