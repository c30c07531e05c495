package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestEnsureBuildsOnce(t *testing.T) {
	builds := 0
	m := NewManager(func(ctx context.Context) (*Handles, error) {
		builds++
		return &Handles{}, nil
	})

	if m.Ready() {
		t.Error("manager ready before first Ensure")
	}

	first, err := m.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	second, err := m.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if builds != 1 {
		t.Errorf("build ran %d times, want 1", builds)
	}
	if first != second {
		t.Error("Ensure returned different handles")
	}
	if !m.Ready() {
		t.Error("manager not ready after successful build")
	}
}

func TestEnsureRetriesFailedBuild(t *testing.T) {
	builds := 0
	buildErr := errors.New("backend unreachable")
	m := NewManager(func(ctx context.Context) (*Handles, error) {
		builds++
		if builds == 1 {
			return nil, buildErr
		}
		return &Handles{}, nil
	})

	if _, err := m.Ensure(context.Background()); !errors.Is(err, buildErr) {
		t.Fatalf("first Ensure err = %v, want build error", err)
	}
	if m.Ready() {
		t.Error("manager ready after failed build")
	}

	if _, err := m.Ensure(context.Background()); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if builds != 2 {
		t.Errorf("build ran %d times, want 2", builds)
	}
	if !m.Ready() {
		t.Error("manager not ready after retry succeeded")
	}
}

func TestEnsureConcurrent(t *testing.T) {
	builds := 0
	m := NewManager(func(ctx context.Context) (*Handles, error) {
		builds++
		return &Handles{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Ensure(context.Background()); err != nil {
				t.Errorf("Ensure: %v", err)
			}
		}()
	}
	wg.Wait()

	if builds != 1 {
		t.Errorf("build ran %d times under concurrency, want 1", builds)
	}
}
