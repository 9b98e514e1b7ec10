package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryJob(t *testing.T) {
	for _, workers := range []int{1, 4, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := Start(workers)
			var count atomic.Int64
			for range 100 {
				pool.Do(func() error {
					count.Add(1)
					return nil
				})
			}
			if err := pool.Wait(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if count.Load() != 100 {
				t.Errorf("expected 100 jobs, got %d", count.Load())
			}
		})
	}
}

func TestPoolJoinsErrors(t *testing.T) {
	errOdd := errors.New("odd")
	pool := Start(3)
	for i := range 10 {
		pool.Do(func() error {
			if i%2 == 1 {
				return fmt.Errorf("job %d: %w", i, errOdd)
			}
			return nil
		})
	}

	err := pool.Wait()
	if !errors.Is(err, errOdd) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if n := len(err.(interface{ Unwrap() []error }).Unwrap()); n != 5 {
		t.Errorf("expected 5 errors, got %d", n)
	}
}
