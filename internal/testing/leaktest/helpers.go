package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultTimeout bounds how long Check waits for goroutines to exit
const DefaultTimeout = 2 * time.Second

// Check records the current goroutine count and returns a function that
// fails the test if, by the time it is called, more goroutines are still
// running after DefaultTimeout.
//
//	defer leaktest.Check(t)()
func Check(t testing.TB) func() {
	t.Helper()
	before := runtime.NumGoroutine()
	return func() {
		t.Helper()
		WaitForGoroutines(t, before, DefaultTimeout)
	}
}

// WaitForGoroutines waits for the goroutine count to drop to target or times out
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("Potential goroutine leak: current=%d, target=%d",
		runtime.NumGoroutine(), target)
}
