package cleanup

import (
	"fmt"
	"sync"
)

type hook struct {
	name string
	fn   func() error
}

var (
	mu    sync.Mutex
	hooks []hook
)

// Register adds a named cleanup hook executed in LIFO order.
func Register(name string, fn func() error) {
	if fn == nil {
		return
	}
	mu.Lock()
	hooks = append(hooks, hook{name: name, fn: fn})
	mu.Unlock()
}

// RunAll executes all registered hooks and returns a combined error if any fail.
func RunAll() error {
	mu.Lock()
	local := hooks
	hooks = nil
	mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := local[i].fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", local[i].name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup failed: %v", errs)
}
