package breakpoints

import (
	"sync"
	"sync/atomic"
)

// cow is a copy-on-write cell. Readers load the current value without
// locking. Writers are serialised by the mutex and publish a new value, the
// old value is never modified.
type cow[T any] struct {
	mu sync.Mutex
	p  atomic.Pointer[T]
}

func (c *cow[T]) load() *T {
	return c.p.Load()
}

// update calls f with the current value. If f returns without error the value
// it returns replaces the current value.
func (c *cow[T]) update(f func(old *T) (*T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := f(c.p.Load())
	if err != nil {
		return err
	}
	c.p.Store(n)
	return nil
}
