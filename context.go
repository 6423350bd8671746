package gotick

import (
	"sync"
)

// Context is the execution scope a timer belongs to. Timers can only be
// created against a valid context; shutting the context down invalidates it
// for future timer construction.
//
// A process-wide default context is created lazily by [DefaultContext] and
// lives until the process exits or someone shuts it down explicitly.
type Context struct {
	mu       sync.Mutex
	done     chan struct{}
	shutdown bool
}

// NewContext creates a new valid execution context.
func NewContext() *Context {
	return &Context{done: make(chan struct{})}
}

var (
	defCtxOnce sync.Once
	defCtx     *Context
)

// DefaultContext returns the process-wide default execution context,
// initializing it on first use.
func DefaultContext() *Context {
	defCtxOnce.Do(func() {
		defCtx = NewContext()
	})
	return defCtx
}

// IsValid reports whether the context has not been shut down yet.
func (c *Context) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.shutdown
}

// Shutdown invalidates the context. Timers already bound to it keep working
// until closed, but no new timers can be created against it.
// Shutdown is idempotent.
func (c *Context) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shutdown {
		return
	}
	c.shutdown = true
	close(c.done)
}

// Done returns a channel closed on context shutdown.
func (c *Context) Done() <-chan struct{} {
	return c.done
}
