package page

import (
	"context"
	"sync"
	"time"
)

// Context tracks the live pages of a server by instance id. Pages stay
// registered until they expire, see Expire.
type Context struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{pages: make(map[string]*Page)}
}

// Add registers p.
func (c *Context) Add(p *Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[p.InstanceID()] = p
}

// Page finds a page by instance id.
func (c *Context) Page(instanceID string) (*Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.pages[instanceID]
	return p, ok
}

// Remove unregisters a page. It reports whether the page was registered.
func (c *Context) Remove(instanceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pages[instanceID]
	delete(c.pages, instanceID)
	return ok
}

// Len returns the number of registered pages.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

// Expire removes the pages which have been without connection for longer
// than maxIdle and returns their number. A page which never connected is
// idle since its creation.
func (c *Context) Expire(maxIdle time.Duration) int {
	return c.expire(time.Now(), maxIdle)
}

func (c *Context) expire(now time.Time, maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, p := range c.pages {
		if p.idle(now) > maxIdle {
			delete(c.pages, id)
			n++
		}
	}
	if n > 0 {
		tracer().Debugf("expired %d pages, %d left", n, len(c.pages))
	}
	return n
}

// Run expires idle pages every interval until ctx is done.
func (c *Context) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Expire(maxIdle)
		}
	}
}
