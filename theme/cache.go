package theme

import (
	"context"
	"errors"
	"sync"

	"go-calc/debug"
)

// Cache memoizes palettes by image id so each image is extracted once, no
// matter how often it is re-selected or how many callers ask concurrently.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	extract func(context.Context, []byte) (Palette, error)
}

type cacheEntry struct {
	done    chan struct{}
	palette Palette
	err     error
}

// NewCache creates an empty palette cache backed by Extract
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		extract: Extract,
	}
}

// Get returns the palette for image id, extracting it from data on first use.
// Decode failures are cached too: the default palette is returned with the
// error each time.
func (c *Cache) Get(ctx context.Context, id string, data []byte) (Palette, error) {
	c.mu.Lock()
	if e, ok := c.entries[id]; ok {
		c.mu.Unlock()
		select {
		case <-e.done:
			return e.palette, e.err
		case <-ctx.Done():
			return DefaultPalette(), ctx.Err()
		}
	}
	e := &cacheEntry{done: make(chan struct{})}
	c.entries[id] = e
	c.mu.Unlock()

	e.palette, e.err = c.extract(ctx, data)
	if e.err != nil {
		debug.Log("palette", "extract %s: %v", id, e.err)
	} else {
		debug.Log("palette", "extract %s: bg=%s fg=%s", id, e.palette.Background.Hex(), e.palette.Foreground.Hex())
	}

	// cancellation is not a property of the image, let the next caller retry
	if errors.Is(e.err, context.Canceled) || errors.Is(e.err, context.DeadlineExceeded) {
		c.mu.Lock()
		if c.entries[id] == e {
			delete(c.entries, id)
		}
		c.mu.Unlock()
	}
	close(e.done)
	return e.palette, e.err
}

// Forget drops the cached palette of a deleted image
func (c *Cache) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached images
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
