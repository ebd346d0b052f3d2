package storefront

import (
	"context"
	"sync"
	"time"
)

// Autoplay intervals of the home page carousels.
const (
	HeroInterval   = 6 * time.Second
	ReviewInterval = 5 * time.Second
)

// Carousel cycles an index over a fixed number of items.
type Carousel struct {
	mu    sync.Mutex
	count int
	index int
}

// NewCarousel creates a carousel over count items.
func NewCarousel(count int) *Carousel {
	if count < 0 {
		count = 0
	}
	return &Carousel{count: count}
}

// Index returns the current position.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of items.
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset changes the item count and rewinds to the first item.
func (c *Carousel) Reset(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if count < 0 {
		count = 0
	}
	c.count = count
	c.index = 0
}

// Next advances modulo the item count and returns the new index.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return 0
	}
	c.index = (c.index + 1) % c.count
	return c.index
}

// Run advances every interval until ctx is done, calling tick with each new
// index. A carousel with fewer than two items never ticks.
func (c *Carousel) Run(ctx context.Context, interval time.Duration, tick func(int)) {
	if c.Len() <= 1 || interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idx := c.Next()
			if tick != nil {
				tick(idx)
			}
		}
	}
}
