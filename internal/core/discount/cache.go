package discount

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ahmadnk31/5gfones-search/internal/core/port"
)

// Clock supplies the current time so expiry is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Cache holds per-category discount rates with an explicit TTL. It is
// constructed once per process and passed by reference; the rates are
// reloaded in bulk on the first read after expiry.
type Cache struct {
	mu        sync.Mutex
	reader    port.DiscountsReader
	clock     Clock
	ttl       time.Duration
	rates     map[int]float64
	expiresAt time.Time
}

// New creates a discount cache. A nil clock means the system clock.
func New(reader port.DiscountsReader, ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = systemClock{}
	}
	return &Cache{reader: reader, clock: clock, ttl: ttl}
}

// Rate returns the discount rate in [0,1] for the category, or 0 when
// none is configured.
func (c *Cache) Rate(ctx context.Context, categoryID int) (float64, error) {
	const op = "discount.Cache.Rate"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rates == nil || !c.clock.Now().Before(c.expiresAt) {
		rates, err := c.reader.CategoryDiscounts(ctx)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		c.rates = rates
		c.expiresAt = c.clock.Now().Add(c.ttl)
	}

	return c.rates[categoryID], nil
}
