package cache

import (
	"sync"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/google/uuid"
)

// item is a cached report with expiration
type item struct {
	report     *entities.AttributionReport
	expiration int64
}

// ReportCache is a simple in-memory cache for generated reports. Reports are
// immutable once completed, so cached reads never go stale - the TTL only
// bounds memory usage.
type ReportCache struct {
	items map[uuid.UUID]item
	ttl   time.Duration
	mu    sync.RWMutex
}

// New creates a new report cache with the given TTL
func New(ttl time.Duration) *ReportCache {
	cache := &ReportCache{
		items: make(map[uuid.UUID]item),
		ttl:   ttl,
	}

	// Background goroutine to clean expired items
	go func() {
		for {
			time.Sleep(time.Minute)
			cache.DeleteExpired()
		}
	}()

	return cache
}

// Set adds a report to the cache. Reports still processing are not cached -
// their status is about to change.
func (c *ReportCache) Set(report *entities.AttributionReport) {
	if report == nil || report.Status == entities.ReportStatusProcessing {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[report.ID] = item{
		report:     report,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	}
}

// Get retrieves a report from the cache
// Returns the report and a boolean indicating if it was found
func (c *ReportCache) Get(reportID uuid.UUID) (*entities.AttributionReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[reportID]
	if !found {
		return nil, false
	}

	// Check if the item has expired
	if time.Now().UnixNano() > it.expiration {
		return nil, false
	}

	return it.report, true
}

// Delete removes a report from the cache
func (c *ReportCache) Delete(reportID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, reportID)
}

// DeleteExpired removes all expired items from the cache
func (c *ReportCache) DeleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for k, v := range c.items {
		if now > v.expiration {
			delete(c.items, k)
		}
	}
}
