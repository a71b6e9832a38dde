package cache

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"wordchain/internal/models"
	"wordchain/internal/store"
)

// TieredCache serves prefix lookups from a bounded in-process LRU (tier
// 1) backed by a durable key-value store (tier 2). It never reaches the
// network itself: on a double miss it reports not-found and the loader
// decides whether to go to the remote source. Tier-2 failures degrade to
// memory-only operation and are never fatal to a lookup.
type TieredCache struct {
	hot     *lru.Cache[string, []string]
	durable store.DurableStore

	version string
	maxAge  time.Duration

	mu           sync.Mutex
	hits         int64
	misses       int64
	evictions    int64
	total        int64
	totalLatency time.Duration
	prefixCounts map[string]int64
}

// New creates a tiered cache. durable may be nil for memory-only
// operation. Entries read from the durable tier are discarded when older
// than maxAge or written under a different version string.
func New(hotSize int, durable store.DurableStore, version string, maxAge time.Duration) (*TieredCache, error) {
	c := &TieredCache{
		durable:      durable,
		version:      version,
		maxAge:       maxAge,
		prefixCounts: make(map[string]int64),
	}

	hot, err := lru.NewWithEvict(hotSize, func(string, []string) {
		c.mu.Lock()
		c.evictions++
		c.mu.Unlock()
		metricEvictions.Inc()
	})
	if err != nil {
		return nil, err
	}
	c.hot = hot
	return c, nil
}

// Get probes tier 1 then tier 2, promoting durable hits into the hot
// tier. ok is false when both tiers miss.
func (c *TieredCache) Get(ctx context.Context, prefix string) ([]string, bool) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		metricGetDuration.Observe(elapsed.Seconds())
		c.mu.Lock()
		c.total++
		c.totalLatency += elapsed
		c.prefixCounts[prefix]++
		c.mu.Unlock()
	}()

	if words, ok := c.hot.Get(prefix); ok {
		c.recordHit("memory")
		return words, true
	}

	if words, ok := c.durableGet(ctx, prefix); ok {
		c.hot.Add(prefix, words)
		c.recordHit("durable")
		return words, true
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	metricMisses.Inc()
	return nil, false
}

// Set writes through to both tiers. A durable-tier failure is logged and
// swallowed: the hot tier already holds the value.
func (c *TieredCache) Set(ctx context.Context, prefix string, words []string) {
	c.hot.Add(prefix, words)

	if c.durable == nil {
		return
	}
	payload, err := EncodeEntry(words, c.version)
	if err != nil {
		log.Printf("cache: failed to encode entry for prefix %q: %v", prefix, err)
		return
	}
	if err := c.durable.Set(ctx, prefix, payload); err != nil {
		metricStoreErrors.Inc()
		log.Printf("cache: durable write for prefix %q failed, continuing memory-only: %v", prefix, err)
	}
}

// durableGet reads and validates a tier-2 entry. Expired or
// version-mismatched entries are deleted and treated as misses.
func (c *TieredCache) durableGet(ctx context.Context, prefix string) ([]string, bool) {
	if c.durable == nil {
		return nil, false
	}

	payload, ok, err := c.durable.Get(ctx, prefix)
	if err != nil {
		metricStoreErrors.Inc()
		log.Printf("cache: durable read for prefix %q failed, continuing memory-only: %v", prefix, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		log.Printf("cache: corrupt durable entry for prefix %q: %v", prefix, err)
		c.durableDelete(ctx, prefix)
		return nil, false
	}

	if entry.Version != c.version || time.Since(entry.StoredAt) > c.maxAge {
		c.durableDelete(ctx, prefix)
		return nil, false
	}
	return entry.Words, true
}

func (c *TieredCache) durableDelete(ctx context.Context, prefix string) {
	if err := c.durable.Delete(ctx, prefix); err != nil {
		log.Printf("cache: failed to delete stale entry for prefix %q: %v", prefix, err)
	}
}

func (c *TieredCache) recordHit(tier string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	metricHits.WithLabelValues(tier).Inc()
}

// Clear empties both tiers and resets the analytics counters
func (c *TieredCache) Clear(ctx context.Context) {
	c.hot.Purge()
	if c.durable != nil {
		if err := c.durable.Clear(ctx); err != nil {
			log.Printf("cache: durable clear failed: %v", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses, c.evictions, c.total = 0, 0, 0, 0
	c.totalLatency = 0
	c.prefixCounts = make(map[string]int64)
}

// Analytics returns a snapshot of the cache counters
func (c *TieredCache) Analytics() models.CacheAnalytics {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := make(map[string]int64, len(c.prefixCounts))
	for p, n := range c.prefixCounts {
		counts[p] = n
	}

	var avg time.Duration
	if c.total > 0 {
		avg = c.totalLatency / time.Duration(c.total)
	}

	return models.CacheAnalytics{
		Hits:           c.hits,
		Misses:         c.misses,
		Evictions:      c.evictions,
		TotalAccesses:  c.total,
		AverageLatency: avg,
		PrefixAccesses: counts,
	}
}

// PopularPrefixes returns prefixes whose access count meets the
// threshold, most accessed first. The loader prefetches these in the
// background.
func (c *TieredCache) PopularPrefixes(threshold int64) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var popular []string
	for p, n := range c.prefixCounts {
		if n >= threshold {
			popular = append(popular, p)
		}
	}
	sort.Slice(popular, func(i, j int) bool {
		if c.prefixCounts[popular[i]] != c.prefixCounts[popular[j]] {
			return c.prefixCounts[popular[i]] > c.prefixCounts[popular[j]]
		}
		return popular[i] < popular[j]
	})
	return popular
}

// EncodeEntry serializes a word list into the durable-tier envelope
func EncodeEntry(words []string, version string) ([]byte, error) {
	return json.Marshal(models.CacheEntry{
		Words:    words,
		StoredAt: time.Now().UTC(),
		Version:  version,
	})
}
