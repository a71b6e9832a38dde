package models

import "time"

// CacheEntry is the envelope written to the durable cache tier. The store
// itself only sees the serialized bytes; the cache owns this shape.
type CacheEntry struct {
	Words    []string  `json:"words"`
	StoredAt time.Time `json:"storedAt"`
	Version  string    `json:"version"`
}

// CacheAnalytics is a snapshot of tiered-cache counters used to rank
// prefixes for background prefetch
type CacheAnalytics struct {
	Hits           int64            `json:"hits"`
	Misses         int64            `json:"misses"`
	Evictions      int64            `json:"evictions"`
	TotalAccesses  int64            `json:"totalAccesses"`
	AverageLatency time.Duration    `json:"averageLatency"`
	PrefixAccesses map[string]int64 `json:"prefixAccesses"`
}

// HitRate returns the fraction of accesses served from a cache tier
func (a CacheAnalytics) HitRate() float64 {
	if a.TotalAccesses == 0 {
		return 0
	}
	return float64(a.Hits) / float64(a.TotalAccesses)
}
