package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wordchain/internal/models"
	"wordchain/internal/store"
)

// failingStore always errors, standing in for an unavailable durable tier.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("quota exceeded")
}
func (failingStore) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("quota exceeded") }
func (failingStore) Clear(context.Context) error               { return errors.New("quota exceeded") }
func (failingStore) Close() error                              { return nil }

func TestSetThenGetHitsMemoryTier(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	c, err := New(8, mem, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Set(ctx, "le", []string{"legal", "lethal"})

	words, ok := c.Get(ctx, "le")
	if !ok || len(words) != 2 {
		t.Fatalf("Get(le) = %v, %v", words, ok)
	}

	a := c.Analytics()
	if a.Hits != 1 || a.Misses != 0 {
		t.Errorf("analytics = %+v, want one hit and no misses", a)
	}
}

func TestDurableHitIsPromoted(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	c, err := New(8, mem, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Write only to the durable tier, as a previous process would have.
	payload, err := EncodeEntry([]string{"alliance"}, "1")
	if err != nil {
		t.Fatalf("EncodeEntry failed: %v", err)
	}
	if err := mem.Set(ctx, "al", payload); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	words, ok := c.Get(ctx, "al")
	if !ok || len(words) != 1 || words[0] != "alliance" {
		t.Fatalf("Get(al) = %v, %v", words, ok)
	}
	if _, ok := c.hot.Get("al"); !ok {
		t.Error("durable hit was not promoted into the hot tier")
	}
}

func TestExpiredAndMismatchedEntriesAreMisses(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		entry models.CacheEntry
	}{
		{
			name: "expired entry",
			entry: models.CacheEntry{
				Words:    []string{"legal"},
				StoredAt: time.Now().Add(-2 * time.Hour),
				Version:  "1",
			},
		},
		{
			name: "version mismatch",
			entry: models.CacheEntry{
				Words:    []string{"legal"},
				StoredAt: time.Now(),
				Version:  "0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemoryStore()
			c, err := New(8, mem, "1", time.Hour)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			payload, _ := json.Marshal(tt.entry)
			if err := mem.Set(ctx, "le", payload); err != nil {
				t.Fatalf("seed failed: %v", err)
			}

			if _, ok := c.Get(ctx, "le"); ok {
				t.Error("stale entry served as a hit")
			}
			if mem.Len() != 0 {
				t.Error("stale entry was not deleted from the durable tier")
			}
		})
	}
}

func TestDurableFailureDegradesToMemoryOnly(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, failingStore{}, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Writes must not fail the operation; the hot tier keeps the value.
	c.Set(ctx, "le", []string{"legal"})

	words, ok := c.Get(ctx, "le")
	if !ok || words[0] != "legal" {
		t.Fatalf("Get(le) = %v, %v, want memory-tier hit", words, ok)
	}
}

func TestNilDurableStore(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, nil, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Set(ctx, "le", []string{"legal"})
	if _, ok := c.Get(ctx, "le"); !ok {
		t.Error("memory-only cache lost its value")
	}
	if _, ok := c.Get(ctx, "xx"); ok {
		t.Error("memory-only cache fabricated a value")
	}
}

func TestEvictionCounter(t *testing.T) {
	ctx := context.Background()
	c, err := New(2, nil, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Set(ctx, "aa", []string{"a"})
	c.Set(ctx, "bb", []string{"b"})
	c.Set(ctx, "cc", []string{"c"}) // evicts aa

	if got := c.Analytics().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
	if _, ok := c.Get(ctx, "aa"); ok {
		t.Error("evicted entry still served from the hot tier")
	}
}

func TestPopularPrefixes(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, nil, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Set(ctx, "le", []string{"legal"})
	c.Set(ctx, "al", []string{"alliance"})
	for i := 0; i < 5; i++ {
		c.Get(ctx, "le")
	}
	c.Get(ctx, "al")
	c.Get(ctx, "zz")

	popular := c.PopularPrefixes(2)
	if len(popular) != 1 || popular[0] != "le" {
		t.Errorf("PopularPrefixes(2) = %v, want [le]", popular)
	}
}

func TestClearResetsAnalytics(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	c, err := New(8, mem, "1", time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Set(ctx, "le", []string{"legal"})
	c.Get(ctx, "le")
	c.Clear(ctx)

	a := c.Analytics()
	if a.Hits != 0 || a.TotalAccesses != 0 || len(a.PrefixAccesses) != 0 {
		t.Errorf("analytics after Clear = %+v, want zeroes", a)
	}
	if _, ok := c.Get(ctx, "le"); ok {
		t.Error("entry survived Clear")
	}
	if mem.Len() != 0 {
		t.Error("durable tier survived Clear")
	}
}
