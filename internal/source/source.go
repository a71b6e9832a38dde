package source

import "context"

// Metadata describes the remote dictionary's shape
type Metadata struct {
	PrefixCounts map[string]int `json:"prefixCounts"`
	TotalWords   int            `json:"totalWords"`
	Version      string         `json:"version"`
}

// Source is the remote dictionary: the authoritative word store, reached
// only when both cache tiers miss. It is assumed eventually consistent
// and its failures are retryable.
type Source interface {
	// FetchWords returns every word starting with the given prefix.
	FetchWords(ctx context.Context, prefix string) ([]string, error)

	// FetchMetadata returns prefix counts, total word count and the
	// dictionary version string.
	FetchMetadata(ctx context.Context) (Metadata, error)
}
