package loader

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"wordchain/internal/cache"
	"wordchain/internal/index"
	"wordchain/internal/source"
)

// Status tracks the dictionary's readiness
type Status int

const (
	StatusUninitialized Status = iota
	StatusInitializing
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusInitializing:
		return "initializing"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Options configures a Loader
type Options struct {
	EssentialPrefixes      []string
	RetryMaxAttempts       int
	RetryBackoffBase       time.Duration
	PrefetchBatchSize      int
	PrefetchInterval       time.Duration
	PopularPrefixThreshold int64
}

// Loader orchestrates incremental population of the word index from the
// tiered cache and the remote source. Initialization blocks on a fixed
// set of essential prefixes; everything else is discovered organically
// and drained by the background prefetch loop.
type Loader struct {
	index  *index.Index
	cache  *cache.TieredCache
	source source.Source
	opts   Options

	mu       sync.Mutex
	status   Status
	initDone chan struct{}
	initErr  error

	// loaded is the sole synchronization point between foreground loads
	// and the background loop.
	loaded     map[string]struct{}
	pending    []string
	pendingSet map[string]struct{}
	draining   bool
	lastErrors map[string]*PrefixLoadError
}

// New creates a loader over the given index, cache and remote source
func New(idx *index.Index, c *cache.TieredCache, src source.Source, opts Options) *Loader {
	if opts.RetryMaxAttempts <= 0 {
		opts.RetryMaxAttempts = 3
	}
	if opts.RetryBackoffBase <= 0 {
		opts.RetryBackoffBase = 500 * time.Millisecond
	}
	if opts.PrefetchBatchSize <= 0 {
		opts.PrefetchBatchSize = 5
	}
	if opts.PrefetchInterval <= 0 {
		opts.PrefetchInterval = 2 * time.Second
	}

	return &Loader{
		index:      idx,
		cache:      c,
		source:     src,
		opts:       opts,
		loaded:     make(map[string]struct{}),
		pendingSet: make(map[string]struct{}),
		lastErrors: make(map[string]*PrefixLoadError),
	}
}

// Status returns the loader's current readiness
func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Initialize loads the essential prefixes and flips the loader to ready.
// Concurrent calls during an in-flight initialization wait on the same
// completion signal instead of starting a second one. A failed essential
// load clears the index and parks the loader in the error state; it must
// never report ready over a half-populated index.
func (l *Loader) Initialize(ctx context.Context) error {
	l.mu.Lock()
	switch l.status {
	case StatusReady:
		l.mu.Unlock()
		return nil
	case StatusInitializing:
		done := l.initDone
		l.mu.Unlock()
		select {
		case <-done:
			l.mu.Lock()
			defer l.mu.Unlock()
			return l.initErr
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	l.status = StatusInitializing
	l.initDone = make(chan struct{})
	done := l.initDone
	l.mu.Unlock()

	err := l.runInitialize(ctx)

	l.mu.Lock()
	l.initErr = err
	if err != nil {
		l.status = StatusError
		l.loaded = make(map[string]struct{})
		l.index.Clear()
	} else {
		l.status = StatusReady
	}
	close(done)
	l.mu.Unlock()
	return err
}

func (l *Loader) runInitialize(ctx context.Context) error {
	for _, prefix := range l.opts.EssentialPrefixes {
		if err := l.LoadPrefix(ctx, prefix); err != nil {
			return fmt.Errorf("essential prefix load failed: %w", err)
		}
	}
	log.Printf("loader: %d essential prefixes loaded, %d words indexed",
		len(l.opts.EssentialPrefixes), l.index.WordCount())

	// Prefixes that were hot in previous sessions get prefetch priority.
	for _, prefix := range l.cache.PopularPrefixes(l.opts.PopularPrefixThreshold) {
		l.enqueue(prefix)
	}
	return nil
}

// LoadPrefix fetches the words for a prefix and inserts them into the
// index. Already-loaded prefixes are a no-op. Each retrieved word's
// related prefixes are queued for background loading, so the reachable
// part of the word graph grows ahead of the player's next moves.
func (l *Loader) LoadPrefix(ctx context.Context, prefix string) error {
	prefix = index.Normalize(prefix)
	if len(prefix) < 2 {
		return nil
	}

	l.mu.Lock()
	if _, ok := l.loaded[prefix]; ok {
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()

	words, err := l.fetchPrefix(ctx, prefix)
	if err != nil {
		return err
	}

	for _, w := range words {
		l.index.AddWord(w)
	}

	l.mu.Lock()
	l.loaded[prefix] = struct{}{}
	delete(l.lastErrors, prefix)
	l.mu.Unlock()

	for _, w := range words {
		l.enqueueRelated(w)
	}
	return nil
}

// fetchPrefix resolves a prefix's word list: tiered cache first, remote
// source with retry on a double miss, write-back on success.
func (l *Loader) fetchPrefix(ctx context.Context, prefix string) ([]string, error) {
	if words, ok := l.cache.Get(ctx, prefix); ok {
		return words, nil
	}

	words, err := l.retryOperation(ctx, prefix, func(ctx context.Context) ([]string, error) {
		return l.source.FetchWords(ctx, prefix)
	})
	if err != nil {
		return nil, err
	}

	l.cache.Set(ctx, prefix, words)
	return words, nil
}

// retryOperation runs op up to the configured attempt count with
// exponential backoff between attempts. On final failure it records and
// returns a PrefixLoadError bound to a retry of the whole prefix load.
func (l *Loader) retryOperation(ctx context.Context, prefix string, op func(context.Context) ([]string, error)) ([]string, error) {
	var lastErr error
attempts:
	for attempt := 0; attempt < l.opts.RetryMaxAttempts; attempt++ {
		words, err := op(ctx)
		if err == nil {
			return words, nil
		}
		lastErr = err
		log.Printf("loader: attempt %d/%d for prefix %q failed: %v",
			attempt+1, l.opts.RetryMaxAttempts, prefix, err)

		if attempt == l.opts.RetryMaxAttempts-1 {
			break
		}
		select {
		case <-time.After(l.opts.RetryBackoffBase * (1 << attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
			break attempts
		}
	}

	loadErr := &PrefixLoadError{
		Prefix:   prefix,
		Attempts: l.opts.RetryMaxAttempts,
		Err:      lastErr,
		Retry: func(ctx context.Context) error {
			return l.LoadPrefix(ctx, prefix)
		},
	}

	l.mu.Lock()
	l.lastErrors[prefix] = loadErr
	l.mu.Unlock()
	return nil, loadErr
}

// GetWordsWithPrefix returns the index's current view of a prefix,
// loading it on demand. It fails with ErrNotInitialized before ready.
func (l *Loader) GetWordsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	if l.Status() != StatusReady {
		return nil, ErrNotInitialized
	}
	if err := l.LoadPrefix(ctx, prefix); err != nil {
		return nil, err
	}
	return l.index.WordsWithPrefix(prefix), nil
}

// Contains reports dictionary membership, loading the word's prefix
// bucket on demand
func (l *Loader) Contains(ctx context.Context, word string) (bool, error) {
	if l.Status() != StatusReady {
		return false, ErrNotInitialized
	}
	if err := l.LoadPrefix(ctx, index.Prefix(word)); err != nil {
		return false, err
	}
	return l.index.IsValidWord(word), nil
}

// NextWords returns every known word that may follow the given word,
// loading the relevant bucket on demand
func (l *Loader) NextWords(ctx context.Context, word string) ([]string, error) {
	if l.Status() != StatusReady {
		return nil, ErrNotInitialized
	}
	if err := l.LoadPrefix(ctx, index.Suffix(word)); err != nil {
		return nil, err
	}
	return l.index.ValidNextWords(word), nil
}

// IsTerminalCombo reports whether the word ends in a static terminal
// combination
func (l *Loader) IsTerminalCombo(word string) bool {
	return l.index.IsTerminalWord(word)
}

// RandomWord picks a random indexed word within the length bounds
func (l *Loader) RandomWord(minLength, maxLength int) (string, bool) {
	return l.index.RandomWord(minLength, maxLength)
}

// LastError returns the recorded load failure for a prefix, if any
func (l *Loader) LastError(prefix string) (*PrefixLoadError, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	err, ok := l.lastErrors[prefix]
	return err, ok
}

// enqueueRelated queues every chain-relevant prefix of a word: its
// leading prefixes of length 2 to 4 plus its last-two and last-three
// letters. This is what lets the graph grow toward likely next moves.
func (l *Loader) enqueueRelated(word string) {
	word = index.Normalize(word)
	if len(word) < 2 {
		return
	}

	for n := 2; n <= 4 && n <= len(word); n++ {
		l.enqueue(word[:n])
	}
	l.enqueue(word[len(word)-2:])
	if len(word) >= 3 {
		l.enqueue(word[len(word)-3:])
	}
}

// enqueue adds a prefix to the prefetch queue unless it is already
// loaded or already queued
func (l *Loader) enqueue(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.loaded[prefix]; ok {
		return
	}
	if _, ok := l.pendingSet[prefix]; ok {
		return
	}
	l.pendingSet[prefix] = struct{}{}
	l.pending = append(l.pending, prefix)
}

// QueueLength returns the number of prefixes awaiting background load
func (l *Loader) QueueLength() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
