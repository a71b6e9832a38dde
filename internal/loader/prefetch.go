package loader

import (
	"context"
	"log"
	"sync"
	"time"
)

// Start launches the background prefetch loop. Each tick drains one
// batch from the queue; the tick interval doubles as the pause between
// batches. The loop stops when ctx is cancelled.
func (l *Loader) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.opts.PrefetchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.drainBatch(ctx)
			}
		}
	}()
}

// drainBatch loads up to one batch of queued prefixes concurrently.
// Only one drain may run at a time; overlapping ticks are skipped.
// Individual failures are logged and the prefix left unloaded for this
// cycle. Retry already happened inside LoadPrefix, so the loop itself
// never retries.
func (l *Loader) drainBatch(ctx context.Context) {
	l.mu.Lock()
	if l.draining || len(l.pending) == 0 {
		l.mu.Unlock()
		return
	}
	l.draining = true

	n := l.opts.PrefetchBatchSize
	if n > len(l.pending) {
		n = len(l.pending)
	}
	batch := make([]string, n)
	copy(batch, l.pending[:n])
	l.pending = l.pending[n:]
	for _, prefix := range batch {
		delete(l.pendingSet, prefix)
	}
	l.mu.Unlock()

	var wg sync.WaitGroup
	for _, prefix := range batch {
		wg.Add(1)
		go func(prefix string) {
			defer wg.Done()
			if err := l.LoadPrefix(ctx, prefix); err != nil {
				log.Printf("loader: background load of prefix %q failed: %v", prefix, err)
			}
		}(prefix)
	}
	wg.Wait()

	l.mu.Lock()
	l.draining = false
	l.mu.Unlock()
}
