// Command seed warms the durable cache tier ahead of deployment, either
// from a newline-delimited word-list file or by pulling every known
// prefix from the remote dictionary source.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"wordchain/internal/cache"
	"wordchain/internal/config"
	"wordchain/internal/index"
	"wordchain/internal/source"
	"wordchain/internal/store"
)

func main() {
	wordlist := flag.String("wordlist", "", "Path to a newline-delimited word list")
	fromRemote := flag.Bool("from-remote", false, "Seed from the remote dictionary source")
	clear := flag.Bool("clear", false, "Clear existing entries before seeding (WARNING: destructive)")
	flag.Parse()

	if *wordlist == "" && !*fromRemote {
		fmt.Println("Error: either -wordlist or -from-remote is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	durable, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open durable store: %v", err)
	}
	defer durable.Close()

	ctx := context.Background()

	if *clear {
		if err := durable.Clear(ctx); err != nil {
			log.Fatalf("Failed to clear store: %v", err)
		}
		log.Println("Cleared existing entries")
	}

	var chunks map[string][]string
	if *wordlist != "" {
		chunks, err = chunksFromFile(*wordlist)
	} else {
		chunks, err = chunksFromRemote(ctx, cfg)
	}
	if err != nil {
		log.Fatalf("Failed to collect words: %v", err)
	}

	written, total := 0, 0
	for prefix, words := range chunks {
		payload, err := cache.EncodeEntry(words, cfg.DictionaryVersion)
		if err != nil {
			log.Fatalf("Failed to encode chunk %q: %v", prefix, err)
		}
		if err := durable.Set(ctx, prefix, payload); err != nil {
			log.Fatalf("Failed to write chunk %q: %v", prefix, err)
		}
		written++
		total += len(words)
	}

	log.Printf("Seeded %d prefix chunks (%d words) into %s store", written, total, cfg.StoreBackend)
}

// chunksFromFile groups a word list file by two-letter prefix
func chunksFromFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chunks := make(map[string][]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := index.Normalize(scanner.Text())
		if len(word) < 2 {
			continue
		}
		prefix := word[:2]
		chunks[prefix] = append(chunks[prefix], word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, words := range chunks {
		sort.Strings(words)
	}
	return chunks, nil
}

// chunksFromRemote pulls every prefix the remote's metadata lists
func chunksFromRemote(ctx context.Context, cfg *config.Config) (map[string][]string, error) {
	remote := source.NewHTTPSource(cfg.RemoteBaseURL, cfg.RemoteTimeout)

	meta, err := remote.FetchMetadata(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Remote dictionary: %d words, version %s", meta.TotalWords, meta.Version)

	chunks := make(map[string][]string, len(meta.PrefixCounts))
	for prefix, count := range meta.PrefixCounts {
		if count == 0 {
			continue
		}
		words, err := remote.FetchWords(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("prefix %q: %w", prefix, err)
		}
		chunks[prefix] = words

		// Be polite to the remote.
		time.Sleep(100 * time.Millisecond)
	}
	return chunks, nil
}

// openStore selects the durable-store backend from config
func openStore(cfg *config.Config) (store.DurableStore, error) {
	switch cfg.StoreBackend {
	case "badger":
		return store.NewBadgerStore(store.BadgerConfig{
			Path:       cfg.StorePath,
			SyncWrites: true,
		})
	default:
		return store.NewSQLStore(cfg.StoreBackend, store.DialectConfig{
			Path: cfg.StorePath,
			URL:  cfg.DatabaseURL,
		})
	}
}
