package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/poiesic/docvault"
	"github.com/poiesic/docvault/core"
	"github.com/poiesic/docvault/storage/async"
)

var titles = []string{
	"The quick brown fox jumps over the lazy dog.",
	"A gentle breeze rustled the leaves of the old oak tree.",
	"She found a hidden key in the dusty attic.",
	"The city skyline glowed under the starry night sky.",
	"Rain drummed on the rooftop, creating a soothing rhythm.",
	"A bright comet streaked across the horizon at midnight.",
	"The ancient library held stories that never faded.",
	"Beneath the waves, coral gardens shimmered in colors unseen.",
	"A mysterious map led them to a forgotten treasure.",
	"The lighthouse beam cut through fog, guiding sailors safely.",
}

func main() {
	root := flag.String("root", "", "Root directory for tenant stores (required)")
	store := flag.String("store", "seed", "Tenant store identifier")
	kind := flag.String("kind", "note", "Document kind tag")
	count := flag.Int("count", 100, "Number of documents to seed")
	workers := flag.Int("workers", 4, "Concurrent put workers")
	flag.Parse()

	if *root == "" {
		flag.Usage()
		os.Exit(2)
	}

	vault, err := docvault.Open(*root)
	if err != nil {
		log.Fatalf("failed to open vault: %v", err)
	}
	defer vault.Close()

	repo, err := vault.Store(*store)
	if err != nil {
		log.Fatalf("failed to open store %q: %v", *store, err)
	}

	arepo, err := async.New(repo, async.WithPoolSize(*workers))
	if err != nil {
		log.Fatalf("failed to create async repository: %v", err)
	}
	defer arepo.Release()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	results := make([]*async.Result[*core.Document], 0, *count)
	for i := 0; i < *count; i++ {
		title := titles[i%len(titles)]

		// Content-derived IDs keep reseeding idempotent.
		doc := &core.Document{
			ID:   core.IDFromContent(fmt.Sprintf("%s-%d", *kind, i)),
			Kind: *kind,
			Fields: map[string]core.Value{
				"title":     core.String(title),
				"index":     core.Int(int64(i)),
				"score":     core.Float(rng.Float64()),
				"published": core.Bool(i%2 == 0),
				"embedding": core.Vector([]float64{rng.Float64(), rng.Float64(), rng.Float64()}),
				"payload":   core.Bytes([]byte(title)),
			},
		}
		results = append(results, arepo.Create(ctx, doc))
	}

	seeded := 0
	for _, res := range results {
		if _, err := res.Wait(ctx); err != nil {
			slog.Error("seed put failed", "store", *store, "err", err)
			continue
		}
		seeded++
	}

	if err := vault.Flush(*store); err != nil {
		log.Fatalf("failed to flush store %q: %v", *store, err)
	}

	fmt.Printf("seeded %d/%d documents into %s\n", seeded, *count, *store)
}
