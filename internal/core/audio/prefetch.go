package audio

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
)

// Item is one unit to synthesize ahead of time.
type Item struct {
	Key  analysis.Key
	Lang analysis.Lang
	Text string
}

// Outcome is the result of synthesizing one item. Exactly one of Handle
// and Err is set.
type Outcome struct {
	Handle Handle
	Err    error
}

// DefaultWorkers bounds the prefetch gather when no limit is configured.
const DefaultWorkers = 4

// Prefetch synthesizes all items concurrently, at most workers at a time.
// A failure is recorded on its own item and never cancels siblings.
func Prefetch(ctx context.Context, syn Synthesizer, store *Store, items []Item, workers int) map[analysis.Key]Outcome {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		mu  sync.Mutex
		out = make(map[analysis.Key]Outcome, len(items))
	)

	var g errgroup.Group
	g.SetLimit(workers)

	for _, it := range items {
		g.Go(func() error {
			h, err := store.Synthesize(ctx, syn, it.Key, it.Lang, it.Text)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out[it.Key] = Outcome{Err: err}
			} else {
				out[it.Key] = Outcome{Handle: h}
			}
			return nil
		})
	}

	_ = g.Wait()
	return out
}
