package search

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/taxonomist/core"
)

// BatchResult holds the outcome of one query of a batch.
type BatchResult struct {
	Query   string               `json:"query"`
	Results []*core.SearchResult `json:"results"`
	Err     error                `json:"-"`
}

// WithWorkers sets the worker pool size used by SearchMany.
// Default is half the number of CPUs, at least one.
func WithWorkers(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidOption, n)
		}
		s.workers = n
		return nil
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// SearchMany runs every query against the same taxonomy on a worker pool.
// Results are returned in query order. progress may be nil.
func (s *Searcher) SearchMany(ctx context.Context, tax *core.Taxonomy, queries []string, progress *ProgressTracker) ([]BatchResult, error) {
	if tax == nil {
		return nil, ErrTaxonomyRequired
	}
	out := make([]BatchResult, len(queries))
	if len(queries) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(queries)))
	if err != nil {
		return nil, fmt.Errorf("creating search pool: %w", err)
	}
	defer pool.Release()

	if progress != nil {
		progress.Start()
	}

	var wg sync.WaitGroup
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results, err := s.Search(tax, query)
			out[i] = BatchResult{Query: query, Results: results, Err: err}
			if progress != nil {
				progress.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting query %q: %w", query, err)
		}
	}
	wg.Wait()

	if progress != nil {
		progress.Finish()
	}
	s.logger.Debug("batch search complete", "queries", len(queries))
	return out, nil
}
