package search

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/taxonomist/core"
)

const (
	// DefaultMaxHits caps the number of ranked tables returned.
	DefaultMaxHits = 15
	// DefaultTableThreshold is the minimum overall score for a table.
	DefaultTableThreshold = 0.35
	// DefaultColumnThreshold is the minimum score for a column hit.
	DefaultColumnThreshold = 0.4
	// DefaultMaxColumnHits caps the column hits reported per table.
	DefaultMaxColumnHits = 3
)

// Searcher ranks the tables of a taxonomy against free-text queries.
// It holds no per-query state and is safe for concurrent use.
type Searcher struct {
	maxHits         int
	tableThreshold  float64
	columnThreshold float64
	maxColumnHits   int
	workers         int
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMaxHits sets the maximum number of tables returned per query.
// Default is 15.
func WithMaxHits(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			return fmt.Errorf("%w: max hits must be positive, got %d", ErrInvalidOption, n)
		}
		s.maxHits = n
		return nil
	}
}

// WithThresholds sets the minimum table and column scores.
// Defaults are 0.35 and 0.4.
func WithThresholds(table, column float64) Option {
	return func(s *Searcher) error {
		if table < 0 || table > 1 || column < 0 || column > 1 {
			return fmt.Errorf("%w: thresholds must be within [0, 1], got %v and %v", ErrInvalidOption, table, column)
		}
		s.tableThreshold = table
		s.columnThreshold = column
		return nil
	}
}

// WithMaxColumnHits sets how many matching columns are reported per table.
// Default is 3.
func WithMaxColumnHits(n int) Option {
	return func(s *Searcher) error {
		if n < 0 {
			return fmt.Errorf("%w: max column hits must not be negative, got %d", ErrInvalidOption, n)
		}
		s.maxColumnHits = n
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		maxHits:         DefaultMaxHits,
		tableThreshold:  DefaultTableThreshold,
		columnThreshold: DefaultColumnThreshold,
		maxColumnHits:   DefaultMaxColumnHits,
		workers:         defaultWorkers(),
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the tables of tax against query.
// Returns up to the configured maximum of results, best first.
func (s *Searcher) Search(tax *core.Taxonomy, query string) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(tax, query, nil)
}

// SearchWithMonitor ranks the tables of tax against query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(tax *core.Taxonomy, query string, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if tax == nil {
		return nil, ErrTaxonomyRequired
	}
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if strings.TrimSpace(query) == "" {
		results := []*core.SearchResult{}
		monitor.Finish(results)
		return results, nil
	}

	// Sorted iteration keeps equal scores in a stable order.
	names := make([]string, 0, len(tax.TableIndex))
	for name := range tax.TableIndex {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]*core.SearchResult, 0)
	for _, name := range names {
		entry := tax.TableIndex[name]
		base := max(
			Similarity(query, name),
			Similarity(query, entry.Description),
			Similarity(query, strings.Join(entry.Groups, " ")),
		)
		hits := s.scoreColumns(query, tax.TableDetails[name].Columns)
		monitor.TableScored(name, base, hits)

		score := base
		if len(hits) > 0 && hits[0].Score > score {
			score = hits[0].Score
		}
		if score < s.tableThreshold {
			continue
		}
		results = append(results, &core.SearchResult{
			Score:   score,
			Table:   name,
			Entry:   entry,
			Columns: hits,
		})
	}
	monitor.AfterFiltering(len(results))

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > s.maxHits {
		results = results[:s.maxHits]
	}

	s.logger.Debug("search complete", "query", query, "tables", len(names), "results", len(results))
	monitor.Finish(results)
	return results, nil
}

// scoreColumns returns the best matching columns, best first.
func (s *Searcher) scoreColumns(query string, columns []core.Column) []core.ColumnHit {
	hits := make([]core.ColumnHit, 0)
	for _, c := range columns {
		score := Similarity(query, c.Name+" "+c.Description)
		if score >= s.columnThreshold {
			hits = append(hits, core.ColumnHit{Score: score, Name: c.Name, Description: c.Description})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > s.maxColumnHits {
		hits = hits[:s.maxColumnHits]
	}
	return hits
}
