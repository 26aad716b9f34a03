package search

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaxonomy(tables map[string]core.IndexEntry, columns map[string][]core.Column) *core.Taxonomy {
	details := make(map[string]core.TableDetails, len(tables))
	for name, entry := range tables {
		details[name] = core.TableDetails{Description: entry.Description, Columns: columns[name]}
	}
	return &core.Taxonomy{TableIndex: tables, TableDetails: details}
}

func recsysTaxonomy() *core.Taxonomy {
	return newTaxonomy(
		map[string]core.IndexEntry{
			"recsys_metrics": {
				Label:       "Recsys Metrics",
				Description: "Metrics used by the recommender system (delta_dm, adherence, PPF, etc.).",
				Groups:      []string{"RecSys"},
			},
			"hospital": {
				Label:       "Hospital",
				Description: "Hospital organizations.",
				Groups:      []string{"Hospital"},
			},
			"opaque": {
				Label:  "Opaque",
				Groups: []string{},
			},
		},
		map[string][]core.Column{
			"opaque": {
				{Name: "zzz", Description: "qqq"},
				{Name: "delta_dm", Description: "change in difficulty modulator"},
				{Name: "delta", Description: ""},
				{Name: "dm_delta_raw", Description: "raw"},
				{Name: "deltadm", Description: ""},
			},
		},
	)
}

func TestNewSearcher(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := NewSearcher()
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxHits, s.maxHits)
		assert.Equal(t, DefaultTableThreshold, s.tableThreshold)
		assert.Equal(t, DefaultColumnThreshold, s.columnThreshold)
		assert.Equal(t, DefaultMaxColumnHits, s.maxColumnHits)
		assert.GreaterOrEqual(t, s.workers, 1)
	})

	t.Run("with custom logger", func(t *testing.T) {
		s, err := NewSearcher(WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		s, err := NewSearcher(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, s.logger)
	})

	t.Run("custom limits", func(t *testing.T) {
		s, err := NewSearcher(WithMaxHits(5), WithThresholds(0.5, 0.6), WithMaxColumnHits(1), WithWorkers(2))
		require.NoError(t, err)
		assert.Equal(t, 5, s.maxHits)
		assert.Equal(t, 0.5, s.tableThreshold)
		assert.Equal(t, 0.6, s.columnThreshold)
		assert.Equal(t, 1, s.maxColumnHits)
		assert.Equal(t, 2, s.workers)
	})

	t.Run("invalid options", func(t *testing.T) {
		for _, opt := range []Option{
			WithMaxHits(0),
			WithThresholds(1.5, 0.4),
			WithThresholds(0.35, -0.1),
			WithMaxColumnHits(-1),
			WithWorkers(0),
		} {
			_, err := NewSearcher(opt)
			assert.ErrorIs(t, err, ErrInvalidOption)
		}
	})
}

func TestSearch_NilTaxonomy(t *testing.T) {
	s, err := NewSearcher()
	require.NoError(t, err)
	_, err = s.Search(nil, "x")
	assert.Equal(t, ErrTaxonomyRequired, err)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, err := NewSearcher()
	require.NoError(t, err)

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := s.Search(recsysTaxonomy(), q)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestSearch_TokenOverlapOnDescription(t *testing.T) {
	s, err := NewSearcher()
	require.NoError(t, err)

	results, err := s.Search(recsysTaxonomy(), "delta dm")
	require.NoError(t, err)

	var found *core.SearchResult
	for _, r := range results {
		if r.Table == "recsys_metrics" {
			found = r
		}
	}
	require.NotNil(t, found, "recsys_metrics should be ranked")
	assert.GreaterOrEqual(t, found.Score, DefaultTableThreshold)
	assert.Equal(t, "Recsys Metrics", found.Entry.Label)

	for _, r := range results {
		assert.NotEqual(t, "hospital", r.Table)
	}
}

func TestSearch_ColumnHits(t *testing.T) {
	s, err := NewSearcher()
	require.NoError(t, err)

	results, err := s.Search(recsysTaxonomy(), "delta dm")
	require.NoError(t, err)

	var opaque *core.SearchResult
	for _, r := range results {
		if r.Table == "opaque" {
			opaque = r
		}
	}
	require.NotNil(t, opaque, "table should qualify through its columns")

	require.NotEmpty(t, opaque.Columns)
	assert.LessOrEqual(t, len(opaque.Columns), DefaultMaxColumnHits)
	assert.Equal(t, "delta_dm", opaque.Columns[0].Name)
	assert.InDelta(t, 1.0, opaque.Columns[0].Score, 1e-9)
	assert.InDelta(t, opaque.Columns[0].Score, opaque.Score, 1e-9)
	for i := 1; i < len(opaque.Columns); i++ {
		assert.GreaterOrEqual(t, opaque.Columns[i-1].Score, opaque.Columns[i].Score)
	}
	for _, c := range opaque.Columns {
		assert.GreaterOrEqual(t, c.Score, DefaultColumnThreshold)
		assert.NotEqual(t, "zzz", c.Name)
	}
}

func TestSearch_ResultCap(t *testing.T) {
	tables := make(map[string]core.IndexEntry)
	for i := 0; i < 20; i++ {
		tables[fmt.Sprintf("t%02d", i)] = core.IndexEntry{Description: "patient profile"}
	}
	tables["patient"] = core.IndexEntry{Description: "Main patient table"}
	tax := newTaxonomy(tables, nil)

	s, err := NewSearcher()
	require.NoError(t, err)

	results, err := s.Search(tax, "patient")
	require.NoError(t, err)
	require.Len(t, results, DefaultMaxHits)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "patient", results[0].Table)
	assert.Equal(t, "t00", results[1].Table)
	assert.Equal(t, "t13", results[len(results)-1].Table)
}

func TestSearch_CustomMaxHits(t *testing.T) {
	s, err := NewSearcher(WithMaxHits(1))
	require.NoError(t, err)

	results, err := s.Search(recsysTaxonomy(), "delta dm")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

type recordingMonitor struct {
	started  string
	scored   map[string]float64
	retained int
	finished []*core.SearchResult
}

func (m *recordingMonitor) Start(query string) { m.started = query }
func (m *recordingMonitor) TableScored(table string, base float64, _ []core.ColumnHit) {
	if m.scored == nil {
		m.scored = make(map[string]float64)
	}
	m.scored[table] = base
}
func (m *recordingMonitor) AfterFiltering(retained int)          { m.retained = retained }
func (m *recordingMonitor) Finish(results []*core.SearchResult) { m.finished = results }

func TestSearchWithMonitor(t *testing.T) {
	s, err := NewSearcher()
	require.NoError(t, err)

	m := &recordingMonitor{}
	results, err := s.SearchWithMonitor(recsysTaxonomy(), "delta dm", m)
	require.NoError(t, err)

	assert.Equal(t, "delta dm", m.started)
	assert.Len(t, m.scored, 3)
	assert.Equal(t, len(results), m.retained)
	assert.Equal(t, results, m.finished)
}

func TestSearchMany(t *testing.T) {
	s, err := NewSearcher(WithWorkers(2))
	require.NoError(t, err)
	tax := recsysTaxonomy()
	queries := []string{"delta dm", "hospital", "", "nothing matches this at all qqqq"}

	var buf bytes.Buffer
	progress := NewProgressTracker(&buf, len(queries), 1)

	batch, err := s.SearchMany(context.Background(), tax, queries, progress)
	require.NoError(t, err)
	require.Len(t, batch, len(queries))

	for i, q := range queries {
		assert.Equal(t, q, batch[i].Query)
		require.NoError(t, batch[i].Err)
		single, err := s.Search(tax, q)
		require.NoError(t, err)
		assert.Equal(t, single, batch[i].Results)
	}
	assert.Contains(t, buf.String(), "4/4")
	assert.Equal(t, len(queries), progress.Done())
}

func TestSearchMany_Errors(t *testing.T) {
	s, err := NewSearcher()
	require.NoError(t, err)

	t.Run("nil taxonomy", func(t *testing.T) {
		_, err := s.SearchMany(context.Background(), nil, []string{"x"}, nil)
		assert.Equal(t, ErrTaxonomyRequired, err)
	})

	t.Run("no queries", func(t *testing.T) {
		out, err := s.SearchMany(context.Background(), recsysTaxonomy(), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.SearchMany(ctx, recsysTaxonomy(), []string{"a", "b"}, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
