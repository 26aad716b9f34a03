// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package taxonomist builds navigable taxonomies from curated database-table
// metadata and keeps every build in a local snapshot catalog.
package taxonomist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/heuristics"
	"github.com/poiesic/taxonomist/rules"
	"github.com/poiesic/taxonomist/search"
	"github.com/poiesic/taxonomist/storage"
	"github.com/poiesic/taxonomist/storage/badger"
	"github.com/poiesic/taxonomist/taxonomy"
)

// Catalog builds taxonomies and stores them as snapshots.
type Catalog struct {
	backend *badger.Backend
	repo    storage.SnapshotRepository
	rules   *rules.Rules
	logger  *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	logger   *slog.Logger
	rules    *rules.Rules
	inMemory bool
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRules sets the classification rules used for every build.
// Default is rules.Default().
func WithRules(r *rules.Rules) CatalogOption {
	return func(o *catalogOptions) {
		o.rules = r
	}
}

// WithInMemory keeps snapshots in memory only. The directory is ignored.
func WithInMemory() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// OpenCatalog opens or creates a snapshot catalog in dir.
func OpenCatalog(dir string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		logger: slog.Default(),
		rules:  rules.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.rules == nil {
		return nil, taxonomy.ErrRulesRequired
	}
	if err := options.rules.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(dir, options.inMemory, options.logger)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	repo, err := badger.NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Catalog{
		backend: backend,
		repo:    repo,
		rules:   options.rules,
		logger:  options.logger,
	}, nil
}

// Close closes the snapshot store.
func (c *Catalog) Close() error {
	if err := c.repo.Close(); err != nil {
		c.logger.Error("error closing snapshot repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Rules returns the rule set used for builds.
func (c *Catalog) Rules() *rules.Rules {
	return c.rules
}

// SnapshotRepository exposes the underlying snapshot store.
func (c *Catalog) SnapshotRepository() storage.SnapshotRepository {
	return c.repo
}

// Build builds a taxonomy from meta and stores it as the latest snapshot.
// The snapshot ID is derived from the taxonomy document, so rebuilding
// unchanged input under unchanged rules yields the same ID.
func (c *Catalog) Build(ctx context.Context, meta *core.Metadata, source string) (*core.Snapshot, error) {
	tax, err := taxonomy.Build(meta,
		taxonomy.WithRules(c.rules),
		taxonomy.WithSource(source),
		taxonomy.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	return c.Save(ctx, tax)
}

// Save stores an already built taxonomy as a new snapshot and makes it the
// latest one.
func (c *Catalog) Save(ctx context.Context, tax *core.Taxonomy) (*core.Snapshot, error) {
	if tax == nil {
		return nil, storage.ErrSnapshotRequired
	}
	id, err := ContentID(tax)
	if err != nil {
		return nil, err
	}

	snapshot, err := c.repo.SaveSnapshot(ctx, &core.Snapshot{
		Id:           id,
		Source:       tax.Source,
		RulesVersion: c.rules.Version,
		Taxonomy:     tax,
	})
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	c.logger.Info("stored snapshot", "id", snapshot.Id, "tables", len(tax.TableIndex))
	return snapshot, nil
}

func (c *Catalog) Latest(ctx context.Context) (*core.Snapshot, error) {
	return c.repo.LatestSnapshot(ctx)
}

// Get returns a stored snapshot by ID.
func (c *Catalog) Get(ctx context.Context, id core.ID) (*core.Snapshot, error) {
	return c.repo.GetSnapshot(ctx, id)
}

// Snapshots lists stored snapshots, newest first.
func (c *Catalog) Snapshots(ctx context.Context) ([]*core.SnapshotHeader, error) {
	return c.repo.ListSnapshots(ctx)
}

// Delete removes a stored snapshot.
func (c *Catalog) Delete(ctx context.Context, id core.ID) error {
	return c.repo.DeleteSnapshot(ctx, id)
}

// NewSearcher creates a searcher that logs through the catalog's logger.
func (c *Catalog) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(append([]search.Option{search.WithLogger(c.logger)}, opts...)...)
}

// NewSuggester creates a column description suggester that logs through the
// catalog's logger.
func (c *Catalog) NewSuggester(opts ...heuristics.Option) (*heuristics.Suggester, error) {
	return heuristics.NewSuggester(append([]heuristics.Option{heuristics.WithLogger(c.logger)}, opts...)...)
}

// ContentID derives the snapshot ID of a taxonomy from its JSON document.
func ContentID(tax *core.Taxonomy) (core.ID, error) {
	data, err := json.Marshal(tax)
	if err != nil {
		return 0, fmt.Errorf("encoding taxonomy: %w", err)
	}
	return core.IDFromContent(string(data)), nil
}
