package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/taxonomist"
	"github.com/poiesic/taxonomist/config"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/ingestion"
	"github.com/poiesic/taxonomist/rules"
	"github.com/poiesic/taxonomist/storage"
	"github.com/poiesic/taxonomist/taxonomy"
	"github.com/urfave/cli/v2"
)

// flagKeys maps command flags onto config keys. Only flags the user set
// override lower layers.
var flagKeys = map[string]string{
	"input":           "input",
	"output-json":     "output_json",
	"output-markdown": "output_markdown",
	"rules":           "rules",
	"db":              "db",
	"limit":           "search.max_hits",
	"workers":         "search.workers",
	"addr":            "server.addr",
	"watch":           "server.watch",
	"cache-size":      "server.cache_size",
	"cache-ttl":       "server.cache_ttl",
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if c.IsSet(flag) {
			overrides[key] = c.Value(flag)
		}
	}
	return config.Load(c.String("config"), overrides)
}

// source yields taxonomy snapshots, either rebuilt from the input file or
// read from a catalog.
type source struct {
	cfg           *config.Config
	rules         *rules.Rules
	catalog       *taxonomist.Catalog
	preferCatalog bool
	logger        *slog.Logger
}

func openSource(c *cli.Context) (*source, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	r, err := rules.Load(cfg.Rules)
	if err != nil {
		return nil, err
	}

	src := &source{
		cfg:           cfg,
		rules:         r,
		preferCatalog: !c.IsSet("input"),
		logger:        slog.Default(),
	}
	if cfg.DB != "" {
		src.catalog, err = taxonomist.OpenCatalog(cfg.DB, taxonomist.WithRules(r), taxonomist.WithLogger(src.logger))
		if err != nil {
			return nil, err
		}
	}
	return src, nil
}

func (s *source) Close() {
	if s.catalog != nil {
		if err := s.catalog.Close(); err != nil {
			s.logger.Error("error closing catalog", "err", err)
		}
	}
}

// build loads the input and builds a new snapshot without storing it.
func (s *source) build() (*core.Snapshot, error) {
	meta, err := ingestion.LoadFile(s.cfg.Input)
	if err != nil {
		return nil, err
	}
	tax, err := taxonomy.Build(meta,
		taxonomy.WithRules(s.rules),
		taxonomy.WithSource(s.cfg.Input),
		taxonomy.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	id, err := taxonomist.ContentID(tax)
	if err != nil {
		return nil, err
	}
	return &core.Snapshot{
		Id:           id,
		Source:       s.cfg.Input,
		RulesVersion: s.rules.Version,
		CreatedAt:    time.Now().UTC(),
		Taxonomy:     tax,
	}, nil
}

// store saves snap in the catalog when one is open.
func (s *source) store(ctx context.Context, snap *core.Snapshot) (*core.Snapshot, error) {
	if s.catalog == nil {
		return snap, nil
	}
	return s.catalog.Save(ctx, snap.Taxonomy)
}

// rebuild builds a new snapshot and stores it when a catalog is open.
func (s *source) rebuild(ctx context.Context) (*core.Snapshot, error) {
	snap, err := s.build()
	if err != nil {
		return nil, err
	}
	return s.store(ctx, snap)
}

// snapshot returns the latest catalog snapshot unless --input was given or
// the catalog is empty, in which case the input is rebuilt.
func (s *source) snapshot(ctx context.Context) (*core.Snapshot, error) {
	if s.catalog != nil && s.preferCatalog {
		snap, err := s.catalog.Latest(ctx)
		if err == nil {
			s.logger.Debug("using stored snapshot", "id", snap.Id, "created_at", snap.CreatedAt)
			return snap, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("reading latest snapshot: %w", err)
		}
	}
	return s.rebuild(ctx)
}
