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


package taxonomy

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
)

// Builder turns metadata snapshots into taxonomies under a fixed rule set.
type Builder struct {
	rules  *rules.Rules
	source string
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithRules sets the classification rules.
// Default is rules.Default().
func WithRules(r *rules.Rules) Option {
	return func(b *Builder) error {
		if r == nil {
			return ErrRulesRequired
		}
		if err := r.Validate(); err != nil {
			return err
		}
		b.rules = r
		return nil
	}
}

// WithSource records where the metadata came from in the output.
func WithSource(source string) Option {
	return func(b *Builder) error {
		b.source = source
		return nil
	}
}

// NewBuilder creates a new taxonomy builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if b.rules == nil {
		b.rules = rules.Default()
	}

	return b, nil
}

// Rules returns the rule set used by the builder.
func (b *Builder) Rules() *rules.Rules {
	return b.rules
}

// Build assembles a taxonomy from a metadata snapshot. The snapshot is not
// modified.
func (b *Builder) Build(meta *core.Metadata) (*core.Taxonomy, error) {
	if meta == nil {
		return nil, ErrMetadataRequired
	}
	if err := core.ValidateMetadata(meta); err != nil {
		return nil, err
	}

	r := b.rules
	names := meta.TableNames()
	tableSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		tableSet[n] = struct{}{}
	}

	families := ResolveFamilies(names, r.SuffixSet())
	tableGroups := ResolveTableGroups(meta.Tables, r)
	hierarchy := NormalizeGroups(meta.Info.Groups, tableGroups, r, b.logger)
	subgroups := RouteMiscellaneous(hierarchy[r.MiscellaneousGroup].Tables, r)
	domains := AssembleDomains(hierarchy, subgroups, r)
	relationships := InferRelationships(tableSet, r, b.logger)
	index, details := BuildIndex(meta.Tables, tableGroups, families, r)

	b.logger.Debug("built taxonomy",
		"tables", len(names),
		"families", len(families),
		"groups", len(hierarchy),
		"ungrouped", len(hierarchy[r.MiscellaneousGroup].Tables),
		"relationships", len(relationships))

	return &core.Taxonomy{
		Version:        r.TaxonomyVersion,
		Source:         b.source,
		Goals:          append([]string{}, r.Goals...),
		Domains:        domains,
		GroupHierarchy: hierarchy,
		TableIndex:     index,
		TableDetails:   details,
		Relationships:  relationships,
	}, nil
}

// Build assembles a taxonomy with a one-off Builder.
func Build(meta *core.Metadata, opts ...Option) (*core.Taxonomy, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring builder: %w", err)
	}
	return b.Build(meta)
}
