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


package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/poiesic/taxonomist/core"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRules []byte

// Rules holds the curated classification tables applied by a taxonomy build.
// A Rules value is a versioned snapshot: builds never modify it.
type Rules struct {
	Version            string   `yaml:"version"`
	TaxonomyVersion    string   `yaml:"taxonomy_version"`
	Suffixes           []string `yaml:"suffixes"`
	MiscellaneousGroup string   `yaml:"miscellaneous_group"`
	OtherSubgroup      string   `yaml:"other_subgroup"`
	ClinicalTrialGroup string   `yaml:"clinical_trial_group"`

	Goals          []string `yaml:"goals"`
	GenericColumns []string `yaml:"generic_columns"`

	Domains            []DomainRule        `yaml:"domains"`
	GroupDescriptions  map[string]string   `yaml:"group_descriptions"`
	TableNotes         map[string]string   `yaml:"table_notes"`
	MiscSubgroups      []SubgroupRule      `yaml:"misc_subgroups"`
	TableDescriptions  map[string]string   `yaml:"table_descriptions"`
	FamilyDescriptions map[string]string   `yaml:"family_descriptions"`
	TableGroupSet      map[string][]string `yaml:"table_group_set"`
	TableGroupAdd      map[string][]string `yaml:"table_group_add"`

	Relationships       []RelationshipRule `yaml:"relationships"`
	FamilyRelationships []FamilyPair       `yaml:"family_relationships"`
}

// DomainRule maps a top-level domain to its ordered member groups.
type DomainRule struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Groups      []string `yaml:"groups"`
}

// SubgroupRule is an allow-list routing ungrouped tables into a subgroup.
type SubgroupRule struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tables      []string `yaml:"tables"`
}

// RelationshipRule is a declared relationship between two concrete tables.
type RelationshipRule struct {
	Source  string   `yaml:"source"`
	Target  string   `yaml:"target"`
	Columns []string `yaml:"columns"`
	Type    string   `yaml:"type"`
	Note    string   `yaml:"note"`
}

// FamilyPair links two families whose same-suffix variants join on Column.
type FamilyPair struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Column string `yaml:"column"`
	Note   string `yaml:"note"`
}

// Default returns a fresh copy of the built-in rules.
func Default() *Rules {
	r, err := decode(nil, bytes.NewReader(defaultRules))
	if err != nil {
		// The embedded file is covered by tests.
		panic(fmt.Sprintf("rules: embedded defaults: %v", err))
	}
	return r
}

// Load reads a rules file and layers it over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Rules, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRulesUnreadable, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML rules over the defaults. Maps are merged key by key,
// lists replace the default list entirely.
func Parse(r io.Reader) (*Rules, error) {
	return decode(Default(), r)
}

func decode(base *Rules, r io.Reader) (*Rules, error) {
	if base == nil {
		base = &Rules{}
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(base); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// Validate checks internal consistency of the rule tables.
func (r *Rules) Validate() error {
	if len(r.Suffixes) == 0 {
		return fmt.Errorf("%w: no suffixes", ErrInvalidRules)
	}
	if r.MiscellaneousGroup == "" {
		return fmt.Errorf("%w: miscellaneous_group is required", ErrInvalidRules)
	}
	if r.OtherSubgroup == "" {
		return fmt.Errorf("%w: other_subgroup is required", ErrInvalidRules)
	}

	owner := make(map[string]string)
	for _, d := range r.Domains {
		if d.Name == "" {
			return fmt.Errorf("%w: domain without a name", ErrInvalidRules)
		}
		for _, g := range d.Groups {
			if prev, ok := owner[g]; ok {
				return fmt.Errorf("%w: group %q in domains %q and %q", ErrInvalidRules, g, prev, d.Name)
			}
			owner[g] = d.Name
		}
	}

	for _, rel := range r.Relationships {
		if rel.Source == "" || rel.Target == "" {
			return fmt.Errorf("%w: relationship needs source and target", ErrInvalidRules)
		}
		if err := core.ValidateRelationshipType(core.RelationshipType(rel.Type)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
	}
	for _, p := range r.FamilyRelationships {
		if p.Source == "" || p.Target == "" || p.Column == "" {
			return fmt.Errorf("%w: family relationship needs source, target and column", ErrInvalidRules)
		}
	}
	return nil
}

// SuffixSet returns the suffix vocabulary as a set.
func (r *Rules) SuffixSet() map[string]struct{} {
	return toSet(r.Suffixes)
}

// SortedSuffixes returns the suffix vocabulary in lexicographic order.
func (r *Rules) SortedSuffixes() []string {
	out := make([]string, 0, len(r.Suffixes))
	for s := range r.SuffixSet() {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// GenericColumnSet returns columns ignored when comparing tables.
func (r *Rules) GenericColumnSet() map[string]struct{} {
	return toSet(r.GenericColumns)
}

// DomainOf maps every configured group to its domain.
func (r *Rules) DomainOf() map[string]string {
	out := make(map[string]string)
	for _, d := range r.Domains {
		for _, g := range d.Groups {
			out[g] = d.Name
		}
	}
	return out
}

// MiscellaneousDomain names the domain holding the Miscellaneous group,
// falling back to the group name itself.
func (r *Rules) MiscellaneousDomain() string {
	if d, ok := r.DomainOf()[r.MiscellaneousGroup]; ok {
		return d
	}
	return r.MiscellaneousGroup
}

// SubgroupFor routes a Miscellaneous table to its subgroup. The first
// allow-list containing the table wins; unlisted tables go to OtherSubgroup.
func (r *Rules) SubgroupFor(table string) string {
	for _, sg := range r.MiscSubgroups {
		for _, t := range sg.Tables {
			if t == table {
				return sg.Name
			}
		}
	}
	return r.OtherSubgroup
}

// SubgroupDescription returns the description of a Miscellaneous subgroup.
func (r *Rules) SubgroupDescription(name string) string {
	for _, sg := range r.MiscSubgroups {
		if sg.Name == name {
			return sg.Description
		}
	}
	return ""
}

// DeclaredRelationships converts the declared relationship rules.
func (r *Rules) DeclaredRelationships() []core.Relationship {
	out := make([]core.Relationship, 0, len(r.Relationships))
	for _, rel := range r.Relationships {
		out = append(out, core.Relationship{
			Source:  rel.Source,
			Target:  rel.Target,
			Columns: append([]string{}, rel.Columns...),
			Type:    core.RelationshipType(rel.Type),
			Note:    rel.Note,
		})
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, s := range items {
		out[s] = struct{}{}
	}
	return out
}
