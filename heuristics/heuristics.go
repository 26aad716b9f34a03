package heuristics

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/taxonomist/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultSampleLimit is how many raw sample values are considered per column.
	DefaultSampleLimit = 10
	// maxExamples is the largest number of distinct samples quoted in a description.
	maxExamples = 5
)

// droppedWords are name segments that carry no meaning in a fallback label.
var droppedWords = map[string]struct{}{"id": {}, "code": {}, "num": {}, "no": {}}

// Suggestion is a proposed description for one column.
type Suggestion struct {
	Table     string `json:"table"`
	Column    string `json:"column"`
	DataType  string `json:"data_type"`
	Current   string `json:"current"`
	Suggested string `json:"suggested"`
}

// Suggester produces starter column descriptions.
type Suggester struct {
	rules       []Rule
	sampleLimit int
	logger      *slog.Logger
}

// Option configures a Suggester.
type Option func(*Suggester) error

// WithLogger sets the logger. A nil logger selects slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suggester) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRules replaces the ordered rule list.
func WithRules(rules []Rule) Option {
	return func(s *Suggester) error {
		for i, r := range rules {
			if r.Pattern == nil {
				return fmt.Errorf("rule %d has no pattern", i)
			}
		}
		s.rules = rules
		return nil
	}
}

// WithSampleLimit sets how many raw sample values are read per column.
func WithSampleLimit(n int) Option {
	return func(s *Suggester) error {
		if n < 0 {
			return fmt.Errorf("sample limit must not be negative, got %d", n)
		}
		s.sampleLimit = n
		return nil
	}
}

// NewSuggester creates a Suggester using DefaultRules unless overridden.
func NewSuggester(opts ...Option) (*Suggester, error) {
	s := &Suggester{
		rules:       DefaultRules,
		sampleLimit: DefaultSampleLimit,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// StarterDescription describes a column with the default rules.
func StarterDescription(name string, samples []string) string {
	return describe(DefaultRules, name, samples)
}

// Describe returns a starter description for the named column.
func (s *Suggester) Describe(name string, samples []string) string {
	return describe(s.rules, name, samples)
}

func describe(rules []Rule, name string, samples []string) string {
	lower := strings.ToLower(name)
	for _, r := range rules {
		if !r.Pattern.MatchString(lower) {
			continue
		}
		if examples := distinct(samples); len(examples) > 0 && len(examples) <= maxExamples {
			return fmt.Sprintf("%s (e.g., %s)", r.Description, strings.Join(examples, ", "))
		}
		return r.Description
	}
	return fallback(name)
}

// fallback renders an unmatched name as "<Words> field".
func fallback(name string) string {
	if strings.Contains(name, "_") {
		var words []string
		for _, w := range strings.Split(name, "_") {
			if _, drop := droppedWords[w]; !drop {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			caser := cases.Title(language.English)
			for i, w := range words {
				words[i] = caser.String(w)
			}
			return strings.Join(words, " ") + " field"
		}
	}
	if name == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " ")) + " field"
}

// distinct returns the non-blank trimmed samples without repeats, in first-seen order.
func distinct(samples []string) []string {
	seen := make(map[string]struct{}, len(samples))
	out := make([]string, 0, len(samples))
	for _, v := range samples {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NeedsDescription reports whether a column description is absent or looks
// generated by the fallback.
func NeedsDescription(description string) bool {
	d := strings.TrimSpace(description)
	return d == "" || strings.Contains(strings.ToLower(d), "field")
}

// Samples collects up to limit non-null values of column from the sample rows.
func Samples(rows []core.Node, column string, limit int) []string {
	var out []string
	for _, row := range rows {
		if len(out) >= limit {
			break
		}
		v, ok := row.Field(column)
		if !ok || v.Null {
			continue
		}
		out = append(out, v.String())
	}
	return out
}

// Suggest proposes descriptions for every column that needs one, in table
// and column order.
func (s *Suggester) Suggest(meta *core.Metadata) ([]Suggestion, error) {
	if meta == nil {
		return nil, ErrMetadataRequired
	}
	out := make([]Suggestion, 0)
	for _, t := range meta.Tables {
		for _, col := range core.ParseColumns(t.Columns) {
			if col.Name == "" || !NeedsDescription(col.Description) {
				continue
			}
			samples := Samples(t.SampleRows, col.Name, s.sampleLimit)
			out = append(out, Suggestion{
				Table:     t.Name,
				Column:    col.Name,
				DataType:  col.DataType,
				Current:   col.Description,
				Suggested: s.Describe(col.Name, samples),
			})
		}
	}
	s.logger.Debug("suggested column descriptions", "tables", len(meta.Tables), "suggestions", len(out))
	return out, nil
}
