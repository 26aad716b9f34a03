package taxonomy

import (
	"log/slog"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
)

// InferRelationships returns the declared relationships followed by the
// relationships generated for each configured family pair. For every suffix,
// in sorted order, source_suffix -> target_suffix is emitted as a foreign key
// when both tables exist. Relationships whose endpoints are missing are
// dropped. Duplicates between the two sources are kept.
func InferRelationships(tables map[string]struct{}, r *rules.Rules, logger *slog.Logger) []core.Relationship {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]core.Relationship, 0, len(r.Relationships))
	for _, rel := range r.DeclaredRelationships() {
		if err := core.ValidateRelationship(&rel, tables); err != nil {
			logger.Debug("dropping declared relationship", "source", rel.Source, "target", rel.Target, "err", err)
			continue
		}
		out = append(out, rel)
	}

	suffixes := r.SortedSuffixes()
	for _, pair := range r.FamilyRelationships {
		for _, suffix := range suffixes {
			rel := core.Relationship{
				Source:  pair.Source + "_" + suffix,
				Target:  pair.Target + "_" + suffix,
				Columns: []string{pair.Column},
				Type:    core.RelationshipForeignKey,
				Note:    pair.Note,
			}
			if err := core.ValidateRelationship(&rel, tables); err != nil {
				continue
			}
			out = append(out, rel)
		}
	}
	return out
}
