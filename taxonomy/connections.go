package taxonomy

import (
	"fmt"
	"sort"

	"github.com/poiesic/taxonomist/core"
)

// SharedColumn is a column name a table has in common with other tables.
type SharedColumn struct {
	Column string   `json:"column"`
	Tables []string `json:"tables"`
}

// SharedColumns lists the columns of table that also appear in other tables,
// sorted by column name. Column names in ignore are skipped.
func SharedColumns(tax *core.Taxonomy, table string, ignore map[string]struct{}) ([]SharedColumn, error) {
	own, ok := tax.TableDetails[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	wanted := make(map[string]struct{}, len(own.Columns))
	for _, c := range own.Columns {
		if c.Name == "" {
			continue
		}
		if _, skip := ignore[c.Name]; skip {
			continue
		}
		wanted[c.Name] = struct{}{}
	}

	others := make(map[string][]string, len(wanted))
	for name, details := range tax.TableDetails {
		if name == table {
			continue
		}
		for _, c := range details.Columns {
			if _, ok := wanted[c.Name]; ok {
				others[c.Name] = append(others[c.Name], name)
			}
		}
	}

	out := make([]SharedColumn, 0, len(others))
	for col, tables := range others {
		out = append(out, SharedColumn{Column: col, Tables: sortedUnique(tables)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Column < out[j].Column })
	return out, nil
}

// RelatedRelationships returns the relationships with table as source or
// target, in output order.
func RelatedRelationships(tax *core.Taxonomy, table string) []core.Relationship {
	out := make([]core.Relationship, 0)
	for _, rel := range tax.Relationships {
		if rel.Source == table || rel.Target == table {
			out = append(out, rel)
		}
	}
	return out
}
