package taxonomy

import (
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
)

// Describe resolves a table description: a per-table override wins, then an
// override for the table's base name, then the source description.
func Describe(table, source string, r *rules.Rules) string {
	if d := r.TableDescriptions[table]; d != "" {
		return d
	}
	if base, ok := BaseName(table, r.SuffixSet()); ok {
		if d := r.FamilyDescriptions[base]; d != "" {
			return d
		}
	}
	return source
}

// BuildIndex produces the table_index and table_details records for every
// input table. Ungrouped tables resolve to the Miscellaneous group and groups
// outside the domain mapping resolve to the Miscellaneous domain.
func BuildIndex(
	tables []core.TableMetadata,
	tableGroups map[string][]string,
	families []core.Family,
	r *rules.Rules,
) (map[string]core.IndexEntry, map[string]core.TableDetails) {
	domainOf := r.DomainOf()
	miscDomain := r.MiscellaneousDomain()
	family := familyOf(families)

	index := make(map[string]core.IndexEntry, len(tables))
	details := make(map[string]core.TableDetails, len(tables))
	for _, t := range tables {
		groups := append([]string{}, tableGroups[t.Name]...)
		if len(groups) == 0 {
			groups = []string{r.MiscellaneousGroup}
		}

		domains := make([]string, 0, len(groups))
		for _, g := range groups {
			d, ok := domainOf[g]
			if !ok {
				d = miscDomain
			}
			domains = append(domains, d)
		}

		desc := Describe(t.Name, t.Description, r)
		index[t.Name] = core.IndexEntry{
			Label:       Titleize(t.Name),
			Description: desc,
			Groups:      groups,
			Domains:     sortedUnique(domains),
			Family:      family[t.Name],
		}
		details[t.Name] = core.TableDetails{
			Description: desc,
			Columns:     core.ParseColumns(t.Columns),
		}
	}
	return index, details
}
