package taxonomy

import (
	"sort"
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// BaseName splits a table name on its last underscore. When the final
// segment is a known suffix and something precedes it, the remainder is the
// family base name.
func BaseName(table string, suffixes map[string]struct{}) (string, bool) {
	i := strings.LastIndexByte(table, '_')
	if i <= 0 {
		return "", false
	}
	if _, ok := suffixes[table[i+1:]]; !ok {
		return "", false
	}
	return table[:i], true
}

// ResolveFamilies groups tables by base name. Only base names shared by at
// least two tables form a family. Families are sorted by base name and their
// variants lexicographically.
func ResolveFamilies(tables []string, suffixes map[string]struct{}) []core.Family {
	members := make(map[string][]string)
	seen := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if base, ok := BaseName(t, suffixes); ok {
			members[base] = append(members[base], t)
		}
	}

	families := make([]core.Family, 0, len(members))
	for base, variants := range members {
		if len(variants) < 2 {
			continue
		}
		sort.Strings(variants)
		families = append(families, core.Family{BaseName: base, Tables: variants})
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].BaseName < families[j].BaseName
	})
	return families
}

// familyOf maps each family variant to its base name.
func familyOf(families []core.Family) map[string]string {
	out := make(map[string]string)
	for _, f := range families {
		for _, t := range f.Tables {
			out[t] = f.BaseName
		}
	}
	return out
}
