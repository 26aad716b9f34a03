package taxonomy

import (
	"log/slog"
	"sort"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
)

// ResolveTableGroups computes the final group membership of every table.
//
// A full-replacement override discards the declared groups. Otherwise the
// declared groups are extended by the additive override. The result is
// deduplicated and sorted; an empty result marks the table as ungrouped.
func ResolveTableGroups(tables []core.TableMetadata, r *rules.Rules) map[string][]string {
	out := make(map[string][]string, len(tables))
	for _, t := range tables {
		var groups []string
		if set, ok := r.TableGroupSet[t.Name]; ok {
			groups = set
		} else {
			groups = append(append([]string{}, t.Groups...), r.TableGroupAdd[t.Name]...)
		}
		out[t.Name] = sortedUnique(groups)
	}
	return out
}

// Ungrouped returns the sorted names of tables without any group.
func Ungrouped(tableGroups map[string][]string) []string {
	out := make([]string, 0)
	for name, groups := range tableGroups {
		if len(groups) == 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// NormalizeGroups merges declared group metadata with the canonical group
// descriptions and the resolved table membership into the flat group
// hierarchy.
//
// Canonical descriptions win over declared ones. Groups named only through
// table membership are synthesized. The Miscellaneous group holds the
// ungrouped tables plus any table explicitly placed there. The clinical-trial
// group is removed from every other group's parents, and parent edges that
// would make a group its own ancestor are dropped.
func NormalizeGroups(
	declared map[string]core.GroupMetadata,
	tableGroups map[string][]string,
	r *rules.Rules,
	logger *slog.Logger,
) map[string]core.Group {
	if logger == nil {
		logger = slog.Default()
	}

	groups := make(map[string]core.Group, len(declared)+len(r.GroupDescriptions)+1)
	ensure := func(name string) {
		if _, ok := groups[name]; !ok {
			groups[name] = core.Group{Description: r.GroupDescriptions[name]}
		}
	}

	for name, g := range declared {
		desc := g.Description
		if canonical, ok := r.GroupDescriptions[name]; ok && canonical != "" {
			desc = canonical
		}
		groups[name] = core.Group{
			Description:  desc,
			ParentGroups: append([]string{}, g.ParentGroups...),
		}
	}
	for name := range r.GroupDescriptions {
		ensure(name)
	}
	ensure(r.MiscellaneousGroup)

	members := make(map[string][]string)
	for table, tgs := range tableGroups {
		for _, g := range tgs {
			ensure(g)
			members[g] = append(members[g], table)
		}
	}
	members[r.MiscellaneousGroup] = append(members[r.MiscellaneousGroup], Ungrouped(tableGroups)...)

	for name, g := range groups {
		g.Tables = sortedUnique(members[name])
		if name != r.ClinicalTrialGroup {
			g.ParentGroups = without(g.ParentGroups, r.ClinicalTrialGroup)
		}
		g.ParentGroups = unique(g.ParentGroups)
		groups[name] = g
	}

	breakCycles(groups, logger)
	return groups
}

// breakCycles drops self-parents and parent edges that close a cycle.
// Groups are visited in name order so the surviving edges are deterministic.
func breakCycles(groups map[string]core.Group, logger *slog.Logger) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	kept := make(map[string][]string, len(groups))
	for _, name := range names {
		g := groups[name]
		parents := make([]string, 0, len(g.ParentGroups))
		for _, p := range g.ParentGroups {
			if p == name || isAncestor(name, p, kept) {
				logger.Warn("dropping cyclic parent group", "group", name, "parent", p)
				continue
			}
			parents = append(parents, p)
		}
		kept[name] = parents
		g.ParentGroups = parents
		groups[name] = g
	}
}

// isAncestor reports whether candidate is reachable from start by following
// parent edges.
func isAncestor(candidate, start string, parents map[string][]string) bool {
	visited := make(map[string]struct{})
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == candidate {
			return true
		}
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		stack = append(stack, parents[cur]...)
	}
	return false
}

// RouteMiscellaneous assigns each Miscellaneous table to exactly one
// subgroup. Subgroup member lists are sorted.
func RouteMiscellaneous(tables []string, r *rules.Rules) map[string][]string {
	out := make(map[string][]string)
	for _, t := range tables {
		sg := r.SubgroupFor(t)
		out[sg] = append(out[sg], t)
	}
	for sg := range out {
		out[sg] = sortedUnique(out[sg])
	}
	return out
}

func sortedUnique(items []string) []string {
	out := unique(items)
	sort.Strings(out)
	return out
}

func unique(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func without(items []string, drop string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
