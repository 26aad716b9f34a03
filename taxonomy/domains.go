package taxonomy

import (
	"sort"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
)

// AssembleDomains renders the fixed domain to group mapping. Each group
// lists its families and standalone tables; the Miscellaneous group is only
// browsable through its subgroups, so its own lists stay empty.
func AssembleDomains(hierarchy map[string]core.Group, subgroups map[string][]string, r *rules.Rules) []core.Domain {
	suffixes := r.SuffixSet()

	domains := make([]core.Domain, 0, len(r.Domains))
	for _, d := range r.Domains {
		domain := core.Domain{
			Name:        d.Name,
			Description: d.Description,
			Groups:      make([]core.DomainGroup, 0, len(d.Groups)),
		}
		for _, name := range d.Groups {
			g := hierarchy[name]
			view := core.DomainGroup{
				Name:        name,
				Description: g.Description,
				Subgroups:   []core.Subgroup{},
			}
			if name == r.MiscellaneousGroup {
				view.TableFamilies = []core.FamilyView{}
				view.Tables = []core.TableView{}
				view.Subgroups = assembleSubgroups(subgroups, suffixes, r)
			} else {
				view.TableFamilies, view.Tables = partition(g.Tables, suffixes, r)
			}
			domain.Groups = append(domain.Groups, view)
		}
		domains = append(domains, domain)
	}
	return domains
}

func assembleSubgroups(subgroups map[string][]string, suffixes map[string]struct{}, r *rules.Rules) []core.Subgroup {
	names := make([]string, 0, len(subgroups))
	for name := range subgroups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]core.Subgroup, 0, len(names))
	for _, name := range names {
		families, tables := partition(subgroups[name], suffixes, r)
		out = append(out, core.Subgroup{
			Name:          name,
			Description:   r.SubgroupDescription(name),
			TableFamilies: families,
			Tables:        tables,
		})
	}
	return out
}

// partition splits a sorted table set into family views and standalone
// table views.
func partition(tables []string, suffixes map[string]struct{}, r *rules.Rules) ([]core.FamilyView, []core.TableView) {
	families := ResolveFamilies(tables, suffixes)
	inFamily := familyOf(families)

	views := make([]core.FamilyView, 0, len(families))
	for _, f := range families {
		views = append(views, core.FamilyView{
			Family:   f.BaseName,
			Label:    Titleize(f.BaseName),
			Variants: f.Tables,
		})
	}

	standalone := make([]core.TableView, 0, len(tables)-len(inFamily))
	for _, t := range tables {
		if _, ok := inFamily[t]; ok {
			continue
		}
		standalone = append(standalone, core.TableView{
			Table: t,
			Label: Titleize(t),
			Note:  r.TableNotes[t],
		})
	}
	return views, standalone
}
