package core

// RelationshipType classifies an inter-table relationship.
type RelationshipType string

const (
	// RelationshipForeignKey is a join through a foreign key column.
	RelationshipForeignKey RelationshipType = "foreign_key"
	// RelationshipReference is a looser reference without a declared key.
	RelationshipReference RelationshipType = "reference"
)

// Taxonomy is the full output of a build.
type Taxonomy struct {
	Version        string                  `json:"taxonomy_version"`
	Source         string                  `json:"source"`
	Goals          []string                `json:"goals"`
	Domains        []Domain                `json:"domains"`
	GroupHierarchy map[string]Group        `json:"group_hierarchy"`
	TableIndex     map[string]IndexEntry   `json:"table_index"`
	TableDetails   map[string]TableDetails `json:"table_details"`
	Relationships  []Relationship          `json:"explicit_relationships"`
}

// Group is the flat, pre-domain view of a group. Its name is the map key
// in Taxonomy.GroupHierarchy.
type Group struct {
	Description  string   `json:"description"`
	ParentGroups []string `json:"parent_groups"`
	Tables       []string `json:"tables"`
}

// Family is a set of tables that are contextual variants of one entity.
type Family struct {
	BaseName string
	Tables   []string
}

// Domain is a top-level partition holding an ordered list of groups.
type Domain struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Groups      []DomainGroup `json:"groups"`
}

// Collapsible reports whether the domain only wraps a single group of the
// same name, in which case the group level can be skipped when displayed.
func (d *Domain) Collapsible() bool {
	return len(d.Groups) == 1 && d.Groups[0].Name == d.Name
}

// TableCount returns the number of tables reachable under the domain.
func (d *Domain) TableCount() int {
	n := 0
	for i := range d.Groups {
		n += d.Groups[i].TableCount()
	}
	return n
}

// DomainGroup is the rendered view of a group within a domain.
type DomainGroup struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	TableFamilies []FamilyView `json:"table_families"`
	Tables        []TableView  `json:"tables"`
	Subgroups     []Subgroup   `json:"subgroups"`
}

// TableCount returns the number of tables in the group, including those only
// reachable through subgroups.
func (g *DomainGroup) TableCount() int {
	n := countTables(g.TableFamilies, g.Tables)
	for i := range g.Subgroups {
		n += g.Subgroups[i].TableCount()
	}
	return n
}

// Subgroup is a second-level bucket under the Miscellaneous group.
type Subgroup struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	TableFamilies []FamilyView `json:"table_families"`
	Tables        []TableView  `json:"tables"`
}

// TableCount returns the number of tables in the subgroup.
func (s *Subgroup) TableCount() int {
	return countTables(s.TableFamilies, s.Tables)
}

// FamilyView is a family as displayed inside a group or subgroup.
type FamilyView struct {
	Family   string   `json:"family"`
	Label    string   `json:"label"`
	Variants []string `json:"variants"`
}

// TableView is a standalone table as displayed inside a group or subgroup.
type TableView struct {
	Table string `json:"table"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

// IndexEntry is the canonical per-table lookup record.
type IndexEntry struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Groups      []string `json:"groups"`
	Domains     []string `json:"domains"`
	Family      string   `json:"family"`
}

// TableDetails holds the resolved description and parsed columns of a table.
type TableDetails struct {
	Description string   `json:"description"`
	Columns     []Column `json:"columns"`
}

// Relationship links two tables.
type Relationship struct {
	Source  string           `json:"source"`
	Target  string           `json:"target"`
	Columns []string         `json:"columns"`
	Type    RelationshipType `json:"type"`
	Note    string           `json:"note"`
}

func countTables(families []FamilyView, tables []TableView) int {
	n := len(tables)
	for _, f := range families {
		n += len(f.Variants)
	}
	return n
}
