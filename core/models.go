package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored snapshots.
// It is derived from the content of the built taxonomy.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata is the input snapshot exported by the curation tooling.
// It is treated as immutable once loaded.
type Metadata struct {
	Info   MetadataInfo    `json:"metadata"`
	Tables []TableMetadata `json:"tables"`
}

// MetadataInfo holds the curated group definitions.
type MetadataInfo struct {
	Groups          map[string]GroupMetadata `json:"groups"`
	ExportTimestamp string                   `json:"export_timestamp,omitempty"`
}

// GroupMetadata is a group as declared by curators.
// Tables is informational only; membership is taken from each table's Groups.
type GroupMetadata struct {
	Description  string   `json:"description"`
	ParentGroups []string `json:"parent_groups"`
	Tables       []string `json:"tables"`
}

// TableMetadata describes one table in the input snapshot.
type TableMetadata struct {
	Name        string   `json:"table"`
	Description string   `json:"description"`
	Groups      []string `json:"groups"`
	Columns     []string `json:"columns"` // encoded as "name (TYPE): description"
	SampleRows  []Node   `json:"sample_rows,omitempty"`
}

// TableNames returns the table names in input order.
func (m *Metadata) TableNames() []string {
	names := make([]string, 0, len(m.Tables))
	for _, t := range m.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Snapshot is a built taxonomy as persisted by the catalog.
type Snapshot struct {
	Id           ID
	Source       string
	RulesVersion string
	CreatedAt    time.Time
	Taxonomy     *Taxonomy
}

// SnapshotHeader is the lightweight listing form of a Snapshot.
type SnapshotHeader struct {
	Id           ID
	Source       string
	RulesVersion string
	CreatedAt    time.Time
	Tables       int
}

// Header returns the listing form of the snapshot.
func (s *Snapshot) Header() *SnapshotHeader {
	h := &SnapshotHeader{
		Id:           s.Id,
		Source:       s.Source,
		RulesVersion: s.RulesVersion,
		CreatedAt:    s.CreatedAt,
	}
	if s.Taxonomy != nil {
		h.Tables = len(s.Taxonomy.TableIndex)
	}
	return h
}

// ColumnHit is a column that matched a search query.
type ColumnHit struct {
	Score       float64 `json:"score"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// SearchResult is one ranked table returned by a search.
type SearchResult struct {
	Score   float64     `json:"score"`
	Table   string      `json:"table"`
	Entry   IndexEntry  `json:"entry"`
	Columns []ColumnHit `json:"columns"`
}
