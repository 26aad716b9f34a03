package search

import (
	"github.com/poiesic/taxonomist/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	TableScored(table string, base float64, columns []core.ColumnHit)
	AfterFiltering(retained int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                      {}
func (n *noopMonitor) TableScored(_ string, _ float64, _ []core.ColumnHit) {}
func (n *noopMonitor) AfterFiltering(_ int)                                {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                       {}
