package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/search"
	"github.com/poiesic/taxonomist/taxonomy"
)

type healthResponse struct {
	Status   string     `json:"status"`
	Snapshot core.ID    `json:"snapshot"`
	Source   string     `json:"source"`
	Tables   int        `json:"tables"`
	Cache    CacheStats `json:"cache"`
}

type domainsResponse struct {
	Snapshot core.ID       `json:"snapshot"`
	Domains  []core.Domain `json:"domains"`
}

type tableSummary struct {
	Table       string `json:"table"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type tablesResponse struct {
	Snapshot core.ID        `json:"snapshot"`
	Tables   []tableSummary `json:"tables"`
}

type tableResponse struct {
	Table         string                  `json:"table"`
	Entry         core.IndexEntry         `json:"entry"`
	Details       core.TableDetails       `json:"details"`
	SharedColumns []taxonomy.SharedColumn `json:"shared_columns"`
	Relationships []core.Relationship     `json:"relationships"`
}

type searchResponse struct {
	Snapshot core.ID              `json:"snapshot"`
	Query    string               `json:"query"`
	Results  []*core.SearchResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Snapshot: snap.Id,
		Source:   snap.Source,
		Tables:   len(snap.Taxonomy.TableIndex),
		Cache:    s.cache.stats(),
	})
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	writeJSON(w, http.StatusOK, domainsResponse{Snapshot: snap.Id, Domains: snap.Taxonomy.Domains})
}

// handleTables lists tables whose name or description contains ?filter.
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	filter := r.URL.Query().Get("filter")

	tables := make([]tableSummary, 0, len(snap.Taxonomy.TableIndex))
	for name, entry := range snap.Taxonomy.TableIndex {
		if !search.MatchesSubstring(name, entry.Description, filter) {
			continue
		}
		tables = append(tables, tableSummary{Table: name, Label: entry.Label, Description: entry.Description})
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Table < tables[j].Table })

	writeJSON(w, http.StatusOK, tablesResponse{Snapshot: snap.Id, Tables: tables})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	tax := s.Snapshot().Taxonomy
	name := chi.URLParam(r, "name")

	entry, ok := tax.TableIndex[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown table %q", name))
		return
	}
	shared, err := taxonomy.SharedColumns(tax, name, s.ignored)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, tableResponse{
		Table:         name,
		Entry:         entry,
		Details:       tax.TableDetails[name],
		SharedColumns: shared,
		Relationships: taxonomy.RelatedRelationships(tax, name),
	})
}

// handleSearch ranks tables against ?q, optionally capped by ?limit.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer, got %q", raw))
			return
		}
		limit = n
	}

	snap := s.Snapshot()
	results, ok := s.cache.get(snap.Id, query)
	if !ok {
		var err error
		results, err = s.searcher.Search(snap.Taxonomy, query)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.cache.add(snap.Id, query, results)
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	writeJSON(w, http.StatusOK, searchResponse{Snapshot: snap.Id, Query: query, Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
