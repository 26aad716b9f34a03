package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/heuristics"
	"github.com/poiesic/taxonomist/search"
	"github.com/poiesic/taxonomist/taxonomy"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderResults(w io.Writer, results []*core.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "(no matches)")
		return
	}

	t := newTable(w, table.Row{"Score", "Table", "Groups", "Description", "Matching columns"})
	for _, r := range results {
		cols := make([]string, 0, len(r.Columns))
		for _, c := range r.Columns {
			cols = append(cols, fmt.Sprintf("%s (%.2f)", c.Name, c.Score))
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3f", r.Score),
			r.Table,
			strings.Join(r.Entry.Groups, ", "),
			truncate(r.Entry.Description, 60),
			strings.Join(cols, ", "),
		})
	}
	t.Render()
	fmt.Fprintf(w, "(%d tables)\n", len(results))
}

func renderTableDetails(w io.Writer, name string, entry core.IndexEntry, details core.TableDetails, shared []taxonomy.SharedColumn, rels []core.Relationship) {
	fmt.Fprintf(w, "%s (%s)\n", entry.Label, name)
	if details.Description != "" {
		fmt.Fprintf(w, "%s\n", details.Description)
	}
	fmt.Fprintf(w, "Groups:  %s\n", strings.Join(entry.Groups, ", "))
	fmt.Fprintf(w, "Domains: %s\n", strings.Join(entry.Domains, ", "))
	if entry.Family != "" {
		fmt.Fprintf(w, "Family:  %s\n", entry.Family)
	}

	if len(details.Columns) > 0 {
		fmt.Fprintln(w)
		t := newTable(w, table.Row{"Column", "Type", "Description"})
		for _, c := range details.Columns {
			t.AppendRow(table.Row{c.Name, c.DataType, c.Description})
		}
		t.Render()
	}

	if len(shared) > 0 {
		fmt.Fprintln(w, "\nShared columns:")
		t := newTable(w, table.Row{"Column", "Also in"})
		for _, s := range shared {
			t.AppendRow(table.Row{s.Column, strings.Join(s.Tables, ", ")})
		}
		t.Render()
	}

	if len(rels) > 0 {
		fmt.Fprintln(w, "\nRelationships:")
		t := newTable(w, table.Row{"Source", "Target", "Columns", "Type", "Note"})
		for _, r := range rels {
			t.AppendRow(table.Row{r.Source, r.Target, strings.Join(r.Columns, ", "), string(r.Type), r.Note})
		}
		t.Render()
	}
}

func renderTableList(w io.Writer, tax *core.Taxonomy, filter string) {
	names := make([]string, 0, len(tax.TableIndex))
	for name, entry := range tax.TableIndex {
		if search.MatchesSubstring(name, entry.Description, filter) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	t := newTable(w, table.Row{"Table", "Groups", "Description"})
	for _, name := range names {
		entry := tax.TableIndex[name]
		t.AppendRow(table.Row{name, strings.Join(entry.Groups, ", "), truncate(entry.Description, 80)})
	}
	t.Render()
	fmt.Fprintf(w, "(%d of %d tables)\n", len(names), len(tax.TableIndex))
}

func renderSuggestions(w io.Writer, suggestions []heuristics.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "(every column is described)")
		return
	}
	t := newTable(w, table.Row{"Table", "Column", "Type", "Current", "Suggested"})
	for _, s := range suggestions {
		t.AppendRow(table.Row{s.Table, s.Column, s.DataType, s.Current, s.Suggested})
	}
	t.Render()
	fmt.Fprintf(w, "(%d suggestions)\n", len(suggestions))
}

func renderSnapshots(w io.Writer, headers []*core.SnapshotHeader) {
	if len(headers) == 0 {
		fmt.Fprintln(w, "(no snapshots)")
		return
	}
	t := newTable(w, table.Row{"ID", "Created", "Source", "Rules", "Tables"})
	for _, h := range headers {
		t.AppendRow(table.Row{
			fmt.Sprintf("%016x", uint64(h.Id)),
			h.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			h.Source,
			h.RulesVersion,
			h.Tables,
		})
	}
	t.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
