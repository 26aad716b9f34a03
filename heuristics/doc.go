// Package heuristics suggests starter descriptions for undocumented columns.
//
// Suggestions come from an ordered list of name patterns. The first pattern
// that matches a column name supplies the description, optionally enriched
// with a few distinct sample values. Names that match no pattern fall back to
// a readable rendering of the name itself.
package heuristics
