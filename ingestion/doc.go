// Package ingestion loads curated table metadata snapshots.
//
// A snapshot is a single JSON document holding the curated group
// definitions and the exported tables with their encoded columns and
// sample rows. Loading decodes the document and validates it, so callers
// either get a usable snapshot or an error wrapping one of the package
// sentinels.
package ingestion
