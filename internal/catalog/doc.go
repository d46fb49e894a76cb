// Package catalog turns the raw upstream pricing document into a queryable
// catalog of token-priced models. It is structured into small files by concern:
//
//   - document.go: ordered decoding of the raw JSON document.
//   - pipeline.go: per-entry validation and cost normalization rules.
//   - catalog.go: the Catalog aggregate and its derived indexes.
//   - query.go: read-only filters, search, pagination, and statistics.
//   - providers.go: provider display-name table and fallback formatting.
//
// The pipeline is pure: no I/O, no retained state, single pass over the
// input. Callers own fetching (internal/source) and snapshot lifecycle
// (internal/service).
package catalog
