// Package pendency defines the pendency record model, its on-disk JSON
// representation, the date-encoded sequential numbering scheme, and the
// normalization rules for legacy history shapes.
//
// A record is one pretty-printed JSON file named <numero>.json living in
// exactly one of the five status folders under the storage root. Field names
// follow the historical wire format and must not change; Go identifiers are
// the English equivalents.
//
// Treat this package as the single source of truth for record semantics; the
// stores in internal/store and internal/sqlstore only orchestrate
// persistence around it.
package pendency
