// Package store persists pendency records as individual JSON files
// partitioned into status folders on a shared directory tree.
//
// The store is the sole owner of the on-disk representation: every mutating
// operation appends at least one audit history entry, bumps the record
// metadata, and commits through an atomic temp-file rename. Concurrent
// writers on other workstations are detected (not prevented) by the
// optimistic last-modified check on Update; transitions and deletes are
// last-writer-wins, which the deployment model of a handful of LAN users
// accepts.
//
// Folder moves write the destination file before unlinking the source. A
// crash between the two steps leaves a duplicate numero; Get resolves
// duplicates by fixed folder precedence and NormalizeAll removes the stale
// copy.
package store
