// Package storage loads and saves whole catalog snapshots.
//
// Three kinds are supported: delimited text files (one record per line, one
// file per entity type), binary graph files produced by package snapshot, and
// a single SQLite database. Every kind loads in dependency order (artists,
// songs, playlists, customers) so later records resolve their references
// against collections that are already built. References that cannot be
// resolved become unknown placeholders and are logged; malformed records
// abort the load.
//
// Load and Save hold an exclusive lock file in the data directory, so two
// tunevault processes never interleave a snapshot.
package storage
