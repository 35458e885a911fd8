// Package catalog owns the in-memory collections of artists, songs, playlists
// and customers and applies every mutation to them.
//
// Mutations keep the graph consistent: deleting a song removes it from every
// playlist, deleting an artist deletes its songs and drops it from every
// follow list, and deleting a customer deletes the playlists it owns.
//
// Customer actions run through a Session returned by Login instead of a
// process-wide "current customer".
//
// A Catalog is not safe for concurrent use.
package catalog
