// Package main hosts the tunevault CLI entrypoint and command graph.
//
// Every mutating command loads the configured snapshot, applies one catalog
// operation and saves the result back. Nothing is written when the operation
// fails, so a rejected command leaves the stored catalog untouched.
package main
