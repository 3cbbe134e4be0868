// Package sqlite provides SQLite-backed session persistence.
//
// The store is the terminal equivalent of the web client's
// local-storage entry: the full session snapshot is written on every
// mutation, last writer wins, and nothing is coordinated across
// processes.
package sqlite
