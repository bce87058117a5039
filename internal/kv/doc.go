// Package kv implements the types.Storage port.
//
// Three backends are provided:
//
//   - Memory: map-backed, for tests and throwaway sessions.
//   - FileStore: one <key>.json file per key in a data directory. Writes use
//     the temp-file, fsync, rename pattern so a reader never observes a
//     partially written value.
//   - SQLiteStore: a single kv table in <data_dir>/scriptbox.db using
//     modernc.org/sqlite in WAL mode.
//
// Open selects a backend from a types.Config.
package kv
