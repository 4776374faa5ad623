// Package history persists a record of analyzed subtitle files in SQLite.
//
// Each `subgauge analyze --record` invocation stores one Run summarizing the
// file: cue count, mean and max reading speed, and how many cues were rated
// too fast or too slow. The store uses WAL mode with a busy timeout, retries
// SQLITE_BUSY errors with backoff, and serializes first-time schema creation
// across processes with a lock file next to the database.
package history
