// Package repositories implements SQLite persistence for hrvxo-music records.
//
// [PlaylistHistoryRepository] stores every playlist created through the service together with
// its ordered video IDs, and satisfies the services package's PlaylistRecorder.
//
// Sequence numbers give records a stable, human-readable order (playlist #1, #2, ...) independent
// of UUIDs and timestamps. [NextSequence] increments the per-table counter.
package repositories
