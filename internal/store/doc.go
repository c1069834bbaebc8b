// Package store persists reconciled VOD metadata in a single SQLite file.
//
// Four tables share the database: videos (PeerTube-primary records), vods
// (transcript-primary records), transcripts (subtitle segments), and
// yt_videos (spreadsheet-derived YouTube metadata). Schema creation is
// idempotent and guarded by a version row; there are no in-place migrations,
// the database is rebuilt from upstream sources when the schema changes.
//
// A flock-based lock file next to the database serializes writers across
// concurrently invoked commands. The same file the store writes is later
// split verbatim by the snapshot exporter, so writes commit record-by-record
// and the WAL is checkpointed before export.
package store
