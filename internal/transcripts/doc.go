// Package transcripts parses diarized SRT transcript files and imports them
// into the database, one transcript per VOD.
package transcripts
