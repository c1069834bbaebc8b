// Command vodsync reconciles VOD metadata across a PeerTube instance,
// archive.org items, chat-log files, and the schedule spreadsheet, and
// exports the result as a chunked static snapshot.
package main
