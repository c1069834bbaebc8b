// Package logging wires slog handlers for vodsync commands.
//
// Console output renders one compact line per event for interactive runs;
// JSON output targets machine consumers. Every component logger carries a
// "component" attribute via NewComponentLogger so interleaved command output
// stays attributable.
package logging
