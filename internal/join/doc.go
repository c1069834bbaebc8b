// Package join builds per-source lookup tables and resolves best-effort
// matches between primary VOD records and auxiliary metadata.
//
// Every lookup is a left join with tolerant fallback: a primary record that
// matches nothing proceeds with the fields it already has, and callers count
// misses for reporting instead of treating them as failures. Probing runs
// from the most specific key to the loosest one: exact canonical identifier,
// then native identifier, then stream date with a duration tolerance.
//
// One source variant compared durations with an inverted >= check; the
// intended "close enough" semantics (difference within tolerance) are
// implemented here.
package join
