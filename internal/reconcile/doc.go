// Package reconcile drives the identity-resolution and field-merge passes:
// mirroring the PeerTube catalog, enriching VOD records from auxiliary
// sources, fetching YouTube metadata, and writing publish dates back to the
// instance. Every pass is idempotent; re-running over unchanged inputs
// produces zero additional writes.
package reconcile
