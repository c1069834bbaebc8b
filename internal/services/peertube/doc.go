// Package peertube talks to the configured PeerTube instance: OAuth
// password-grant auth, paginated video and import listings, source-filename
// lookup, and publish-date write-back.
package peertube
