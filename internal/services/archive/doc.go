// Package archive reads video file listings from monthly archive.org items
// and resolves the smallest mirror copy of each VOD.
package archive
