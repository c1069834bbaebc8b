package merge

import (
	"regexp"
	"strings"
)

// Rule selects how a candidate value is folded into a stored field.
type Rule int

const (
	// Replace accepts the candidate unconditionally. Used when the record is
	// refreshed from the source that owns the field.
	Replace Rule = iota
	// FillOnly accepts the candidate only while the stored value is absent.
	// Once set, the field is immune to automated overwrites.
	FillOnly
	// ReplaceNonNil accepts the candidate only when it carries a value; a
	// missing candidate never clobbers stored data.
	ReplaceNonNil
)

// Resolution records the outcome of merging one field.
type Resolution string

const (
	KeepExisting       Resolution = "keep_existing"
	AcceptCandidate    Resolution = "accept_candidate"
	TransformAndAccept Resolution = "transform_and_accept"
)

// Decision is the audit record for a single field merge.
type Decision struct {
	Field      string
	Existing   any
	Candidate  any
	Resolution Resolution
}

// String merges an optional string field under the given rule.
func String(existing, candidate *string, rule Rule) (*string, Resolution) {
	switch rule {
	case FillOnly:
		if existing != nil && strings.TrimSpace(*existing) != "" {
			return existing, KeepExisting
		}
		if candidate == nil {
			return existing, KeepExisting
		}
		return candidate, AcceptCandidate
	case ReplaceNonNil:
		if candidate == nil {
			return existing, KeepExisting
		}
		return candidate, AcceptCandidate
	default:
		return candidate, AcceptCandidate
	}
}

// Int64 merges an optional integer field under the given rule.
func Int64(existing, candidate *int64, rule Rule) (*int64, Resolution) {
	switch rule {
	case FillOnly:
		if existing != nil {
			return existing, KeepExisting
		}
		if candidate == nil {
			return existing, KeepExisting
		}
		return candidate, AcceptCandidate
	case ReplaceNonNil:
		if candidate == nil {
			return existing, KeepExisting
		}
		return candidate, AcceptCandidate
	default:
		return candidate, AcceptCandidate
	}
}

var dateTokenPattern = regexp.MustCompile(`^\d{8}$`)

// DateToken reformats an exactly-8-digit YYYYMMDD token to YYYY-MM-DD. Any
// other shape, including already-formatted 10-character dates, is returned
// untouched with ok=false; malformed input never fails, callers just log it.
func DateToken(token string) (string, bool) {
	if !dateTokenPattern.MatchString(token) {
		return token, false
	}
	return token[:4] + "-" + token[4:6] + "-" + token[6:8], true
}

// Date merges an optional date field, reformatting 8-digit candidate tokens
// before applying the rule.
func Date(existing, candidate *string, rule Rule) (*string, Resolution) {
	transformed := false
	if candidate != nil {
		if formatted, ok := DateToken(*candidate); ok {
			candidate = &formatted
			transformed = true
		}
	}
	merged, resolution := String(existing, candidate, rule)
	if transformed && resolution == AcceptCandidate {
		resolution = TransformAndAccept
	}
	return merged, resolution
}

var leadingDatePattern = regexp.MustCompile(`^(\d{8}) - `)

// LeadingDateToken extracts the 8-digit date prefix from upload filenames of
// the form "YYYYMMDD - Title ...". Absence is normal for manual uploads.
func LeadingDateToken(filename string) (string, bool) {
	match := leadingDatePattern.FindStringSubmatch(filename)
	if match == nil {
		return "", false
	}
	return match[1], true
}
