package join

import "sort"

// Candidate is one auxiliary record eligible for date-window matching.
type Candidate struct {
	ID       string
	Duration int64
	// Priority ranks the originating channel; lower wins when several
	// candidates share a stream date.
	Priority int
}

// DateIndex groups candidates by stream date.
type DateIndex map[string][]Candidate

// Add registers a candidate under its date.
func (idx DateIndex) Add(date string, candidate Candidate) {
	idx[date] = append(idx[date], candidate)
}

// Match returns the best candidate for a date whose duration lies within
// tolerance seconds of the primary record's duration. Candidates are probed
// in priority order. A nil duration cannot be matched: the date alone is too
// coarse when one date carries several uploads.
func (idx DateIndex) Match(date string, duration *int64, tolerance int64) (Candidate, bool) {
	if duration == nil {
		return Candidate{}, false
	}
	candidates := append([]Candidate(nil), idx[date]...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	for _, candidate := range candidates {
		diff := candidate.Duration - *duration
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			return candidate, true
		}
	}
	return Candidate{}, false
}

// FileEntry is one archive-host file descriptor belonging to a VOD.
type FileEntry struct {
	Container string
	Name      string
	Size      int64
	// Length is the parsed whole-second duration when the host reported one.
	Length *int64
}

// FileIndex groups archive files by the native VOD identifier parsed from
// their filename stems.
type FileIndex map[string][]FileEntry

// Add registers a file under its VOD identifier.
func (idx FileIndex) Add(vodID string, entry FileEntry) {
	idx[vodID] = append(idx[vodID], entry)
}

// Smallest returns the smallest file for a VOD, the most likely direct
// capture when an item holds several encodes of the same stream.
func (idx FileIndex) Smallest(vodID string) (FileEntry, bool) {
	files := idx[vodID]
	if len(files) == 0 {
		return FileEntry{}, false
	}
	smallest := files[0]
	for _, file := range files[1:] {
		if file.Size < smallest.Size {
			smallest = file
		}
	}
	return smallest, true
}

// Ref points at a primary-source record found via canonical identifier.
type Ref struct {
	NativeID string
	URL      string
}

// CanonicalIndex maps canonical cross-source identifiers to primary records.
type CanonicalIndex map[string]Ref

// Add registers a record under its canonical identifier. The first record
// wins; canonical identifiers are expected to be unique and a duplicate
// indicates upstream drift rather than a better match.
func (idx CanonicalIndex) Add(canonicalID string, ref Ref) {
	if canonicalID == "" {
		return
	}
	if _, exists := idx[canonicalID]; exists {
		return
	}
	idx[canonicalID] = ref
}

// Lookup resolves a canonical identifier to a primary record.
func (idx CanonicalIndex) Lookup(canonicalID string) (Ref, bool) {
	ref, ok := idx[canonicalID]
	return ref, ok
}
