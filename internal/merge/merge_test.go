package merge_test

import (
	"testing"

	"vodsync/internal/merge"
)

func strPtr(v string) *string { return &v }
func intPtr(v int64) *int64   { return &v }

func TestStringReplaceAlwaysAcceptsCandidate(t *testing.T) {
	got, resolution := merge.String(strPtr("old"), strPtr("new"), merge.Replace)
	if got == nil || *got != "new" || resolution != merge.AcceptCandidate {
		t.Fatalf("unexpected merge result: %v %v", got, resolution)
	}

	// Replace passes a nil candidate through as well: the owning source is
	// authoritative even for value removal.
	got, _ = merge.String(strPtr("old"), nil, merge.Replace)
	if got != nil {
		t.Fatalf("expected nil result, got %q", *got)
	}
}

func TestStringFillOnlyProtectsExisting(t *testing.T) {
	got, resolution := merge.String(strPtr("stored"), strPtr("candidate"), merge.FillOnly)
	if *got != "stored" || resolution != merge.KeepExisting {
		t.Fatalf("fill-only must keep stored value, got %q (%v)", *got, resolution)
	}

	got, resolution = merge.String(nil, strPtr("candidate"), merge.FillOnly)
	if got == nil || *got != "candidate" || resolution != merge.AcceptCandidate {
		t.Fatalf("fill-only must accept into empty field, got %v (%v)", got, resolution)
	}

	// Empty string counts as absent.
	got, _ = merge.String(strPtr("  "), strPtr("candidate"), merge.FillOnly)
	if got == nil || *got != "candidate" {
		t.Fatalf("whitespace-only stored value must be fillable, got %v", got)
	}
}

func TestInt64ReplaceNonNil(t *testing.T) {
	got, resolution := merge.Int64(intPtr(3600), nil, merge.ReplaceNonNil)
	if got == nil || *got != 3600 || resolution != merge.KeepExisting {
		t.Fatalf("nil candidate must not clobber stored value, got %v (%v)", got, resolution)
	}

	got, _ = merge.Int64(intPtr(3600), intPtr(3700), merge.ReplaceNonNil)
	if *got != 3700 {
		t.Fatalf("present candidate must win, got %d", *got)
	}
}

func TestDateToken(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"20230615", "2023-06-15", true},
		{"2023-06-15", "2023-06-15", false}, // already formatted; not an 8-digit token
		{"2023061", "2023061", false},
		{"202306150", "202306150", false},
		{"2023o615", "2023o615", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := merge.DateToken(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("DateToken(%q) = %q (%v), want %q (%v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDateMergeTransforms(t *testing.T) {
	got, resolution := merge.Date(nil, strPtr("20230615"), merge.FillOnly)
	if got == nil || *got != "2023-06-15" || resolution != merge.TransformAndAccept {
		t.Fatalf("expected transformed accept, got %v (%v)", got, resolution)
	}

	// Fill-only still wins over the transform: a stored date is never retouched.
	got, resolution = merge.Date(strPtr("2022-01-01"), strPtr("20230615"), merge.FillOnly)
	if *got != "2022-01-01" || resolution != merge.KeepExisting {
		t.Fatalf("stored date must survive, got %q (%v)", *got, resolution)
	}
}

func TestLeadingDateToken(t *testing.T) {
	if token, ok := merge.LeadingDateToken("20230615 - Stream Title v123456.mp4"); !ok || token != "20230615" {
		t.Fatalf("expected 20230615, got %q (%v)", token, ok)
	}
	for _, name := range []string{"Stream Title.mp4", "2023 - Stream.mp4", "20230615- Stream.mp4"} {
		if _, ok := merge.LeadingDateToken(name); ok {
			t.Fatalf("did not expect a date token in %q", name)
		}
	}
}
