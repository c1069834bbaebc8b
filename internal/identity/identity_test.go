package identity_test

import (
	"testing"

	"vodsync/internal/identity"
)

func TestDeriveManualOverrideWinsVerbatim(t *testing.T) {
	got, ok := identity.Derive(
		"twitch:v999",
		"https://youtu.be/abc12345678",
		"20230615 - Stream v123456.mp4",
	)
	if !ok || got != "twitch:v999" {
		t.Fatalf("expected manual id verbatim, got %q (ok=%v)", got, ok)
	}
}

func TestDeriveFromSourceURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"twitch vod", "https://www.twitch.tv/videos/v123456", "twitch:v123456"},
		{"twitch vod with extension", "https://example.org/dump/v123456.mp4", "twitch:v123456"},
		{"youtube watch", "https://www.youtube.com/watch?v=abc12345678", "youtube:abc12345678"},
		{"youtube watch stops at ampersand", "https://www.youtube.com/watch?v=abc12345678&t=10", "youtube:abc12345678"},
		{"youtube short link", "https://youtu.be/abc12345678", "youtube:abc12345678"},
		{"youtube embed", "https://www.youtube.com/embed/abc12345678", "youtube:abc12345678"},
		{"youtube v path", "https://www.youtube.com/v/abc12345678?version=3", "youtube:abc12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := identity.Derive("", tc.url, "")
			if !ok || got != tc.want {
				t.Fatalf("Derive(%q) = %q (ok=%v), want %q", tc.url, got, ok, tc.want)
			}
		})
	}
}

func TestDeriveFromFilename(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     string
		wantOK   bool
	}{
		{"twitch tail", "20230615 - Stream v123456.mp4", "twitch:v123456", true},
		{"twitch tail uppercase", "20230615 - Stream V123456.MP4", "twitch:v123456", true},
		{"youtube eleven char suffix", "20230615 - Stream abc12345678.mkv", "youtube:abc12345678", true},
		{"no identifier", "20230615 - Stream.mkv", "", false},
		{"suffix too short", "20230615 - Stream abc123.mkv", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := identity.Derive("", "", tc.filename)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Derive(file=%q) = %q (ok=%v), want %q (ok=%v)", tc.filename, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestDeriveNothingAvailable(t *testing.T) {
	if got, ok := identity.Derive("", "", ""); ok {
		t.Fatalf("expected no identifier, got %q", got)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	first, _ := identity.Derive("", "https://youtu.be/abc12345678", "")
	second, _ := identity.Derive("", "https://youtu.be/abc12345678", "")
	if first != second {
		t.Fatalf("expected stable output, got %q then %q", first, second)
	}
}

func TestYouTubeIDFromURL(t *testing.T) {
	cases := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"http://youtu.be/SA2iWivDJiE", "SA2iWivDJiE", true},
		{"http://www.youtube.com/watch?v=_oPAwA_Udwc&feature=feedu", "_oPAwA_Udwc", true},
		{"http://www.youtube.com/embed/SA2iWivDJiE", "SA2iWivDJiE", true},
		{"http://www.youtube.com/v/SA2iWivDJiE?version=3", "SA2iWivDJiE", true},
		{"https://example.org/watch?v=zzz", "", false},
		{"not a url", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := identity.YouTubeIDFromURL(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("YouTubeIDFromURL(%q) = %q (ok=%v), want %q (ok=%v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestIsTwitchVodID(t *testing.T) {
	if !identity.IsTwitchVodID("v123456") {
		t.Fatal("expected v123456 to be a twitch vod id")
	}
	for _, id := range []string{"abc12345678", "v", "123", "v12x"} {
		if identity.IsTwitchVodID(id) {
			t.Fatalf("did not expect %q to be a twitch vod id", id)
		}
	}
}
