package transcripts_test

import (
	"testing"

	"vodsync/internal/transcripts"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:04,500
[SPEAKER_00]: Welcome back everyone.

2
00:00:05,000 --> 00:00:08,250
chat is going wild

3
00:00:09,000 --> 00:00:12,000
[SPEAKER_01]: Let's get started.
`

func TestParseSRT(t *testing.T) {
	cues, err := transcripts.ParseSRT([]byte(sampleSRT))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("got %d cues, want 3", len(cues))
	}

	if cues[0].Index != 1 || cues[0].Start != "00:00:01,000" || cues[0].End != "00:00:04,500" {
		t.Fatalf("unexpected first cue: %+v", cues[0])
	}

	speaker, text := cues[0].Speaker()
	if speaker != 0 || text != "Welcome back everyone." {
		t.Fatalf("cue 1 speaker = %d %q", speaker, text)
	}

	speaker, text = cues[1].Speaker()
	if speaker != 99 || text != "chat is going wild" {
		t.Fatalf("cue 2 speaker = %d %q, want unknown speaker with raw text", speaker, text)
	}

	speaker, _ = cues[2].Speaker()
	if speaker != 1 {
		t.Fatalf("cue 3 speaker = %d, want 1", speaker)
	}
}

func TestParseSRTWindowsLineEndings(t *testing.T) {
	cues, err := transcripts.ParseSRT([]byte("1\r\n00:00:01,000 --> 00:00:02,000\r\nhello\r\n"))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "hello" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}

func TestParseSRTRejectsMissingTiming(t *testing.T) {
	if _, err := transcripts.ParseSRT([]byte("1\nno timing here\n")); err == nil {
		t.Fatal("expected error for missing timing line")
	}
}

func TestParseFilename(t *testing.T) {
	info, err := transcripts.ParseFilename("20230501 - Dark Souls - Part 3 - v123456789")
	if err != nil {
		t.Fatalf("ParseFilename: %v", err)
	}
	if info.VodID != "v123456789" {
		t.Fatalf("vod id = %q", info.VodID)
	}
	if info.Title != "Dark Souls - Part 3" {
		t.Fatalf("title = %q, want the inner segments rejoined", info.Title)
	}
	if info.Date != "2023-05-01" {
		t.Fatalf("date = %q", info.Date)
	}
}

func TestParseFilenameWithoutTitle(t *testing.T) {
	info, err := transcripts.ParseFilename("20230501 - v123456789")
	if err != nil {
		t.Fatalf("ParseFilename: %v", err)
	}
	if info.Title == "" {
		t.Fatal("expected a derived fallback title")
	}
}

func TestParseFilenameRejectsMalformedStem(t *testing.T) {
	if _, err := transcripts.ParseFilename("notes"); err == nil {
		t.Fatal("expected error for stem without separators")
	}
}
