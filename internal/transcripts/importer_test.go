package transcripts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vodsync/internal/testsupport"
	"vodsync/internal/transcripts"
)

func TestImporterRunIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if err := os.MkdirAll(cfg.Paths.TranscriptsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.Paths.TranscriptsDir, "20230501 - Dark Souls - v123456789.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	importer := transcripts.NewImporter(cfg, st, nil, false)
	report, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Imported != 1 || report.Skipped != 0 || report.Failed != 0 {
		t.Fatalf("first run report = %+v", report)
	}

	vod, err := st.GetVod(context.Background(), "v123456789")
	if err != nil {
		t.Fatalf("GetVod: %v", err)
	}
	if vod == nil {
		t.Fatal("expected vod row")
	}
	if vod.Title == nil || *vod.Title != "Dark Souls" {
		t.Fatalf("title = %v", vod.Title)
	}
	if vod.Date == nil || *vod.Date != "2023-05-01" {
		t.Fatalf("date = %v", vod.Date)
	}

	segments, err := st.TranscriptSegments(context.Background(), "v123456789")
	if err != nil {
		t.Fatalf("TranscriptSegments: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	if segments[1].Speaker != 99 {
		t.Fatalf("segment 2 speaker = %d, want 99", segments[1].Speaker)
	}

	report, err = importer.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Imported != 0 || report.Skipped != 1 {
		t.Fatalf("second run report = %+v", report)
	}
}

func TestImporterCountsMalformedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if err := os.MkdirAll(cfg.Paths.TranscriptsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.Paths.TranscriptsDir, "badname.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	importer := transcripts.NewImporter(cfg, st, nil, false)
	report, err := importer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Failed != 1 || report.Imported != 0 {
		t.Fatalf("report = %+v", report)
	}
}
