package snapshot_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vodsync/internal/snapshot"
	"vodsync/internal/store"
	"vodsync/internal/testsupport"
)

func fixedClock() time.Time {
	return time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newExporter(t *testing.T) (*snapshot.Exporter, *store.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Snapshot.ChunkSize = 4096
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.NewVod(t, st, &store.Vod{VodID: "v111", Date: testsupport.StringPtr("2023-05-01")})

	exporter := snapshot.NewExporter(cfg, st, nil)
	exporter.WithClock(fixedClock)
	return exporter, st, cfg.Paths.StaticDir
}

func TestRunWritesChunksAndManifest(t *testing.T) {
	exporter, st, staticDir := newExporter(t)

	target, err := exporter.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Base(target) != "data-20230501" {
		t.Fatalf("snapshot dir = %q", target)
	}

	info, err := os.Stat(st.Path())
	if err != nil {
		t.Fatal(err)
	}

	chunks, err := filepath.Glob(filepath.Join(target, "db.sqlite3.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	var total int64
	for _, chunk := range chunks {
		chunkInfo, err := os.Stat(chunk)
		if err != nil {
			t.Fatal(err)
		}
		total += chunkInfo.Size()
	}
	if total != info.Size() {
		t.Fatalf("chunks cover %d bytes, database is %d", total, info.Size())
	}

	data, err := os.ReadFile(filepath.Join(target, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatal(err)
	}
	if manifest["serverMode"] != "chunked" {
		t.Fatalf("serverMode = %v", manifest["serverMode"])
	}
	if manifest["urlPrefix"] != "db.sqlite3." {
		t.Fatalf("urlPrefix = %v", manifest["urlPrefix"])
	}
	if int64(manifest["databaseLengthBytes"].(float64)) != info.Size() {
		t.Fatalf("databaseLengthBytes = %v, want %d", manifest["databaseLengthBytes"], info.Size())
	}
	if int64(manifest["serverChunkSize"].(float64)) != 4096 {
		t.Fatalf("serverChunkSize = %v", manifest["serverChunkSize"])
	}

	pointerData, err := os.ReadFile(filepath.Join(staticDir, "data.json"))
	if err != nil {
		t.Fatal(err)
	}
	var pointer map[string]string
	if err := json.Unmarshal(pointerData, &pointer); err != nil {
		t.Fatal(err)
	}
	if pointer["dir_name"] != "./data-20230501" {
		t.Fatalf("dir_name = %q", pointer["dir_name"])
	}
}

func TestRunReplacesPreviousSnapshot(t *testing.T) {
	exporter, _, staticDir := newExporter(t)

	stale := filepath.Join(staticDir, "data-20230101")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stale, "db.sqlite3.000"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := exporter.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale snapshot still present: %v", err)
	}
}
