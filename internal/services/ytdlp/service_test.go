package ytdlp_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"vodsync/internal/services/ytdlp"
	"vodsync/internal/testsupport"
)

func newTestService(t *testing.T, runner func(ctx context.Context, name string, args ...string) ([]byte, error)) *ytdlp.Service {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	service := ytdlp.NewService(cfg, nil)
	service.WithCommandRunner(runner)
	return service
}

func TestFetchParsesDump(t *testing.T) {
	var gotArgs []string
	service := newTestService(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte(`{"title":"Stream VOD","description":"part 1","upload_date":"20230502",` +
			`"duration":7215,"channel_id":"UCWSt3t0KBgFFIne69grCjPw"}`), nil
	})

	meta, err := service.Fetch(context.Background(), ytdlp.Request{Date: "20230501", VideoID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.Title != "Stream VOD" || meta.Duration != 7215 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.VodDate != "20230501" {
		t.Fatalf("vod date = %q, want 20230501", meta.VodDate)
	}
	if meta.Channel != "UCWSt3t0KBgFFIne69grCjPw" {
		t.Fatalf("channel = %q", meta.Channel)
	}

	want := []string{"yt-dlp", "-J", "--skip-download", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, gotArgs[i], want[i])
		}
	}
}

func TestFetchAllDeliversEveryResult(t *testing.T) {
	var calls atomic.Int64
	service := newTestService(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls.Add(1)
		url := args[len(args)-1]
		if url == "https://www.youtube.com/watch?v=broken00000" {
			return nil, errors.New("video unavailable")
		}
		return []byte(`{"title":"ok","duration":60}`), nil
	})

	requests := []ytdlp.Request{
		{Date: "20230501", VideoID: "aaaaaaaaaaa"},
		{Date: "20230501", VideoID: "broken00000"},
		{Date: "20230502", VideoID: "bbbbbbbbbbb"},
	}

	var (
		mu      sync.Mutex
		ok      int
		failed  int
		gotIDs  = map[string]bool{}
		results int
	)
	service.FetchAll(context.Background(), requests, func(result ytdlp.Result) {
		mu.Lock()
		defer mu.Unlock()
		results++
		gotIDs[result.Request.VideoID] = true
		if result.Err != nil {
			failed++
		} else {
			ok++
		}
	})

	if results != len(requests) {
		t.Fatalf("got %d results, want %d", results, len(requests))
	}
	if ok != 2 || failed != 1 {
		t.Fatalf("ok = %d, failed = %d, want 2 and 1", ok, failed)
	}
	for _, req := range requests {
		if !gotIDs[req.VideoID] {
			t.Fatalf("missing result for %s", req.VideoID)
		}
	}
	if calls.Load() != int64(len(requests)) {
		t.Fatalf("runner called %d times, want %d", calls.Load(), len(requests))
	}
}

func TestFetchAllEmptyBatch(t *testing.T) {
	service := newTestService(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, fmt.Errorf("should not run")
	})
	service.FetchAll(context.Background(), nil, func(ytdlp.Result) {
		t.Fatal("unexpected result")
	})
}
