package reconcile_test

import (
	"context"
	"testing"

	"vodsync/internal/reconcile"
	"vodsync/internal/services/peertube"
	"vodsync/internal/store"
	"vodsync/internal/testsupport"
)

func ptVideo(id int64, name string) peertube.Video {
	return peertube.Video{
		ID:        id,
		Name:      name,
		Duration:  3600,
		CreatedAt: "2023-05-01T10:00:00.000Z",
		URL:       "https://pt.example/w/" + name,
		Channel:   peertube.Channel{ID: 7, Name: "main"},
		Privacy:   peertube.Privacy{ID: 1, Label: "Public"},
	}
}

func TestSyncVideosInsertAndIdempotence(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	filename := "20230501 - Dark Souls - v123456789.mp4"
	pt := &fakePeerTube{
		videos:      []peertube.Video{ptVideo(10, "dark-souls")},
		sourceNames: map[int64]*string{10: &filename},
	}
	r := reconcile.New(cfg, st, pt, &fakeArchive{}, nil, reconcile.Options{})

	report, err := r.SyncVideos(context.Background())
	if err != nil {
		t.Fatalf("SyncVideos: %v", err)
	}
	if report.Inserted != 1 || report.Updated != 0 || report.Failed != 0 {
		t.Fatalf("first pass report = %+v", report)
	}

	video, err := st.GetVideo(context.Background(), "10")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if video == nil {
		t.Fatal("expected stored video")
	}
	if video.ExternalID == nil || *video.ExternalID != "twitch:v123456789" {
		t.Fatalf("external id = %v, want twitch:v123456789", video.ExternalID)
	}

	report, err = r.SyncVideos(context.Background())
	if err != nil {
		t.Fatalf("second SyncVideos: %v", err)
	}
	if report.Skipped != 1 || report.Inserted != 0 || report.Updated != 0 {
		t.Fatalf("second pass report = %+v, want pure skip", report)
	}
}

func TestSyncVideosSkipsSourceLookupOnceResolved(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	filename := "20230501 - Dark Souls - v123456789.mp4"
	pt := &fakePeerTube{
		videos:      []peertube.Video{ptVideo(10, "dark-souls")},
		sourceNames: map[int64]*string{10: &filename},
	}
	r := reconcile.New(cfg, st, pt, &fakeArchive{}, nil, reconcile.Options{})

	if _, err := r.SyncVideos(context.Background()); err != nil {
		t.Fatalf("SyncVideos: %v", err)
	}
	if pt.sourceCalls != 1 {
		t.Fatalf("source lookups after first pass = %d, want 1", pt.sourceCalls)
	}
	if _, err := r.SyncVideos(context.Background()); err != nil {
		t.Fatalf("second SyncVideos: %v", err)
	}
	if pt.sourceCalls != 1 {
		t.Fatalf("source lookups after second pass = %d, want still 1", pt.sourceCalls)
	}
}

func TestSyncVideosManualOverrideWins(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	manual := "twitch:v999"
	derived := "youtube:SA2iWivDJiE"
	if err := st.InsertVideo(context.Background(), &store.Video{
		ID:         "10",
		Name:       "old name",
		ManualID:   &manual,
		ExternalID: &derived,
	}); err != nil {
		t.Fatalf("InsertVideo: %v", err)
	}

	source := "https://youtu.be/SA2iWivDJiE"
	pt := &fakePeerTube{
		videos:  []peertube.Video{ptVideo(10, "renamed")},
		imports: []peertube.Import{importFor(10, source)},
	}
	r := reconcile.New(cfg, st, pt, &fakeArchive{}, nil, reconcile.Options{})

	if _, err := r.SyncVideos(context.Background()); err != nil {
		t.Fatalf("SyncVideos: %v", err)
	}

	video, err := st.GetVideo(context.Background(), "10")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if video.ExternalID == nil || *video.ExternalID != manual {
		t.Fatalf("external id = %v, want the manual override", video.ExternalID)
	}
	if video.ManualID == nil || *video.ManualID != manual {
		t.Fatalf("manual id = %v, must survive the sync", video.ManualID)
	}
	if video.Name != "renamed" {
		t.Fatalf("name = %q, instance-owned fields must refresh", video.Name)
	}
}

func TestSyncVideosDerivesFromImportURL(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	pt := &fakePeerTube{
		videos:  []peertube.Video{ptVideo(11, "yt-mirror")},
		imports: []peertube.Import{importFor(11, "https://www.youtube.com/watch?v=_oPAwA_Udwc&t=10")},
	}
	r := reconcile.New(cfg, st, pt, &fakeArchive{}, nil, reconcile.Options{})

	if _, err := r.SyncVideos(context.Background()); err != nil {
		t.Fatalf("SyncVideos: %v", err)
	}

	video, err := st.GetVideo(context.Background(), "11")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if video.ExternalID == nil || *video.ExternalID != "youtube:_oPAwA_Udwc" {
		t.Fatalf("external id = %v, want youtube:_oPAwA_Udwc", video.ExternalID)
	}
	if video.SourceURL == nil || *video.SourceURL != "https://www.youtube.com/watch?v=_oPAwA_Udwc&t=10" {
		t.Fatalf("source url = %v", video.SourceURL)
	}
}

func TestSyncVideosPublishDateIsFillOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	stored := "2023-01-01"
	if err := st.InsertVideo(context.Background(), &store.Video{
		ID:                  "10",
		Name:                "old",
		OriginalPublishDate: &stored,
	}); err != nil {
		t.Fatalf("InsertVideo: %v", err)
	}

	video := ptVideo(10, "refreshed")
	upstreamDate := "2024-12-31"
	video.OriginallyPublishedAt = &upstreamDate
	pt := &fakePeerTube{videos: []peertube.Video{video}}
	r := reconcile.New(cfg, st, pt, &fakeArchive{}, nil, reconcile.Options{})

	if _, err := r.SyncVideos(context.Background()); err != nil {
		t.Fatalf("SyncVideos: %v", err)
	}

	got, err := st.GetVideo(context.Background(), "10")
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if got.OriginalPublishDate == nil || *got.OriginalPublishDate != stored {
		t.Fatalf("publish date = %v, want the stored %q untouched", got.OriginalPublishDate, stored)
	}
}
