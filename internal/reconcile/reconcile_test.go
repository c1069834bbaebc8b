package reconcile_test

import (
	"context"

	"vodsync/internal/reconcile"
	"vodsync/internal/services/archive"
	"vodsync/internal/services/peertube"
)

var (
	_ reconcile.PeerTubeAPI = (*fakePeerTube)(nil)
	_ reconcile.ArchiveAPI  = (*fakeArchive)(nil)
)

type fakePeerTube struct {
	videos      []peertube.Video
	imports     []peertube.Import
	sourceNames map[int64]*string
	sourceCalls int
	upstream    map[int64]*peertube.Video
	dateUpdates map[int64]string
}

func (f *fakePeerTube) Authenticate(ctx context.Context) error { return nil }

func (f *fakePeerTube) AllVideos(ctx context.Context) ([]peertube.Video, error) {
	return f.videos, nil
}

func (f *fakePeerTube) SourceFilename(ctx context.Context, videoID int64) (*string, error) {
	f.sourceCalls++
	return f.sourceNames[videoID], nil
}

func (f *fakePeerTube) Imports(ctx context.Context) ([]peertube.Import, error) {
	return f.imports, nil
}

func (f *fakePeerTube) Video(ctx context.Context, videoID int64) (*peertube.Video, error) {
	return f.upstream[videoID], nil
}

func (f *fakePeerTube) UpdatePublishDate(ctx context.Context, videoID int64, date string) error {
	if f.dateUpdates == nil {
		f.dateUpdates = make(map[int64]string)
	}
	f.dateUpdates[videoID] = date
	return nil
}

type fakeArchive struct {
	files map[string][]archive.File
}

func (f *fakeArchive) FilesByVod(ctx context.Context, dates []string) (map[string][]archive.File, error) {
	if f.files == nil {
		return map[string][]archive.File{}, nil
	}
	return f.files, nil
}

func (f *fakeArchive) BaseURL() string { return "https://archive.example" }

func importFor(videoID int64, target string) peertube.Import {
	var job peertube.Import
	job.TargetURL = &target
	job.Video.ID = videoID
	return job
}
