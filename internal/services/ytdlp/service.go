package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"vodsync/internal/config"
	"vodsync/internal/logging"
)

// DefaultBinary is the yt-dlp executable resolved via PATH.
const DefaultBinary = "yt-dlp"

// Service fetches YouTube video metadata through the yt-dlp binary.
type Service struct {
	binary        string
	workers       int
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewService creates a yt-dlp service from application configuration.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	binary := cfg.YouTube.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	workers := cfg.YouTube.Workers
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		binary:  binary,
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "ytdlp"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.commandRunner = runner
}

// Request names one video to fetch, together with the stream date the
// spreadsheet associates with it.
type Request struct {
	Date    string
	VideoID string
}

// Metadata is the subset of yt-dlp's JSON dump the sync stores.
type Metadata struct {
	VideoID     string
	VodDate     string
	Title       string
	Description string
	UploadDate  string
	Channel     string
	Duration    int64
}

// Result pairs a request with its outcome. One failed video never aborts
// the batch.
type Result struct {
	Request  Request
	Metadata *Metadata
	Err      error
}

type infoDump struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UploadDate  string `json:"upload_date"`
	Duration    int64  `json:"duration"`
	ChannelID   string `json:"channel_id"`
}

// Fetch retrieves metadata for a single video.
func (s *Service) Fetch(ctx context.Context, req Request) (*Metadata, error) {
	url := "https://www.youtube.com/watch?v=" + req.VideoID
	output, err := s.run(ctx, s.binary, "-J", "--skip-download", url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.VideoID, err)
	}

	var dump infoDump
	if err := json.Unmarshal(output, &dump); err != nil {
		return nil, fmt.Errorf("decode %s: %w", req.VideoID, err)
	}

	return &Metadata{
		VideoID:     req.VideoID,
		VodDate:     req.Date,
		Title:       dump.Title,
		Description: dump.Description,
		UploadDate:  dump.UploadDate,
		Channel:     dump.ChannelID,
		Duration:    dump.Duration,
	}, nil
}

// FetchAll runs the requests through a fixed pool of workers and delivers
// every result to onResult from the calling goroutine, so callers can write
// to a single database handle without their own locking.
func (s *Service) FetchAll(ctx context.Context, requests []Request, onResult func(Result)) {
	if len(requests) == 0 {
		return
	}

	jobs := make(chan Request)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range jobs {
				meta, err := s.Fetch(ctx, req)
				results <- Result{Request: req, Metadata: meta, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, req := range requests {
			select {
			case jobs <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		if result.Err != nil {
			s.logger.Warn("video fetch failed",
				logging.String(logging.FieldVideoID, result.Request.VideoID),
				logging.Error(result.Err))
		}
		onResult(result)
	}
}

func (s *Service) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
