package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"vodsync/internal/config"
)

const (
	defaultBaseURL     = "https://archive.org"
	defaultHTTPTimeout = 60 * time.Second
)

// HTTPDoer describes the HTTP client used by the archive.org service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads item metadata from archive.org and builds download URLs.
type Client struct {
	baseURL    string
	prefix     string
	formats    []string
	httpClient HTTPDoer
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at a different host. Tests use this.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient constructs an archive.org client from application configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		prefix:     cfg.Archive.IdentifierPrefix,
		formats:    cfg.Archive.VideoFormats,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// File is one video file inside an archive.org item. Size and length arrive
// as strings in the metadata JSON.
type File struct {
	Identifier string
	Name       string
	Size       string
	Length     string
}

// SizeBytes parses the file size, returning 0 when it is absent or malformed.
func (f File) SizeBytes() int64 {
	size, err := strconv.ParseInt(f.Size, 10, 64)
	if err != nil {
		return 0
	}
	return size
}

// LengthSeconds truncates the fractional length to whole seconds. Items
// without a usable length yield nil.
func (f File) LengthSeconds() *int64 {
	if f.Length == "" {
		return nil
	}
	whole, _, _ := strings.Cut(f.Length, ".")
	seconds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return nil
	}
	return &seconds
}

// DownloadURL is the direct download link for this file.
func (f File) DownloadURL(baseURL string) string {
	escaped := (&url.URL{Path: f.Name}).EscapedPath()
	return fmt.Sprintf("%s/download/%s/%s", baseURL, f.Identifier, escaped)
}

// BaseURL exposes the configured host so callers can build download links.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MonthlyIdentifiers maps YYYY-MM-DD dates onto the item identifiers that
// hold that month's uploads, deduplicated and sorted.
func (c *Client) MonthlyIdentifiers(dates []string) []string {
	seen := make(map[string]struct{})
	for _, date := range dates {
		if len(date) < 7 {
			continue
		}
		suffix := date[:4] + date[5:7]
		seen[c.prefix+suffix] = struct{}{}
	}
	identifiers := make([]string, 0, len(seen))
	for identifier := range seen {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)
	return identifiers
}

type itemMetadata struct {
	Files []struct {
		Name   string `json:"name"`
		Format string `json:"format"`
		Size   string `json:"size"`
		Length string `json:"length"`
	} `json:"files"`
}

// ItemFiles fetches one item's metadata and keeps only the configured video
// formats. A missing item returns an empty slice: months with no uploads are
// normal.
func (c *Client) ItemFiles(ctx context.Context, identifier string) ([]File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/metadata/"+identifier, nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for %s: %w", identifier, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch metadata for %s: http %d", identifier, resp.StatusCode)
	}

	var meta itemMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", identifier, err)
	}

	var files []File
	for _, file := range meta.Files {
		if !slices.Contains(c.formats, file.Format) {
			continue
		}
		files = append(files, File{
			Identifier: identifier,
			Name:       file.Name,
			Size:       file.Size,
			Length:     file.Length,
		})
	}
	return files, nil
}

// FilesByVod walks the monthly items covering the given dates and groups
// their video files by the VOD identifier embedded in each filename.
func (c *Client) FilesByVod(ctx context.Context, dates []string) (map[string][]File, error) {
	byVod := make(map[string][]File)
	for _, identifier := range c.MonthlyIdentifiers(dates) {
		files, err := c.ItemFiles(ctx, identifier)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			vodID := VodIDFromFilename(file.Name)
			if vodID == "" {
				continue
			}
			byVod[vodID] = append(byVod[vodID], file)
		}
	}
	return byVod, nil
}

// SmallestFile picks the file with the fewest bytes, the one mirrors serve
// fastest. Returns the zero File when the slice is empty.
func SmallestFile(files []File) (File, bool) {
	if len(files) == 0 {
		return File{}, false
	}
	smallest := files[0]
	for _, file := range files[1:] {
		if file.SizeBytes() < smallest.SizeBytes() {
			smallest = file
		}
	}
	return smallest, true
}

// VodIDFromFilename extracts the VOD identifier from an upload name. Files
// follow "YYYYMMDD - Title - <vod_id>.<ext>", with derivative uploads
// carrying an extra ".ia" marker before the extension.
func VodIDFromFilename(name string) string {
	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	parts := strings.Split(stem, " - ")
	return strings.ReplaceAll(parts[len(parts)-1], ".ia", "")
}
