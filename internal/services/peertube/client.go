package peertube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vodsync/internal/config"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPDoer describes the HTTP client used by the PeerTube service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps the PeerTube REST API for the configured instance.
type Client struct {
	baseURL  string
	username string
	password string
	pageSize int

	httpClient HTTPDoer
	token      string
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

// NewClient constructs a PeerTube client from application configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.PeerTube.URL), "/"),
		username:   cfg.PeerTube.Username,
		password:   cfg.PeerTube.Password,
		pageSize:   cfg.PeerTube.PageSize,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	if client.pageSize <= 0 {
		client.pageSize = 30
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type oauthClient struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate performs the OAuth password-grant flow and stores the access
// token for subsequent calls. Credential failures are fatal for the run, so
// callers abort before any batch work begins.
func (c *Client) Authenticate(ctx context.Context) error {
	var creds oauthClient
	if err := c.getJSON(ctx, "/api/v1/oauth-clients/local", nil, &creds); err != nil {
		return fmt.Errorf("fetch oauth client: %w", err)
	}

	form := url.Values{
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
		"grant_type":    {"password"},
		"response_type": {"code"},
		"username":      {c.username},
		"password":      {c.password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/users/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request token: http %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("request token: empty access token")
	}
	c.token = token.AccessToken
	return nil
}

// ListVideos returns one page of the instance's videos, newest first.
func (c *Client) ListVideos(ctx context.Context, start int) ([]Video, error) {
	params := url.Values{
		"start":   {strconv.Itoa(start)},
		"count":   {strconv.Itoa(c.pageSize)},
		"sort":    {"-createdAt"},
		"include": {"1"},
	}
	var page listResponse[Video]
	if err := c.getJSON(ctx, "/api/v1/videos", params, &page); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return page.Data, nil
}

// AllVideos walks the paginated video listing until it is exhausted.
func (c *Client) AllVideos(ctx context.Context) ([]Video, error) {
	var all []Video
	for start := 0; ; start += c.pageSize {
		page, err := c.ListVideos(ctx, start)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
	}
	return all, nil
}

// SourceFilename looks up the original upload filename for a video. A 404
// means the instance has no source record; that is "no value available", not
// an error.
func (c *Client) SourceFilename(ctx context.Context, videoID int64) (*string, error) {
	var source struct {
		Filename *string `json:"filename"`
	}
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/videos/%d/source", videoID), nil, &source)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch source filename: %w", err)
	}
	return source.Filename, nil
}

// Imports returns the account's prior import jobs, pairing each video with
// the URL it was imported from.
func (c *Client) Imports(ctx context.Context) ([]Import, error) {
	var all []Import
	for start := 0; ; start += c.pageSize {
		params := url.Values{
			"start": {strconv.Itoa(start)},
			"count": {strconv.Itoa(c.pageSize)},
		}
		var page listResponse[Import]
		if err := c.getJSON(ctx, "/api/v1/users/me/videos/imports", params, &page); err != nil {
			return nil, fmt.Errorf("list imports: %w", err)
		}
		if len(page.Data) == 0 {
			break
		}
		all = append(all, page.Data...)
		if len(page.Data) < c.pageSize {
			break
		}
	}
	return all, nil
}

// Video fetches one video's full record. A missing video returns (nil, nil).
func (c *Client) Video(ctx context.Context, videoID int64) (*Video, error) {
	var video Video
	err := c.getJSON(ctx, fmt.Sprintf("/api/v1/videos/%d", videoID), nil, &video)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch video: %w", err)
	}
	return &video, nil
}

// UpdatePublishDate writes a normalized original publish date back to the
// instance. The API acknowledges with 204.
func (c *Client) UpdatePublishDate(ctx context.Context, videoID int64, date string) error {
	payload, err := json.Marshal(map[string]string{"originallyPublishedAt": date})
	if err != nil {
		return fmt.Errorf("marshal publish date: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/v1/videos/%d", c.baseURL, videoID), strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update publish date: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("update publish date: http %d", resp.StatusCode)
	}
	return nil
}

type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d", e.StatusCode)
}

func isNotFound(err error) bool {
	var status *statusError
	return errors.As(err, &status) && status.StatusCode == http.StatusNotFound
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &statusError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
