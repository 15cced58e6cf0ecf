package mailer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobapply-backend/internal/shared/telemetry"
)

// Browser User-Agent sent on resume fetches; some file hosts refuse
// requests without one.
const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher downloads resume binaries over HTTP with a bounded timeout.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a Fetcher; a non-positive timeout falls back to 30s.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the given URL and returns the body and content type.
// A non-2xx status is an error naming the status; an unexpected content
// type is logged as a warning only, since export links frequently serve
// application/octet-stream or mislabel the payload.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build resume request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch resume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("failed to fetch resume from URL: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" &&
		!strings.Contains(contentType, "application/pdf") &&
		!strings.Contains(contentType, "application/octet-stream") {
		telemetry.Warn("resume.unexpected_content_type", map[string]any{
			"content_type": contentType,
			"url":          url,
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read resume body: %w", err)
	}
	return body, contentType, nil
}
