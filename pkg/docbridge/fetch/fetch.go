// Package fetch retrieves documents from editor-supplied HTTP(S) URLs.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// maxRedirects caps redirect following. The editor's download URLs normally
// redirect at most once (to the backing store); anything deeper is a loop.
const maxRedirects = 5

// ErrTooManyRedirects indicates the redirect cap was exceeded
var ErrTooManyRedirects = errors.New("too many redirects")

// DownloadError represents a non-success response from the upstream URL
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed with status %d", e.URL, e.StatusCode)
}

// Fetcher downloads a document into memory. It is a transport primitive: no
// retries, no timeout beyond the supplied client's; callers wrap with their
// own context deadline.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Fetcher. A nil client uses a default one. The client's
// automatic redirect handling is disabled so the cap above is authoritative.
func New(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Fetcher{
		client: &c,
		logger: logger.With(slog.String("component", "fetcher")),
	}
}

// Fetch downloads the document at rawURL, following up to maxRedirects
// redirects. Client and server error statuses fail with *DownloadError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	current, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid download url %q: %w", rawURL, err)
	}

	for redirects := 0; ; redirects++ {
		if redirects > maxRedirects {
			return nil, fmt.Errorf("fetching %s: %w", rawURL, ErrTooManyRedirects)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", current, err)
		}

		switch {
		case resp.StatusCode >= 300 && resp.StatusCode < 400:
			location := resp.Header.Get("Location")
			resp.Body.Close()
			if location == "" {
				return nil, &DownloadError{URL: current.String(), StatusCode: resp.StatusCode}
			}
			next, err := current.Parse(location)
			if err != nil {
				return nil, fmt.Errorf("invalid redirect location %q: %w", location, err)
			}
			f.logger.Debug("following redirect",
				slog.String("from", current.String()),
				slog.String("to", next.String()),
			)
			current = next

		case resp.StatusCode >= 400:
			resp.Body.Close()
			return nil, &DownloadError{URL: current.String(), StatusCode: resp.StatusCode}

		default:
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %w", err)
			}
			return data, nil
		}
	}
}
