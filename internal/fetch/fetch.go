package fetch

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pfrederiksen/nps-sites/internal/logger"
)

const (
	DefaultUserAgent = "nps-sites/1.0 (github.com/pfrederiksen/nps-sites)"
	DefaultContact   = "nps-sites@users.noreply.github.com"
)

// ErrStatus is returned when the server answers with a non-200 status.
var ErrStatus = errors.New("unexpected status code")

// Options configures the client signature and transport.
type Options struct {
	UserAgent string
	Contact   string        // sent as the From header
	Timeout   time.Duration // zero means no timeout
}

// Fetcher performs uncached GET requests.
type Fetcher struct {
	client *resty.Client
}

// New creates a Fetcher. Requests are never retried.
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Contact == "" {
		opts.Contact = DefaultContact
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("From", opts.Contact)
	client.SetRetryCount(0)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Fetcher{client: client}
}

// Fetch returns the body of url. Transport errors and non-OK statuses are
// returned as errors.
func (f *Fetcher) Fetch(url string) (string, error) {
	start := time.Now()
	resp, err := f.client.R().Get(url)
	logger.RecordTiming("fetch.duration", time.Since(start))
	if err != nil {
		logger.IncrCounter("fetch.error")
		return "", fmt.Errorf("requesting page: %w", err)
	}

	if resp.StatusCode() != 200 {
		logger.IncrCounter("fetch.error")
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	// resp.String() trims whitespace; the cache stores the body as sent.
	return string(resp.Body()), nil
}
