package imagesync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/scentdex/scentdex-server/internal/ratelimit"
)

const (
	// maxImageSize caps a single download.
	maxImageSize = 10 * 1024 * 1024 // 10MB

	// fetchTimeout bounds one download including redirects.
	fetchTimeout = 30 * time.Second

	// userAgent is sent with every request; some image hosts reject the Go default.
	userAgent = "scentdex-images/1.0"
)

// ErrTooLarge is returned when a body exceeds maxImageSize.
var ErrTooLarge = errors.New("image exceeds size limit")

// StatusError is a non-200 response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Image is a downloaded image body with whatever metadata could be read from it.
type Image struct {
	Data   []byte
	Format string // jpeg, png, gif, webp; empty when undecodable
	Width  int
	Height int
}

// Fetcher downloads images over HTTP, following redirects.
// Requests to the same host are spaced by a keyed rate limiter.
type Fetcher struct {
	httpClient *http.Client
	limiter    *ratelimit.KeyedRateLimiter
	logger     *slog.Logger
}

// NewFetcher creates a fetcher. limiter may be nil to disable pacing.
func NewFetcher(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// WithClient swaps the HTTP client. Used by tests.
func (f *Fetcher) WithClient(c *http.Client) *Fetcher {
	f.httpClient = c
	return f
}

// Fetch downloads rawURL. A non-200 final response is a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	if rawURL == "" {
		return nil, errors.New("empty image URL")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, errors.New("empty response body")
	}

	img := &Image{Data: data}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		f.logger.Warn("failed to read image dimensions",
			"url", rawURL,
			"error", err,
		)
	} else {
		img.Format = format
		img.Width = cfg.Width
		img.Height = cfg.Height
	}

	return img, nil
}
