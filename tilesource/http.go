package tilesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb/maptile"
	"github.com/sirupsen/logrus"
)

// HTTPSource fetches tiles from a URL template.
type HTTPSource struct {
	template   string
	userAgent  string
	maxBytes   int64
	httpClient *http.Client
}

// NewHTTPSource creates a source for a URL template. A URL without
// placeholders is fetched as-is for every tile.
func NewHTTPSource(template string, opts Options) *HTTPSource {
	return &HTTPSource{
		template:   template,
		userAgent:  opts.UserAgent,
		maxBytes:   opts.MaxBytes,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch fetches a single tile and returns its raw bytes. A 204 response is
// an empty tile.
func (s *HTTPSource) Fetch(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	url := Expand(s.template, tile)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrNetwork, url, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", ErrNetwork, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return []byte{}, nil
	default:
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrNetwork, resp.StatusCode, url)
	}

	var body io.Reader = resp.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(resp.Body, s.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNetwork, url, err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: tile %s exceeds %d bytes", ErrNetwork, url, s.maxBytes)
	}

	logrus.WithFields(logrus.Fields{
		"tile":     tileID(tile),
		"url":      url,
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	}).Debug("fetched tile")
	return data, nil
}
