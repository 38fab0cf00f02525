// Package fetcher retrieves near-Earth-object feeds from the NeoWs API.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"neowatch/internal/config"
	"neowatch/internal/logger"
	"neowatch/internal/models"
	"neowatch/pkg/utils"
)

// Fetch errors.
var (
	ErrNetwork            = errors.New("problem connecting to the NeoWs API")
	ErrResponseProcessing = errors.New("error processing NeoWs API response")
)

// Query parameter names understood by the feed endpoint.
const (
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamAPIKey    = "api_key"
)

// Fetcher issues feed requests against a single endpoint.
type Fetcher struct {
	client           *http.Client
	http             *utils.HTTPHelper
	log              *logger.Logger
	endpoint         string
	apiKey           string
	maxResponseBytes int64
}

// NewFetcher creates a fetcher from configuration.
func NewFetcher(cfg *config.Config, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Discard()
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.HTTP.GetTimeout(),
		},
		http:             utils.NewHTTPHelper(cfg.HTTP.UserAgent),
		log:              log.With("component", "fetcher"),
		endpoint:         cfg.API.Endpoint,
		apiKey:           cfg.API.Key,
		maxResponseBytes: cfg.HTTP.GetMaxResponseBytes(),
	}
}

// WithHTTPClient replaces the underlying HTTP client and returns the fetcher.
func (f *Fetcher) WithHTTPClient(client *http.Client) *Fetcher {
	f.client = client

	return f
}

// BuildURL returns the feed request URL for the given dates.
func (f *Fetcher) BuildURL(start, end string) (string, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", f.endpoint, err)
	}

	q := u.Query()
	q.Set(ParamStartDate, start)
	q.Set(ParamEndDate, end)
	q.Set(ParamAPIKey, f.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchFeed retrieves the feed for start..end.
//
// A response with a status other than 200 yields an empty payload and no
// error. Transport failures return ErrNetwork; bodies that cannot be decoded
// return ErrResponseProcessing.
func (f *Fetcher) FetchFeed(ctx context.Context, start, end string) (*models.FeedPayload, error) {
	reqURL, err := f.BuildURL(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrNetwork, err)
	}

	req.Header = f.http.BuildHeaders(nil)

	f.log.Debug("requesting feed", "url", f.http.RedactQuery(reqURL, ParamAPIKey))

	startTime := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.Debug("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		f.log.Warn("feed returned non-success status, no results produced",
			"status", resp.StatusCode,
			"duration", time.Since(startTime))

		return &models.FeedPayload{}, nil
	}

	// Read one byte past the cap so an oversized body is detected rather than truncated.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	if int64(len(body)) > f.maxResponseBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrResponseProcessing, f.maxResponseBytes)
	}

	payload, err := DecodeFeed(body)
	if err != nil {
		return nil, err
	}

	f.log.Debug("feed decoded",
		"dates", len(payload.Buckets),
		"objects", payload.ObjectCount(),
		"bytes", len(body),
		"duration", time.Since(startTime))

	return payload, nil
}
