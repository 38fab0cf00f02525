// Package processor runs a feed query end to end: validation, fetch and formatting.
package processor

import (
	"context"
	"fmt"
	"time"

	"neowatch/internal/formatter"
	"neowatch/internal/logger"
	"neowatch/internal/models"
	"neowatch/internal/validator"
)

// FeedFetcher retrieves the decoded feed for a date range.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, start, end string) (*models.FeedPayload, error)
}

// Processor composes the request pipeline. It holds no per-call state.
type Processor struct {
	fetcher FeedFetcher
	log     *logger.Logger
}

// NewProcessor creates a new processor instance.
func NewProcessor(fetcher FeedFetcher, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		fetcher: fetcher,
		log:     log.With("component", "processor"),
	}
}

// GetNearEarthObjects returns one formatted line per ranked object for every
// date in start..end, keeping at most limit objects per date.
//
// Invalid input fails with a validator error before any request is made.
// Fetch failures are returned unchanged; no partial result accompanies an error.
func (p *Processor) GetNearEarthObjects(ctx context.Context, start, end string, limit any) ([]string, error) {
	payload, n, err := p.fetch(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}

	lines := formatter.FormatResults(payload, n)
	p.log.Info("feed formatted", "range", models.DateRange{Start: start, End: end}, "lines", len(lines))

	return lines, nil
}

// GetEntries is GetNearEarthObjects without the line rendering, for callers
// that lay the selection out themselves.
func (p *Processor) GetEntries(ctx context.Context, start, end string, limit any) ([]models.Entry, error) {
	payload, n, err := p.fetch(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}

	return formatter.Select(payload, n), nil
}

func (p *Processor) fetch(ctx context.Context, start, end string, limit any) (*models.FeedPayload, int, error) {
	// 1. Validate the input data
	if err := validator.ValidateRequest(start, end, limit); err != nil {
		return nil, 0, fmt.Errorf("validation failed: %w", err)
	}

	n := validator.RecordLimit(limit)

	// 2. Fetch the feed
	startTime := time.Now()

	payload, err := p.fetcher.FetchFeed(ctx, start, end)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch failed: %w", err)
	}

	if payload == nil {
		payload = &models.FeedPayload{}
	}

	p.log.Debug("feed fetched",
		"dates", len(payload.Buckets),
		"objects", payload.ObjectCount(),
		"duration", time.Since(startTime))

	return payload, n, nil
}
