// Package enrich implements the per-URL enrichment loop: query Reddit
// for each input URL, map the outcome, and pace calls against the API
// rate limit.
package enrich

import (
	"context"
	"fmt"
	"time"

	"threadstats/internal/logger"
	"threadstats/internal/models"
)

// Fetcher fetches submission metadata for a URL. Implemented by
// reddit.Client; faked in tests.
type Fetcher interface {
	SubmissionByURL(ctx context.Context, postURL string) (models.Post, error)
}

// Enricher runs the enrichment loop sequentially over the input
// records.
type Enricher struct {
	fetcher   Fetcher
	logger    *logger.Logger
	batchSize int
	pause     time.Duration
	sleep     func(time.Duration)
}

// NewEnricher creates an enricher that pauses for pause after every
// batchSize processed URLs.
func NewEnricher(fetcher Fetcher, log *logger.Logger, batchSize int, pause time.Duration) *Enricher {
	return &Enricher{
		fetcher:   fetcher,
		logger:    log,
		batchSize: batchSize,
		pause:     pause,
		sleep:     time.Sleep,
	}
}

// NewEnricherWithSleep creates an enricher with an injected sleep
// function (useful for testing the pacing behavior).
func NewEnricherWithSleep(fetcher Fetcher, log *logger.Logger, batchSize int, pause time.Duration, sleep func(time.Duration)) *Enricher {
	e := NewEnricher(fetcher, log, batchSize, pause)
	e.sleep = sleep

	return e
}

// Run processes the records in order and returns one output record per
// successful lookup. A URL whose lookup fails is logged and dropped;
// the run itself never aborts on a per-URL error. Output order matches
// input order minus the dropped entries.
func (e *Enricher) Run(ctx context.Context, records []models.InputRecord) []models.OutputRecord {
	// Traffic values are joined back by URL after the lookup.
	traffic := make(map[string]float64, len(records))
	for _, record := range records {
		traffic[record.URL] = record.Traffic
	}

	total := len(records)
	output := make([]models.OutputRecord, 0, total)

	for i, record := range records {
		processed := i + 1

		e.logger.Info(fmt.Sprintf("Processing %d/%d: %s", processed, total, record.URL))

		post, err := e.fetcher.SubmissionByURL(ctx, record.URL)
		if err != nil {
			e.logger.Error(fmt.Sprintf("Error processing URL %s: %v", record.URL, err))
		} else {
			output = append(output, models.OutputRecord{
				URL:          record.URL,
				Traffic:      traffic[record.URL],
				CommentCount: models.CommentCountFromPost(post),
			})
		}

		// Errored URLs count toward the batch; the pause is pure
		// time-based pacing, not adaptive backoff.
		if processed%e.batchSize == 0 {
			e.logger.Info(fmt.Sprintf(
				"Processed %d/%d URLs. Sleeping for %s to avoid rate limits.",
				processed, total, e.pause,
			))
			e.sleep(e.pause)
		}
	}

	return output
}
