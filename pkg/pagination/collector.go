package pagination

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for page collection.
var (
	fusionPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_pages_fetched_total",
		Help: "Total number of result pages fetched successfully",
	})

	fusionPageFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_page_failures_total",
		Help: "Total number of result pages skipped after terminal fetch failure",
	})
)

// DefaultPageSize is the upstream ceiling on items per request.
const DefaultPageSize = 50

// FetchFunc fetches one page of at most limit items starting at
// offset, and reports the upstream total item count.
type FetchFunc[T any] func(ctx context.Context, offset, limit int) (items []T, total int, err error)

// Config holds collector configuration.
type Config struct {
	// PageSize is the per-request item ceiling.
	PageSize int

	// Logger receives skipped-page warnings.
	Logger zerolog.Logger
}

// DefaultConfig returns the upstream's page-size ceiling and a no-op logger.
func DefaultConfig() Config {
	return Config{
		PageSize: DefaultPageSize,
		Logger:   zerolog.Nop(),
	}
}

// Collect assembles up to maxItems items starting at offset, never
// more than the upstream reports as available. Requests within a
// single page delegate straight to fetch with no looping; larger
// requests walk offsets in page-size steps, truncating the final page
// so the result never exceeds the maxItems boundary.
//
// maxItems is an absolute offset bound, matching the upstream's offset
// parameter: collection stops once the running offset reaches it.
func Collect[T any](ctx context.Context, cfg Config, fetch FetchFunc[T], offset, maxItems int) ([]T, int, error) {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if maxItems <= pageSize {
		items, total, err := fetch(ctx, offset, maxItems)
		if err != nil {
			return nil, 0, err
		}
		fusionPagesFetchedTotal.Inc()
		return items, total, nil
	}

	items, total, err := fetch(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch first page: %w", err)
	}
	fusionPagesFetchedTotal.Inc()

	for off := offset + pageSize; off < maxItems && off < total; off += pageSize {
		if err := ctx.Err(); err != nil {
			return items, total, err
		}

		page, _, err := fetch(ctx, off, pageSize)
		if err != nil {
			// A lost page leaves a gap in the result set but does not
			// abort the collection.
			fusionPageFailuresTotal.Inc()
			cfg.Logger.Warn().
				Int("offset", off).
				Err(err).
				Msg("Page fetch failed, skipping")
			continue
		}
		fusionPagesFetchedTotal.Inc()

		if len(page)+off > maxItems {
			page = page[:maxItems-off]
		}
		items = append(items, page...)
	}

	return items, total, nil
}
