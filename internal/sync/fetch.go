package sync

import (
	"context"

	"github.com/AMCF-2026/jidhr/internal/pkg/logger"
)

// PagingMode selects how the fetch position is communicated to the source
// API. The v2 CSuite endpoints take a record offset; the older generation
// takes a 1-based page number. Offset paging is the default.
type PagingMode int

const (
	PageByOffset PagingMode = iota
	PageByNumber
)

// PageFunc fetches one page of records. pos is a record offset or a
// 1-based page number depending on the paging mode.
type PageFunc[T any] func(ctx context.Context, limit, pos int) ([]T, error)

// FetchOptions tunes a FetchAll run.
type FetchOptions struct {
	// BatchSize is the per-page record count; defaults to batchSize (100).
	BatchSize int
	// Limit caps the total records returned, 0 meaning unlimited. The
	// result is truncated to exactly this count.
	Limit int
	// Mode is the paging convention of the underlying endpoint.
	Mode PagingMode
}

// maxFetchPages bounds a pagination loop against a source that never
// reports a short page.
const maxFetchPages = 1000

// FetchAll drains a paginated listing into a flat slice, preserving source
// page order. Pagination stops on the first short page, on reaching
// opts.Limit, or on a page-fetch failure; a failure is logged and the
// records gathered so far are returned alongside the error.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], opts FetchOptions) ([]T, error) {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = batchSize
	}

	var all []T
	offset := 0

	for page := 1; page <= maxFetchPages; page++ {
		pos := offset
		if opts.Mode == PageByNumber {
			pos = page
		}

		records, err := fetch(ctx, batch, pos)
		if err != nil {
			logger.Error("pagination stopped on fetch failure",
				"offset", offset, "fetched", len(all), "error", err)
			return all, err
		}

		all = append(all, records...)

		if opts.Limit > 0 && len(all) >= opts.Limit {
			return all[:opts.Limit], nil
		}
		if len(records) < batch {
			break
		}
		offset += batch
	}

	return all, nil
}
