// internal/service/reconciler/reconciler.go

// Package reconciler implements the fallback-read strategy used by every
// list view: query the primary record store, and only when that errors or
// returns nothing consult the locally cached snapshot. It also provides
// the federated merge used by quote reads that query the same entity by
// two different keys.
package reconciler

import (
	"context"
)

// Source produces one result set for a collection read.
type Source[T any] func(ctx context.Context) ([]T, error)

// Read runs the primary source and falls back to the snapshot source when
// the primary errors or yields zero rows. The returned flag reports
// whether the fallback was consulted. A primary result with at least one
// row short-circuits: the snapshot is never read in that case, so stale
// snapshot fields can never shadow fresh rows.
func Read[T any](ctx context.Context, primary, fallback Source[T]) ([]T, bool, error) {
	rows, err := primary(ctx)
	if err == nil && len(rows) > 0 {
		return rows, false, nil
	}

	fallbackRows, fbErr := fallback(ctx)
	if fbErr != nil {
		// Surface the primary failure when both channels are down;
		// it is the more actionable of the two.
		if err != nil {
			return nil, true, err
		}
		return nil, true, fbErr
	}

	return fallbackRows, true, nil
}

// MergeByID union-merges two result sets of the same logical entity keyed
// by id. Order follows the first set, with unseen records from the second
// appended in their own order. On a key collision the second set's record
// wins: both queries target the same underlying row, so last fetch is the
// freshest view.
func MergeByID[T any](key func(T) string, first, second []T) []T {
	index := make(map[string]int, len(first))
	merged := make([]T, 0, len(first)+len(second))

	for _, item := range first {
		index[key(item)] = len(merged)
		merged = append(merged, item)
	}

	for _, item := range second {
		if pos, seen := index[key(item)]; seen {
			merged[pos] = item
			continue
		}
		index[key(item)] = len(merged)
		merged = append(merged, item)
	}

	return merged
}
