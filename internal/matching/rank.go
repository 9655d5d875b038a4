package matching

import (
	"sort"
	"time"
)

// rankTop sorts items by key score descending, breaking ties by id ascending,
// and keeps the first limit entries. It sorts in place.
func rankTop[T any](items []T, limit int, key func(T) (float64, string)) []T {
	sort.SliceStable(items, func(i, j int) bool {
		si, idi := key(items[i])
		sj, idj := key(items[j])
		if si != sj {
			return si > sj
		}
		return idi < idj
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// newestFirst orders items by timestamp descending, then id ascending, and
// keeps the first limit entries.
func newestFirst[T any](items []T, limit int, key func(T) (time.Time, string)) []T {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi < idj
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
