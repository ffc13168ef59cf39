package service

import (
	"time"

	"logzq/internal/platform/clock"
	"logzq/internal/services/retrieval/domain"
)

// indexDateLayout renders yyMMdd
const indexDateLayout = "060102"

// DateIndex names the daily index holding documents stamped on t's UTC day
func DateIndex(prefix string, t time.Time) string {
	return prefix + t.UTC().Format(indexDateLayout)
}

// ResolveIndices lists one index per UTC calendar day touched by [start, end],
// oldest first. An inverted range yields an empty set
func ResolveIndices(prefix string, start, end time.Time) domain.IndexSet {
	var out domain.IndexSet
	for d := clock.StartOfDayUTC(start); !d.After(end); d = d.Add(clock.Day) {
		out = append(out, DateIndex(prefix, d))
	}
	return out
}
