// Package domain holds the data structures and ports of the retrieval service
package domain

import (
	"fmt"
	"time"

	"logzq/internal/platform/clock"

	"github.com/go-json-experiment/json/jsontext"
)

// Document is one matched record, the hit's _source passed through untouched
type Document = jsontext.Value

// TimeWindow is a closed interval [Start, End] in epoch milliseconds
type TimeWindow struct {
	Start int64
	End   int64
}

// WindowOf builds a TimeWindow from two instants
func WindowOf(start, end time.Time) TimeWindow {
	return TimeWindow{Start: clock.Millis(start), End: clock.Millis(end)}
}

// Splittable reports whether the window spans more than one millisecond
func (w TimeWindow) Splittable() bool { return w.Start < w.End }

// Bisect returns [Start, mid] and [mid+1, End]; the halves share no millisecond
func (w TimeWindow) Bisect() (TimeWindow, TimeWindow) {
	mid := w.Start + (w.End-w.Start)/2
	return TimeWindow{Start: w.Start, End: mid}, TimeWindow{Start: mid + 1, End: w.End}
}

// Contains reports whether ms falls inside the window, both ends inclusive
func (w TimeWindow) Contains(ms int64) bool { return ms >= w.Start && ms <= w.End }

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s]",
		clock.FromMillis(w.Start).Format(time.RFC3339Nano),
		clock.FromMillis(w.End).Format(time.RFC3339Nano))
}

// QuerySpec is one caller request; WindowSize zero means the configured default
type QuerySpec struct {
	Query      string
	Start      time.Time
	End        time.Time
	WindowSize time.Duration
}

// IndexSet lists date-partitioned index names in chronological order
type IndexSet []string

// PageRequest fully determines one search call
type PageRequest struct {
	Query   string
	Window  TimeWindow
	Offset  int
	Size    int
	Indices IndexSet
}

// PageResult is one decoded page; Total counts every match in the window, not just this page.
// LowerBound is set when the service stopped counting, so Total may be short
type PageResult struct {
	Total      int64
	LowerBound bool
	Documents  []Document
}
