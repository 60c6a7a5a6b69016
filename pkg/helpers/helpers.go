// Package helpers holds small conveniences shared by the library and the
// example bots.
package helpers

import (
	"math"
	"strconv"
	"strings"
)

// FormatDuration renders a second count as "1d 2hr 3m 4.00s". Zero renders
// as "0s". With fixedSeconds the seconds always carry two decimals.
func FormatDuration(seconds float64, fixedSeconds bool) string {
	sec := math.Mod(seconds, 60)
	seconds = math.Floor(seconds / 60)
	min := math.Mod(seconds, 60)
	seconds = math.Floor(seconds / 60)
	hour := math.Mod(seconds, 24)
	days := math.Floor(seconds / 24)

	var sb strings.Builder
	if days > 0 {
		sb.WriteString(strconv.FormatFloat(days, 'f', -1, 64))
		sb.WriteString("d ")
	}
	if hour > 0 {
		sb.WriteString(strconv.FormatFloat(hour, 'f', -1, 64))
		sb.WriteString("hr ")
	}
	if min > 0 {
		sb.WriteString(strconv.FormatFloat(min, 'f', -1, 64))
		sb.WriteString("m ")
	}
	if sec > 0 {
		if fixedSeconds {
			sb.WriteString(strconv.FormatFloat(sec, 'f', 2, 64))
		} else {
			sb.WriteString(strconv.FormatFloat(roundTo(sec, 2), 'f', -1, 64))
		}
		sb.WriteString("s ")
	}
	if sb.Len() == 0 {
		return "0s"
	}
	return strings.TrimRight(sb.String(), " ")
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// SplitAndTrim splits on the delimiter, trims each piece and drops empties.
func SplitAndTrim(text string, delimiter string) []string {
	parts := strings.Split(text, delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LimitedQueue is a FIFO that drops its oldest entry once full.
type LimitedQueue[T any] struct {
	items []T
	limit int
}

// NewLimitedQueue creates a queue bounded at limit entries; limit <= 0
// means unbounded.
func NewLimitedQueue[T any](limit int) *LimitedQueue[T] {
	return &LimitedQueue[T]{limit: limit}
}

// Push appends an item, evicting the oldest when over the limit.
func (q *LimitedQueue[T]) Push(item T) {
	q.items = append(q.items, item)
	if q.limit > 0 && len(q.items) > q.limit {
		q.items = q.items[1:]
	}
}

// Items returns the queue contents oldest-first. The slice is shared;
// callers must not mutate it.
func (q *LimitedQueue[T]) Items() []T { return q.items }

// Len reports the number of queued items.
func (q *LimitedQueue[T]) Len() int { return len(q.items) }
