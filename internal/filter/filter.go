// Package filter selects ordered subsequences of Message records.
package filter

import (
	"strings"

	"github.com/antonioalberti/ng5Gdata/internal/core"
)

// Interval is an inclusive time window. A nil bound imposes no constraint
// on that side.
type Interval struct {
	Begin *float64
	End   *float64
}

// Contains reports whether ts satisfies both supplied bounds.
func (iv Interval) Contains(ts float64) bool {
	if iv.Begin != nil && ts < *iv.Begin {
		return false
	}
	if iv.End != nil && ts > *iv.End {
		return false
	}
	return true
}

// Bound is a convenience constructor for optional interval bounds.
func Bound(v float64) *float64 {
	return &v
}

// Apply returns the ordered subsequence of messages inside the interval
// whose raw text contains at least one of the substrings. An empty
// substring list imposes no text constraint. Apply never mutates or
// reorders its input; with no predicates it is the identity.
func Apply(messages []core.Message, interval Interval, substrings []string) []core.Message {
	out := make([]core.Message, 0, len(messages))
	for _, msg := range messages {
		if !interval.Contains(msg.Timestamp) {
			continue
		}
		if !matchesAny(msg.RawText, substrings) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func matchesAny(text string, substrings []string) bool {
	if len(substrings) == 0 {
		return true
	}
	for _, sub := range substrings {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
