// Package progress holds the read-side computations shown in the
// dashboard header and chapter table: deadline countdowns, word-count
// deltas, and progress toward the manuscript target. Nothing here is
// ever persisted.
package progress

import (
	"fmt"
	"time"

	"github.com/nhle/novel-forge/internal/model"
)

// Countdown renders the days remaining until a persisted deadline
// string. An empty deadline yields "N/A" and an unparsable one
// "Invalid Date"; it never fails.
func Countdown(deadline string, today time.Time) string {
	if deadline == "" {
		return "N/A"
	}

	d, err := time.Parse(model.DeadlineLayout, deadline)
	if err != nil {
		return "Invalid Date"
	}

	days := daysBetween(today, d)
	switch {
	case days < 0:
		return fmt.Sprintf("%d days OVERDUE", -days)
	case days == 0:
		return "DUE TODAY"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// WordDelta is the change in word count since the prior save in which
// it changed. May be negative; recomputes to 0 right after a save that
// left word_count untouched.
func WordDelta(current, previous int) int {
	return current - previous
}

// TotalWordCount sums the word counts of all chapters.
func TotalWordCount(chapters []model.Chapter) int {
	total := 0
	for _, ch := range chapters {
		total += ch.WordCount
	}
	return total
}

// Fraction is the progress toward the target word count, clamped to
// [0, 1]. A non-positive target yields 0.
func Fraction(total, target int) float64 {
	if target <= 0 {
		return 0
	}
	f := float64(total) / float64(target)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time of day on either side.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	at := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bt := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bt.Sub(at).Hours() / 24)
}
