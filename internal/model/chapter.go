package model

import "time"

// Chapter status values, ordered roughly by editing progress.
const (
	StatusNotStarted = "Not Started"
	StatusDraft      = "Draft"
	StatusLineEdits  = "Line-Edits"
	StatusDone       = "Done"
)

// Chapter priority values.
const (
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
	PriorityLow      = "Low"
	PriorityOptional = "Optional"
)

// ChapterStatuses lists the valid status values in display order.
var ChapterStatuses = []string{StatusNotStarted, StatusDraft, StatusLineEdits, StatusDone}

// ChapterPriorities lists the valid priority values in display order.
var ChapterPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow, PriorityOptional}

// DeadlineLayout is the calendar-date format used for persisted deadlines.
const DeadlineLayout = "2006-01-02"

// Chapter is one chapter of the manuscript with its editing progress.
// The ID is assigned by the store on creation and stays stable for the
// record's lifetime.
type Chapter struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Status            string     `json:"status"`
	WordCount         int        `json:"word_count"`
	PreviousWordCount int        `json:"previous_word_count"`
	Priority          string     `json:"priority"`
	Deadline          string     `json:"deadline,omitempty"`
	LastEdited        *time.Time `json:"last_edited,omitempty"`

	// DeadlineDate is the parsed form of Deadline, derived on load.
	// Nil when Deadline is absent or not a valid YYYY-MM-DD date.
	DeadlineDate *time.Time `json:"-"`

	// Changed marks a record whose tracked fields differ from the stored
	// version in the current reconciliation pass. The store consumes it
	// to decide whether to stamp LastEdited; it is never persisted.
	Changed bool `json:"-"`
}

// ParseDeadline parses a persisted YYYY-MM-DD deadline string.
// Returns nil for an empty or malformed value; malformed deadlines are
// treated as absent rather than surfaced as errors.
func ParseDeadline(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DeadlineLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// ValidStatus reports whether s is one of the chapter status values.
func ValidStatus(s string) bool {
	for _, v := range ChapterStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidPriority reports whether s is one of the chapter priority values.
func ValidPriority(s string) bool {
	for _, v := range ChapterPriorities {
		if v == s {
			return true
		}
	}
	return false
}
