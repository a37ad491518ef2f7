// Package reconcile diffs a UI-edited snapshot of the chapter table
// against the prior authoritative collection and computes the full
// next-state collection the store should commit: updates with change
// markers, inserts with fresh identifiers, and deletions by absence.
package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/nhle/novel-forge/internal/model"
)

// EditedChapter is one row of the chapter table as submitted by the UI.
// ID is nil for a row the user created; a non-nil ID that no longer
// matches a stored chapter is also treated as new rather than guessed
// at. Field values arrive raw and are coerced during mapping.
type EditedChapter struct {
	ID        *int
	Title     string
	Status    string
	WordCount string
	Priority  string
	Deadline  string
}

// Result is the outcome of reconciling one edited snapshot.
type Result struct {
	// Chapters is the full next-state collection. Anything stored but
	// absent from it is deleted by the store's delete-by-absence rule.
	Chapters []model.Chapter

	// Changed reports whether any record was edited, added, or removed.
	Changed bool

	// DoneTitles lists chapters whose status transitioned to Done in
	// this pass, for celebratory feedback only.
	DoneTitles []string
}

// comparable chapter fields, in the order they are checked.
var trackedFields = []string{"title", "status", "word_count", "priority", "deadline"}

// Chapters reconciles the edited rows against the previous collection.
// Matched rows keep their identifier and carry previous_word_count and
// last_edited forward untouched; the store shifts and stamps those
// based on the change marker. New rows get max-previous-id+1 (deleted
// identifiers are never reused) with last_edited set to now.
func Chapters(previous []model.Chapter, edited []EditedChapter, now time.Time) Result {
	prevByID := make(map[int]*model.Chapter, len(previous))
	nextID := 1
	for i := range previous {
		prevByID[previous[i].ID] = &previous[i]
		if previous[i].ID >= nextID {
			nextID = previous[i].ID + 1
		}
	}

	var res Result
	seen := make(map[int]bool, len(edited))

	for _, row := range edited {
		mapped := mapRow(row)

		var prev *model.Chapter
		if row.ID != nil {
			prev = prevByID[*row.ID]
		}

		if prev == nil {
			// New record: fresh identifier, zero baseline, stamped now.
			mapped.ID = nextID
			nextID++
			mapped.PreviousWordCount = 0
			stamp := now
			mapped.LastEdited = &stamp
			mapped.Changed = true
			res.Changed = true
			res.Chapters = append(res.Chapters, mapped)
			continue
		}

		seen[prev.ID] = true
		mapped.ID = prev.ID
		mapped.PreviousWordCount = prev.PreviousWordCount
		mapped.LastEdited = prev.LastEdited

		for _, field := range trackedFields {
			if !fieldDiffers(prev, &mapped, field) {
				continue
			}
			mapped.Changed = true
			res.Changed = true
			if field == "status" && mapped.Status == model.StatusDone {
				res.DoneTitles = append(res.DoneTitles, mapped.Title)
			}
			break
		}

		res.Chapters = append(res.Chapters, mapped)
	}

	// Anything stored but not resubmitted is an implicit deletion.
	for i := range previous {
		if !seen[previous[i].ID] {
			res.Changed = true
			break
		}
	}

	return res
}

// mapRow maps UI field values onto a chapter with canonical types:
// non-numeric word counts coerce to 0, non-date deadlines to absent.
func mapRow(row EditedChapter) model.Chapter {
	ch := model.Chapter{
		Title:    row.Title,
		Status:   row.Status,
		Priority: row.Priority,
	}
	if ch.Status == "" {
		ch.Status = model.StatusNotStarted
	}
	if ch.Priority == "" {
		ch.Priority = model.PriorityLow
	}

	ch.WordCount = coerceWordCount(row.WordCount)

	if d := model.ParseDeadline(strings.TrimSpace(row.Deadline)); d != nil {
		ch.DeadlineDate = d
		ch.Deadline = d.Format(model.DeadlineLayout)
	}

	return ch
}

// coerceWordCount parses a raw word count, treating anything
// unparsable or negative as 0.
func coerceWordCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// fieldDiffers compares one tracked field between the stored chapter
// and the mapped row using type-normalized equality: a stored deadline
// string and a parsed date are equal iff they denote the same calendar
// date.
func fieldDiffers(prev, next *model.Chapter, field string) bool {
	switch field {
	case "title":
		return prev.Title != next.Title
	case "status":
		return prev.Status != next.Status
	case "word_count":
		return prev.WordCount != next.WordCount
	case "priority":
		return prev.Priority != next.Priority
	case "deadline":
		return !sameDeadline(prev, next)
	}
	return false
}

func sameDeadline(a, b *model.Chapter) bool {
	ad := a.DeadlineDate
	if ad == nil {
		ad = model.ParseDeadline(a.Deadline)
	}
	bd := b.DeadlineDate
	if bd == nil {
		bd = model.ParseDeadline(b.Deadline)
	}

	if ad == nil || bd == nil {
		return ad == nil && bd == nil
	}

	ay, am, aday := ad.Date()
	by, bm, bday := bd.Date()
	return ay == by && am == bm && aday == bday
}
