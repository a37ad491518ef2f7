package reconcile

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/novel-forge/internal/model"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func idPtr(id int) *int { return &id }

func prevChapters() []model.Chapter {
	edited := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.Chapter{
		{ID: 1, Title: "One", Status: model.StatusDraft, WordCount: 1000, PreviousWordCount: 800, Priority: model.PriorityHigh, LastEdited: &edited},
		{ID: 2, Title: "Two", Status: model.StatusDraft, WordCount: 2000, PreviousWordCount: 2000, Priority: model.PriorityLow},
		{ID: 3, Title: "Three", Status: model.StatusNotStarted, WordCount: 0, Priority: model.PriorityLow},
	}
}

func rowFromChapter(ch model.Chapter) EditedChapter {
	id := ch.ID
	return EditedChapter{
		ID:        &id,
		Title:     ch.Title,
		Status:    ch.Status,
		WordCount: strconv.Itoa(ch.WordCount),
		Priority:  ch.Priority,
		Deadline:  ch.Deadline,
	}
}

func TestChaptersNoEdits(t *testing.T) {
	prev := prevChapters()
	rows := make([]EditedChapter, len(prev))
	for i, ch := range prev {
		rows[i] = rowFromChapter(ch)
	}

	res := Chapters(prev, rows, testNow)

	require.False(t, res.Changed)
	require.Empty(t, res.DoneTitles)
	require.Len(t, res.Chapters, 3)
	for i, ch := range res.Chapters {
		require.Equal(t, prev[i].ID, ch.ID)
		require.False(t, ch.Changed)
		require.Equal(t, prev[i].PreviousWordCount, ch.PreviousWordCount)
		require.Equal(t, prev[i].LastEdited, ch.LastEdited)
	}
}

func TestChaptersFieldEdit(t *testing.T) {
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
	}
	rows[1].WordCount = "2450"

	res := Chapters(prev, rows, testNow)

	require.True(t, res.Changed)
	require.Empty(t, res.DoneTitles)

	require.False(t, res.Chapters[0].Changed)
	require.True(t, res.Chapters[1].Changed)
	require.Equal(t, 2450, res.Chapters[1].WordCount)
	// The baseline shift happens at save time, not here.
	require.Equal(t, 2000, res.Chapters[1].PreviousWordCount)
}

func TestChaptersDoneTransition(t *testing.T) {
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
	}
	rows[0].Status = model.StatusDone

	res := Chapters(prev, rows, testNow)

	require.True(t, res.Changed)
	require.Equal(t, []string{"One"}, res.DoneTitles)
}

func TestChaptersResubmitDoneIsQuiet(t *testing.T) {
	prev := prevChapters()
	prev[0].Status = model.StatusDone
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
	}

	res := Chapters(prev, rows, testNow)

	require.False(t, res.Changed)
	require.Empty(t, res.DoneTitles)
}

func TestChaptersNewRow(t *testing.T) {
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
		{Title: "Four", Status: model.StatusDraft, WordCount: "500", Priority: model.PriorityMedium},
	}

	res := Chapters(prev, rows, testNow)

	require.True(t, res.Changed)
	require.Len(t, res.Chapters, 4)

	added := res.Chapters[3]
	require.Equal(t, 4, added.ID)
	require.Equal(t, 0, added.PreviousWordCount)
	require.True(t, added.Changed)
	require.NotNil(t, added.LastEdited)
	require.Equal(t, testNow, *added.LastEdited)
}

func TestChaptersNeverReusesDeletedIDs(t *testing.T) {
	// Stored ids {1,2,4}: 3 was deleted earlier. A new row gets 5.
	prev := prevChapters()
	prev[2].ID = 4

	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
		{Title: "Five", WordCount: "0"},
	}

	res := Chapters(prev, rows, testNow)
	require.Equal(t, 5, res.Chapters[3].ID)
}

func TestChaptersDeletionByAbsence(t *testing.T) {
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[2]),
	}

	res := Chapters(prev, rows, testNow)

	require.True(t, res.Changed)
	require.Len(t, res.Chapters, 2)
	for _, ch := range res.Chapters {
		require.NotEqual(t, 2, ch.ID)
	}
}

func TestChaptersDeleteAndInsertSamePass(t *testing.T) {
	// Stored {1,2,3}: drop 3 and add a new row in one pass. The new row
	// gets 4, allocated past the dropped id.
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		{Title: "Fresh", WordCount: "250"},
	}

	res := Chapters(prev, rows, testNow)

	require.True(t, res.Changed)
	require.Len(t, res.Chapters, 3)
	require.Equal(t, 1, res.Chapters[0].ID)
	require.Equal(t, 2, res.Chapters[1].ID)
	require.Equal(t, 4, res.Chapters[2].ID)
}

func TestChaptersUnknownIDTreatedAsNew(t *testing.T) {
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
		{ID: idPtr(99), Title: "Ghost", WordCount: "100"},
	}

	res := Chapters(prev, rows, testNow)

	require.Len(t, res.Chapters, 4)
	require.Equal(t, 4, res.Chapters[3].ID)
	require.True(t, res.Chapters[3].Changed)
}

func TestChaptersWordCountCoercion(t *testing.T) {
	prev := prevChapters()
	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
	}
	rows[0].WordCount = "about 900"
	rows[1].WordCount = "-40"

	res := Chapters(prev, rows, testNow)

	require.Equal(t, 0, res.Chapters[0].WordCount)
	require.Equal(t, 0, res.Chapters[1].WordCount)
	require.True(t, res.Changed)
}

func TestChaptersDeadlineEquality(t *testing.T) {
	prev := prevChapters()
	prev[0].Deadline = "2026-04-01"
	prev[0].DeadlineDate = model.ParseDeadline("2026-04-01")

	rows := []EditedChapter{
		rowFromChapter(prev[0]),
		rowFromChapter(prev[1]),
		rowFromChapter(prev[2]),
	}
	rows[0].Deadline = " 2026-04-01 "

	res := Chapters(prev, rows, testNow)
	require.False(t, res.Changed)

	// A genuinely different date is a change.
	rows[0].Deadline = "2026-04-02"
	res = Chapters(prev, rows, testNow)
	require.True(t, res.Changed)
}

func TestChaptersDefaultsApplied(t *testing.T) {
	res := Chapters(nil, []EditedChapter{{Title: "Bare"}}, testNow)

	require.Len(t, res.Chapters, 1)
	ch := res.Chapters[0]
	require.Equal(t, 1, ch.ID)
	require.Equal(t, model.StatusNotStarted, ch.Status)
	require.Equal(t, model.PriorityLow, ch.Priority)
	require.Equal(t, 0, ch.WordCount)
}
