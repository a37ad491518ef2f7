package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/reconcile"
	"github.com/nhle/novel-forge/internal/ui/chapterform"
)

// notifyTimeout bounds a chapter-done webhook delivery.
const notifyTimeout = 10 * time.Second

// editedRowsFromState projects the authoritative chapter collection
// into edited-row form, so a single-row edit can be reconciled as a
// full-table snapshot.
func editedRowsFromState(chapters []model.Chapter) []reconcile.EditedChapter {
	rows := make([]reconcile.EditedChapter, len(chapters))
	for i, ch := range chapters {
		id := ch.ID
		rows[i] = reconcile.EditedChapter{
			ID:        &id,
			Title:     ch.Title,
			Status:    ch.Status,
			WordCount: strconv.Itoa(ch.WordCount),
			Priority:  ch.Priority,
			Deadline:  ch.Deadline,
		}
	}
	return rows
}

// commitChapterEdit folds one submitted form row into the full edited
// snapshot, reconciles it against the stored collection, and persists
// the result.
func (m *Model) commitChapterEdit(msg chapterform.SubmitMsg) tea.Cmd {
	rows := editedRowsFromState(m.state.Chapters)

	submitted := reconcile.EditedChapter{
		ID:        msg.ID,
		Title:     msg.Title,
		Status:    msg.Status,
		WordCount: msg.WordCount,
		Priority:  msg.Priority,
		Deadline:  msg.Deadline,
	}

	replaced := false
	if msg.ID != nil {
		for i := range rows {
			if rows[i].ID != nil && *rows[i].ID == *msg.ID {
				rows[i] = submitted
				replaced = true
				break
			}
		}
	}
	if !replaced {
		rows = append(rows, submitted)
	}

	return m.commitChapterRows(rows, "Chapter saved")
}

// deleteChapter drops one chapter from the edited snapshot; the store's
// delete-by-absence rule removes it from the document.
func (m *Model) deleteChapter(id int) tea.Cmd {
	rows := editedRowsFromState(m.state.Chapters)
	kept := rows[:0]
	for _, row := range rows {
		if row.ID != nil && *row.ID == id {
			continue
		}
		kept = append(kept, row)
	}

	return m.commitChapterRows(kept, "Chapter deleted")
}

// commitChapterRows reconciles the edited rows and saves when anything
// actually changed. Chapters that just reached Done get a celebratory
// notice and, when configured, a webhook delivery.
func (m *Model) commitChapterRows(rows []reconcile.EditedChapter, notice string) tea.Cmd {
	res := reconcile.Chapters(m.state.Chapters, rows, time.Now())
	if !res.Changed {
		return nil
	}

	m.state.Chapters = res.Chapters

	if len(res.DoneTitles) > 0 {
		notice = fmt.Sprintf("🎉 Congratulations on finishing %q!", res.DoneTitles[0])
	}

	cmds := []tea.Cmd{m.saveAndReload(m.state, notice)}
	if m.cfg.Notify.Enabled && m.notifier.Enabled() {
		for _, title := range res.DoneTitles {
			cmds = append(cmds, m.notifyChapterDone(title))
		}
	}
	return tea.Batch(cmds...)
}

// notifyChapterDone delivers the webhook in the background. Failures
// are logged; the save has already succeeded.
func (m *Model) notifyChapterDone(title string) tea.Cmd {
	n := m.notifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.ChapterDone(ctx, title); err != nil {
			log.Warn("chapter-done notification failed", "chapter", title, "err", err)
		}
		return nil
	}
}
