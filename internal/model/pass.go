package model

// EditingPass is a single entry on the editing-pass board. Passes are
// grouped by FocusArea for display and may optionally reference one
// chapter; ChapterID is nil for unlinked passes.
type EditingPass struct {
	ID          int    `json:"id"`
	FocusArea   string `json:"focus_area"`
	Description string `json:"description"`
	ChapterID   *int   `json:"chapter_id,omitempty"`
	Completed   bool   `json:"completed"`
}
