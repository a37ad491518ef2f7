package model

// AppState is the full application state as loaded from the store.
// The store is the sole source of truth: handlers receive an AppState,
// produce the next one, and persist it through the store; there is no
// hidden process-wide mutable state.
type AppState struct {
	Chapters      []Chapter     `json:"chapters"`
	EditingPasses []EditingPass `json:"editing_passes"`
	Todos         []Todo        `json:"todos"`
	Metadata      Metadata      `json:"metadata"`
}

// ChapterByID returns the chapter with the given id, or nil.
func (s *AppState) ChapterByID(id int) *Chapter {
	for i := range s.Chapters {
		if s.Chapters[i].ID == id {
			return &s.Chapters[i]
		}
	}
	return nil
}
