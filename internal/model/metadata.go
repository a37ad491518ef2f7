package model

// DefaultTargetWordCount is the manuscript goal used when no metadata
// record has been persisted yet.
const DefaultTargetWordCount = 80000

// Metadata is the singleton project record (always stored at id 1).
type Metadata struct {
	ProjectStartWordCount int  `json:"project_start_word_count"`
	TargetWordCount       int  `json:"target_word_count"`
	DarkMode              bool `json:"dark_mode"`
}

// DefaultMetadata returns the metadata defaults applied when the record
// is absent from the document.
func DefaultMetadata() Metadata {
	return Metadata{
		ProjectStartWordCount: 0,
		TargetWordCount:       DefaultTargetWordCount,
		DarkMode:              false,
	}
}
