package state

import (
	"snapsearch/internal/domain"
)

// AppState contains the UI-only state. Search and like state live in the
// search controller and selection tracker.
type AppState struct {
	// Grid state
	SelectedIndex  int // card under the cursor
	ViewportOffset int // first visible grid row
	ViewportRows   int // grid rows that fit on screen
	Columns        int

	// Detail preview
	PreviewPhotoID string
	PreviewContent string
	PreviewLoading bool
	PreviewFailed  bool

	// UI state
	Theme         domain.Theme
	SearchInput   string // text being typed in search mode
	StatusMessage string // transient status bar message
}

// NewAppState creates a new application state
func NewAppState(columns int, theme domain.Theme) *AppState {
	if columns < 1 {
		columns = 1
	}
	return &AppState{
		Columns:      columns,
		ViewportRows: 3, // Default
		Theme:        theme,
	}
}

// ResetCursor moves the cursor back to the first card
func (s *AppState) ResetCursor() {
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// StartPreview marks the preview for photoID as loading
func (s *AppState) StartPreview(photoID string) {
	s.PreviewPhotoID = photoID
	s.PreviewContent = ""
	s.PreviewLoading = true
	s.PreviewFailed = false
}

// FinishPreview stores a rendered preview. Results for a photo that is no
// longer shown are ignored.
func (s *AppState) FinishPreview(photoID, content string, failed bool) bool {
	if photoID != s.PreviewPhotoID {
		return false
	}
	s.PreviewContent = content
	s.PreviewLoading = false
	s.PreviewFailed = failed
	return true
}

// ClearPreview drops the preview state
func (s *AppState) ClearPreview() {
	s.PreviewPhotoID = ""
	s.PreviewContent = ""
	s.PreviewLoading = false
	s.PreviewFailed = false
}
