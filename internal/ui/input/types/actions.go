package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Search actions
type SelectCategoryAction struct {
	Term string
}

func (a SelectCategoryAction) Type() string { return "select_category" }

type PageAction struct {
	Direction string // "next" or "prev"
}

func (a PageAction) Type() string { return "page" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

// Detail view actions
type OpenDetailAction struct {
	Index int // card index on the current page
}

func (a OpenDetailAction) Type() string { return "open_detail" }

type CloseDetailAction struct{}

func (a CloseDetailAction) Type() string { return "close_detail" }

type ToggleLikeAction struct {
	PhotoID string
}

func (a ToggleLikeAction) Type() string { return "toggle_like" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Other actions
type ToggleThemeAction struct{}

func (a ToggleThemeAction) Type() string { return "toggle_theme" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowLikedAction struct{}

func (a ShowLikedAction) Type() string { return "show_liked" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
