package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"snapsearch/internal/ui/input/types"
)

// DetailMode handles keys while the photo detail overlay is open
type DetailMode struct{}

func NewDetailMode() *DetailMode {
	return &DetailMode{}
}

func (m *DetailMode) Name() string {
	return "detail"
}

func (m *DetailMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.CloseDetailAction{}}
}

func (m *DetailMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q", "enter", "backspace":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case " ", "f":
		// The overlay may already be gone if its photo was replaced
		if !ctx.DetailOpen() {
			return nil, true
		}
		if id := ctx.CurrentPhotoID(); id != "" {
			return []types.Action{types.ToggleLikeAction{PhotoID: id}}, true
		}
		return nil, true

	case "t":
		return []types.Action{types.ToggleThemeAction{}}, true
	}

	// Everything else is swallowed so the grid underneath stays put
	return nil, true
}
