package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"snapsearch/internal/search"
	"snapsearch/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return nil, true

	case tea.KeyUp:
		return m.navigate(ctx, "up")

	case tea.KeyDown:
		return m.navigate(ctx, "down")

	case tea.KeyLeft:
		return m.navigate(ctx, "left")

	case tea.KeyRight:
		return m.navigate(ctx, "right")

	case tea.KeyHome:
		return m.navigate(ctx, "home")

	case tea.KeyEnd:
		return m.navigate(ctx, "end")

	case tea.KeyPgDown:
		return m.page(ctx, "next")

	case tea.KeyPgUp:
		return m.page(ctx, "prev")

	case tea.KeyEnter:
		// Open the card under the cursor
		if ctx.Loading() || ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{
			types.OpenDetailAction{Index: ctx.CurrentIndex()},
			types.ChangeModeAction{Mode: types.ModeDetail},
		}, true
	}

	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch key {
	case "j":
		return m.navigate(ctx, "down")

	case "k":
		return m.navigate(ctx, "up")

	case "h":
		return m.navigate(ctx, "left")

	case "l":
		return m.navigate(ctx, "right")

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to first card
			m.lastKeyWasG = false
			return m.navigate(ctx, "home")
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		return m.navigate(ctx, "end")

	case "/":
		// Search, starting from the current query
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.CurrentQuery()}}, true

	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(search.Categories) {
			return []types.Action{types.SelectCategoryAction{Term: search.Categories[i].Term}}, true
		}
		return nil, true

	case "n", "]":
		return m.page(ctx, "next")

	case "p", "[":
		return m.page(ctx, "prev")

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case " ", "f":
		if ctx.Loading() || ctx.CurrentPhotoID() == "" {
			return nil, true
		}
		return []types.Action{types.ToggleLikeAction{PhotoID: ctx.CurrentPhotoID()}}, true

	case "t":
		return []types.Action{types.ToggleThemeAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "L":
		return []types.Action{types.ShowLikedAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

// navigate moves the cursor unless the grid is hidden behind the loading indicator
func (m *NormalMode) navigate(ctx types.Context, direction string) ([]types.Action, bool) {
	if ctx.Loading() || ctx.TotalItems() == 0 {
		return nil, true
	}
	return []types.Action{types.NavigateAction{Direction: direction}}, true
}

// page requests an adjacent page only when its control would be visible
func (m *NormalMode) page(ctx types.Context, direction string) ([]types.Action, bool) {
	if ctx.Loading() {
		return nil, true
	}
	if direction == "next" && !ctx.HasNext() {
		return nil, true
	}
	if direction == "prev" && !ctx.HasPrev() {
		return nil, true
	}
	return []types.Action{types.PageAction{Direction: direction}}, true
}
