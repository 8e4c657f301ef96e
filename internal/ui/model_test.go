package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapsearch/internal/config"
	"snapsearch/internal/domain"
	"snapsearch/internal/eventbus"
	"snapsearch/internal/search"
	"snapsearch/internal/ui/commands"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func (b *recordingBus) Close() {}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

type stubSearcher struct {
	page *domain.SearchPage
	err  error
}

func (s stubSearcher) Search(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := *s.page
	p.Query, p.Page = query, page
	return &p, nil
}

type stubPreviewer struct{}

func (stubPreviewer) Render(ctx context.Context, url string, cols, rows int) (string, error) {
	return "PREVIEW:" + url, nil
}

func testPhotos(n int) []domain.Photo {
	out := make([]domain.Photo, n)
	for i := range out {
		out[i] = domain.Photo{
			ID:      fmt.Sprintf("p%d", i),
			AltText: fmt.Sprintf("photo %d", i),
			Owner:   domain.Owner{Name: "Owner"},
			URLs:    domain.PhotoURLs{Regular: fmt.Sprintf("https://img/%d", i)},
		}
	}
	return out
}

func newTestModel(t *testing.T) (*Model, *recordingBus) {
	t.Helper()
	bus := &recordingBus{}
	searcher := stubSearcher{page: &domain.SearchPage{TotalPages: 5, Photos: testPhotos(24)}}
	cfg := config.DefaultConfig()
	m := NewModel(cfg, bus, search.NewDispatcher(searcher, 0), stubPreviewer{}, domain.ThemeLight)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return m, bus
}

// resolve answers the latest request with a page of n photos out of totalPages
func resolve(m *Model, n, totalPages int) {
	req := m.controller.Latest()
	m.Update(commands.SearchResultMsg{Result: search.Result{
		Request: req,
		Page:    &domain.SearchPage{Query: req.Query, Page: req.Page, TotalPages: totalPages, Photos: testPhotos(n)},
	}})
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestInitSearchesSeedQuery(t *testing.T) {
	m, bus := newTestModel(t)

	cmd := m.Init()
	require.NotNil(t, cmd)

	latest := m.controller.Latest()
	assert.Equal(t, "galaxy", latest.Query)
	assert.Equal(t, 1, latest.Page)
	assert.True(t, m.controller.Loading())
	assert.Len(t, bus.ofType(eventbus.EventSearchStarted), 1)
}

func TestFirstPageShowsNextOnly(t *testing.T) {
	m, bus := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)

	view := m.View()
	assert.Equal(t, 24, strings.Count(view, "♡"))
	assert.Contains(t, view, "Next ▶")
	assert.NotContains(t, view, "Previous")
	assert.Contains(t, view, "page 1 of 5")
	assert.Len(t, bus.ofType(eventbus.EventSearchCompleted), 1)
}

func TestLastPageHidesNext(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	resolve(m, 24, 2)

	press(m, "n")
	resolve(m, 10, 2)

	view := m.View()
	assert.Contains(t, view, "◀ Previous")
	assert.NotContains(t, view, "Next ▶")
	assert.Contains(t, view, "page 2 of 2")
}

func TestLoadingHidesGridAndPagination(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()

	view := m.View()
	assert.Contains(t, view, "Loading...")
	assert.NotContains(t, view, "♡")
	assert.NotContains(t, view, "Next ▶")
}

func TestPreviousFromPageThree(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)
	press(m, "n")
	resolve(m, 24, 5)
	press(m, "n")
	resolve(m, 24, 5)
	require.Equal(t, 3, m.controller.Page())

	press(m, "p")

	latest := m.controller.Latest()
	assert.Equal(t, 2, latest.Page)
	assert.Equal(t, "galaxy", latest.Query)
	assert.True(t, m.controller.Loading())
}

func TestFailureKeepsResultsAndShowsError(t *testing.T) {
	m, bus := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)
	press(m, "n")

	req := m.controller.Latest()
	m.Update(commands.SearchResultMsg{Result: search.Result{Request: req, Err: errors.New("HTTP 500")}})

	assert.False(t, m.controller.Loading())
	view := m.View()
	assert.Contains(t, view, "Error fetching images. Try again later.")
	assert.Equal(t, 24, strings.Count(view, "♡"))
	assert.Len(t, bus.ofType(eventbus.EventSearchFailed), 1)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	m, bus := newTestModel(t)
	m.Init()
	first := m.controller.Latest()

	press(m, "3") // cats
	second := m.controller.Latest()
	require.Equal(t, "cats", second.Query)

	m.Update(commands.SearchResultMsg{Result: search.Result{
		Request: first,
		Page:    &domain.SearchPage{Query: "galaxy", Page: 1, TotalPages: 9, Photos: testPhotos(24)},
	}})
	assert.True(t, m.controller.Loading())
	assert.Empty(t, m.controller.Results())
	assert.Empty(t, bus.ofType(eventbus.EventSearchCompleted))

	resolve(m, 5, 1)
	assert.False(t, m.controller.Loading())
	assert.Len(t, m.controller.Results(), 5)
	assert.Equal(t, "cats", m.controller.Query())
}

func TestSearchModeSubmitsQuery(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)

	press(m, "/")
	assert.Contains(t, m.View(), "galaxy")

	press(m, "ctrl+u", "mountains", "enter")

	latest := m.controller.Latest()
	assert.Equal(t, "mountains", latest.Query)
	assert.Equal(t, 1, latest.Page)
}

func TestBlankSearchIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)
	before := m.controller.Latest()

	press(m, "/", "ctrl+u", "   ", "enter")

	assert.Equal(t, before, m.controller.Latest())
	assert.False(t, m.controller.Loading())
	assert.Len(t, m.controller.Results(), 24)
}

func TestNavigationIgnoredWhileLoading(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)
	press(m, "right", "down")
	assert.Equal(t, 5, m.state.SelectedIndex)

	press(m, "r")
	press(m, "right", "space")
	assert.Equal(t, 5, m.state.SelectedIndex)
	assert.Zero(t, m.tracker.LikedCount())

	// an accepted response resets the cursor
	resolve(m, 24, 5)
	assert.Zero(t, m.state.SelectedIndex)
}

func TestLikeMirroredBetweenGridAndDetail(t *testing.T) {
	m, bus := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)

	press(m, "space")
	assert.True(t, m.tracker.IsLiked("p0"))
	assert.Equal(t, 1, strings.Count(m.View(), "♥ photo 0"))

	press(m, "enter")
	require.True(t, m.tracker.DetailOpen())
	assert.Contains(t, m.View(), "♥ Liked")

	press(m, "space")
	assert.False(t, m.tracker.IsLiked("p0"))
	assert.Contains(t, m.View(), "♡ Like")

	press(m, "esc")
	assert.False(t, m.tracker.DetailOpen())
	assert.Len(t, m.controller.Results(), 24)

	liked := bus.ofType(eventbus.EventLikeToggled)
	require.Len(t, liked, 2)
	assert.True(t, liked[0].(eventbus.LikeToggledEvent).Liked)
	assert.False(t, liked[1].(eventbus.LikeToggledEvent).Liked)
}

func TestDetailLoadsPreview(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	resolve(m, 24, 5)
	press(m, "right")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.state.PreviewLoading)
	assert.Contains(t, m.View(), "Loading preview...")

	m.Update(commands.PreviewResultMsg{PhotoID: "p1", Content: "PREVIEW:https://img/1"})
	assert.Contains(t, m.View(), "PREVIEW:https://img/1")

	// a late preview for another photo is ignored
	m.Update(commands.PreviewResultMsg{PhotoID: "p9", Content: "WRONG"})
	assert.NotContains(t, m.View(), "WRONG")
}

func TestToggleThemePublishesAndRelabels(t *testing.T) {
	m, bus := newTestModel(t)
	m.Init()
	assert.Contains(t, m.View(), "Dark Mode")

	press(m, "t")

	assert.Equal(t, domain.ThemeDark, m.state.Theme)
	assert.Contains(t, m.View(), "Light Mode")
	events := bus.ofType(eventbus.EventThemeChanged)
	require.Len(t, events, 1)
	assert.Equal(t, domain.ThemeDark, events[0].(eventbus.ThemeChangedEvent).Theme)
}

func TestErrorEventShowsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()

	_, cmd := m.Update(EventMsg{Event: eventbus.ErrorEvent{Message: "could not save theme"}})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "could not save theme")

	m.Update(clearStatusMsg{})
	assert.NotContains(t, m.View(), "could not save theme")
}

func TestSearchCommandRunsDispatcher(t *testing.T) {
	m, _ := newTestModel(t)
	req := m.controller.Start("galaxy")

	msg := m.cmdExecutor.ExecuteSearch(req)()

	res, ok := msg.(commands.SearchResultMsg)
	require.True(t, ok)
	require.NoError(t, res.Result.Err)
	assert.Len(t, res.Result.Page.Photos, 24)
	assert.Equal(t, req, res.Result.Request)
}

func TestQuitCancelsAndQuits(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, producesQuit(cmd))
}

// producesQuit reports whether cmd, or any command batched inside it, quits
func producesQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if producesQuit(c) {
				return true
			}
		}
	}
	return false
}
