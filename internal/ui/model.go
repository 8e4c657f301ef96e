package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"snapsearch/internal/config"
	"snapsearch/internal/domain"
	"snapsearch/internal/eventbus"
	"snapsearch/internal/search"
	"snapsearch/internal/selection"
	"snapsearch/internal/ui/commands"
	"snapsearch/internal/ui/input"
	inputtypes "snapsearch/internal/ui/input/types"
	"snapsearch/internal/ui/logic"
	"snapsearch/internal/ui/state"
	"snapsearch/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // UI-only state

	controller *search.Controller
	tracker    *selection.Tracker
	seen       map[string]domain.Photo // every photo shown this session, for the liked list

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	spinning    bool
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	navigator    *logic.Navigator   // grid cursor and viewport
	renderer     *views.Renderer    // view renderer
	helpRenderer *HelpRenderer      // pager help content
	cmdExecutor  *commands.Executor // command executor
	inputHandler *input.Handler     // input handling
	helpOps      *HelpOps           // pager operations

	previewEnabled bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. previewer may be nil to disable image previews.
func NewModel(cfg *config.Config, bus eventbus.EventBus, dispatcher *search.Dispatcher, previewer commands.Previewer, theme domain.Theme) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState(cfg.Grid.Columns, theme)

	m := &Model{
		bus:            bus,
		config:         cfg,
		state:          appState,
		controller:     search.NewController(),
		tracker:        selection.NewTracker(),
		seen:           make(map[string]domain.Photo),
		help:           help.New(),
		keys:           newKeyMap(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		navigator:      logic.NewNavigator(),
		renderer:       views.NewRenderer(theme),
		helpRenderer:   NewHelpRenderer(),
		inputHandler:   input.New(),
		helpOps:        NewHelpOps(nil),
		previewEnabled: cfg.Preview.Enabled && previewer != nil,
	}

	m.cmdExecutor = commands.NewExecutor(appState, bus, dispatcher, previewer)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// syncNavigatorState updates the navigator with current model state
func (m *Model) syncNavigatorState() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportRows,
		m.state.Columns,
		len(m.controller.Results()),
	)
	m.state.SelectedIndex = m.navigator.GetSelectedIndex()
	m.state.ViewportOffset = m.navigator.GetViewportOffset()
}

// Init issues the seed search
func (m *Model) Init() tea.Cmd {
	req := m.controller.Start(m.config.SeedQuery)
	return m.issue(req, true)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{
			State:      m.state,
			Controller: m.controller,
			Tracker:    m.tracker,
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		// Cursor blink for the search box, then everything else
		inputCmd := m.inputHandler.Update(msg)
		model, cmd := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) buildViewState() views.ViewState {
	liked := make(map[string]bool, m.tracker.LikedCount())
	for _, id := range m.tracker.LikedIDs() {
		liked[id] = true
	}

	vs := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Theme:          m.state.Theme,
		Query:          m.controller.Query(),
		Loading:        m.controller.Loading(),
		Spinner:        m.spinner.View(),
		ErrMsg:         m.controller.Err(),
		Page:           m.controller.Page(),
		TotalPages:     m.controller.TotalPages(),
		Total:          m.controller.Total(),
		HasPrev:        m.controller.HasPrev(),
		HasNext:        m.controller.HasNext(),
		Photos:         m.controller.Results(),
		Liked:          liked,
		LikedCount:     m.tracker.LikedCount(),
		SelectedIndex:  m.state.SelectedIndex,
		ViewportOffset: m.state.ViewportOffset,
		ViewportRows:   m.state.ViewportRows,
		Columns:        m.state.Columns,
		PreviewContent: m.state.PreviewContent,
		PreviewLoading: m.state.PreviewLoading,
		PreviewFailed:  m.state.PreviewFailed,
		StatusMessage:  m.state.StatusMessage,
		HelpView:       m.help.View(m.keys),
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.InputMode = m.inputHandler.ModeName()
		vs.Prompt = m.inputHandler.Prompt()
		vs.TextInput = ti.View()
	}

	if photo, ok := m.tracker.Selected(); ok {
		vs.Detail = &photo
		vs.DetailLiked = m.tracker.IsLiked(photo.ID)
	}
	return vs
}

// updateViewportHeight fits as many card rows as the window allows
func (m *Model) updateViewportHeight() {
	available := m.height - views.HeaderLines - views.FooterLines
	rows := available / views.CardHeight
	if rows < 1 {
		rows = 1
	}
	m.state.ViewportRows = rows
	m.syncNavigatorState()
}

// issue dispatches req and keeps the spinner running while it is in flight
func (m *Model) issue(req search.Request, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	log.Printf("search #%d: %q page %d", req.Seq, req.Query, req.Page)
	cmds := []tea.Cmd{m.cmdExecutor.ExecuteSearch(req)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// runPager shows content in the ov pager, pausing rendering while it runs
func (m *Model) runPager(content string) tea.Cmd {
	return func() tea.Msg {
		if m.program == nil {
			return helpPagerMsg{err: fmt.Errorf("program not set")}
		}
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowInPager(content)

		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Printf("processAction: %T", action)
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.syncNavigatorState()
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(a.Direction)

	case inputtypes.SelectCategoryAction:
		return m.issue(m.controller.SelectCategory(a.Term))

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			m.state.SearchInput = ""
			return m.issue(m.controller.SubmitSearch(a.Text))
		}

	case inputtypes.PageAction:
		switch a.Direction {
		case "next":
			return m.issue(m.controller.NextPage())
		case "prev":
			return m.issue(m.controller.PrevPage())
		}

	case inputtypes.RefreshAction:
		return m.issue(m.controller.Refresh())

	case inputtypes.OpenDetailAction:
		idx := a.Index
		results := m.controller.Results()
		if idx < 0 || idx >= len(results) {
			return nil
		}
		photo := results[idx]
		m.tracker.Select(photo)
		m.state.ClearPreview()
		if m.previewEnabled {
			cols, rows := views.PreviewSize(m.width, m.height)
			return m.cmdExecutor.ExecutePreview(photo.ID, photo.URLs.Regular, cols, rows)
		}

	case inputtypes.CloseDetailAction:
		m.cmdExecutor.CancelPreview()
		m.tracker.Dismiss()
		m.state.ClearPreview()

	case inputtypes.ToggleLikeAction:
		if a.PhotoID == "" {
			return nil
		}
		liked := m.tracker.ToggleLike(a.PhotoID)
		m.publish(eventbus.LikeToggledEvent{PhotoID: a.PhotoID, Liked: liked})

	case inputtypes.ToggleThemeAction:
		m.state.Theme = m.state.Theme.Toggle()
		m.renderer.SetTheme(m.state.Theme)
		m.publish(eventbus.ThemeChangedEvent{Theme: m.state.Theme})

	case inputtypes.ToggleHelpAction:
		return m.runPager(m.helpRenderer.RenderHelpContentPlain())

	case inputtypes.ShowLikedAction:
		return m.runPager(views.RenderLikedList(m.tracker.LikedIDs(), m.seen))

	case inputtypes.UpdateTextAction:
		m.state.SearchInput = a.Text

	case inputtypes.CancelTextAction:
		m.state.SearchInput = ""

	case inputtypes.QuitAction:
		m.cmdExecutor.CancelSearch()
		m.cmdExecutor.CancelPreview()
		return tea.Quit
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.SearchResultMsg:
		m.handleSearchResult(msg.Result)
		return m, nil

	case commands.PreviewResultMsg:
		if msg.Err != nil {
			log.Printf("Preview for %s failed: %v", msg.PhotoID, msg.Err)
		}
		m.state.FinishPreview(msg.PhotoID, msg.Content, msg.Err != nil)
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is loading; issue restarts it
		if !m.controller.Loading() || m.inPagerMode {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			m.state.StatusMessage = e.Message
			return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.controller.Loading() && !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		return m, nil
	}
}

// handleSearchResult applies a finished request if it is still the latest one
func (m *Model) handleSearchResult(res search.Result) {
	req := res.Request

	if res.Err != nil {
		if !m.controller.Fail(req) {
			log.Printf("search #%d: discarding stale failure (latest #%d): %v", req.Seq, m.controller.Latest().Seq, res.Err)
			return
		}
		log.Printf("search #%d failed: %v", req.Seq, res.Err)
		m.publish(eventbus.SearchFailedEvent{Seq: req.Seq, Query: req.Query, Page: req.Page, Err: res.Err})
		return
	}

	if !m.controller.Complete(req, res.Page) {
		log.Printf("search #%d: discarding stale response (latest #%d)", req.Seq, m.controller.Latest().Seq)
		return
	}

	for _, p := range m.controller.Results() {
		m.seen[p.ID] = p
	}
	m.state.ResetCursor()
	m.syncNavigatorState()
	m.publish(eventbus.SearchCompletedEvent{
		Seq:        req.Seq,
		Query:      req.Query,
		Page:       req.Page,
		Results:    len(m.controller.Results()),
		TotalPages: m.controller.TotalPages(),
	})
}
