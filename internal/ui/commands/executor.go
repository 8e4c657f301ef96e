package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"snapsearch/internal/eventbus"
	"snapsearch/internal/search"
	"snapsearch/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext

	// cancelPreview aborts the preview fetch for the open detail view
	cancelPreview context.CancelFunc
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, bus eventbus.EventBus, dispatcher *search.Dispatcher, previewer Previewer) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:      state,
			Bus:        bus,
			Dispatcher: dispatcher,
			Previewer:  previewer,
			Ctx:        context.Background(),
		},
	}
}

// ExecuteSearch creates and executes a search command
func (e *Executor) ExecuteSearch(req search.Request) tea.Cmd {
	cmd := NewSearchCommand(e.ctx, req)
	return cmd.Execute()
}

// ExecutePreview creates and executes a preview command. A preview still
// loading for another photo is cancelled.
func (e *Executor) ExecutePreview(photoID, url string, cols, rows int) tea.Cmd {
	e.CancelPreview()

	runCtx, cancel := context.WithCancel(e.ctx.Ctx)
	cmd := NewPreviewCommand(e.ctx, runCtx, photoID, url, cols, rows).Execute()
	if cmd == nil {
		cancel()
		return nil
	}
	e.cancelPreview = cancel
	return func() tea.Msg {
		defer cancel()
		return cmd()
	}
}

// CancelPreview aborts the preview fetch in flight, if any
func (e *Executor) CancelPreview() {
	if e.cancelPreview != nil {
		e.cancelPreview()
		e.cancelPreview = nil
	}
}

// CancelSearch aborts the search in flight, if any
func (e *Executor) CancelSearch() {
	if e.ctx.Dispatcher != nil {
		e.ctx.Dispatcher.Cancel()
	}
}
