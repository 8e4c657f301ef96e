package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"snapsearch/internal/eventbus"
	"snapsearch/internal/search"
	"snapsearch/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Previewer renders a photo as terminal text
type Previewer interface {
	Render(ctx context.Context, url string, cols, rows int) (string, error)
}

// CommandContext provides context for command execution
type CommandContext struct {
	State      *state.AppState
	Bus        eventbus.EventBus
	Dispatcher *search.Dispatcher
	Previewer  Previewer
	Ctx        context.Context
}

// SearchResultMsg carries the outcome of a dispatched search back to the model
type SearchResultMsg struct {
	Result search.Result
}

// PreviewResultMsg carries a rendered preview back to the model
type PreviewResultMsg struct {
	PhotoID string
	Content string
	Err     error
}

// SearchCommand runs one search request
type SearchCommand struct {
	ctx *CommandContext
	req search.Request
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext, req search.Request) *SearchCommand {
	return &SearchCommand{ctx: ctx, req: req}
}

// Execute announces the request and returns the command that performs it
func (c *SearchCommand) Execute() tea.Cmd {
	if c.ctx.Dispatcher == nil {
		return nil
	}
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.SearchStartedEvent{
			Seq:   c.req.Seq,
			Query: c.req.Query,
			Page:  c.req.Page,
		})
	}
	d, parent, req := c.ctx.Dispatcher, c.ctx.Ctx, c.req
	return func() tea.Msg {
		return SearchResultMsg{Result: d.Do(parent, req)}
	}
}

// PreviewCommand renders a photo for the detail view
type PreviewCommand struct {
	ctx        *CommandContext
	runCtx     context.Context
	photoID    string
	url        string
	cols, rows int
}

// NewPreviewCommand creates a new preview command; runCtx bounds the fetch
func NewPreviewCommand(ctx *CommandContext, runCtx context.Context, photoID, url string, cols, rows int) *PreviewCommand {
	return &PreviewCommand{ctx: ctx, runCtx: runCtx, photoID: photoID, url: url, cols: cols, rows: rows}
}

// Execute marks the preview as loading and returns the render command
func (c *PreviewCommand) Execute() tea.Cmd {
	if c.ctx.Previewer == nil || c.url == "" {
		return nil
	}
	c.ctx.State.StartPreview(c.photoID)
	p, parent := c.ctx.Previewer, c.runCtx
	if parent == nil {
		parent = c.ctx.Ctx
	}
	photoID, url, cols, rows := c.photoID, c.url, c.cols, c.rows
	return func() tea.Msg {
		content, err := p.Render(parent, url, cols, rows)
		return PreviewResultMsg{PhotoID: photoID, Content: content, Err: err}
	}
}
