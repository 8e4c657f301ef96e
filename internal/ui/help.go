package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"snapsearch/internal/search"
)

// helpPagerMsg contains the result of a pager command
type helpPagerMsg struct {
	err error
}

// keyMap is the short key summary rendered by bubbles/help
type keyMap struct {
	Search   key.Binding
	Category key.Binding
	Move     key.Binding
	Open     key.Binding
	Like     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "category")),
		Move:     key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↑↓→", "move")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Like:     key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space", "like")),
		Prev:     key.NewBinding(key.WithKeys("p", "[", "pgup"), key.WithHelp("p", "prev page")),
		Next:     key.NewBinding(key.WithKeys("n", "]", "pgdown"), key.WithHelp("n", "next page")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Move, k.Open, k.Like, k.Prev, k.Next, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Category, k.Prev, k.Next},
		{k.Move, k.Open, k.Like},
		{k.Theme, k.Help, k.Quit},
	}
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(keys, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(keys), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("Image Search Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	line("/", "Edit the search query, enter to search, esc to cancel")
	for i, c := range search.Categories {
		line(fmt.Sprintf("%d", i+1), fmt.Sprintf("Search for %q", c.Term))
	}
	line("r", "Run the current search again")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Pages"))
	help.WriteString("\n")
	line("n, ], PgDn", "Next page")
	line("p, [, PgUp", "Previous page")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Photos"))
	help.WriteString("\n")
	line("↑/↓, j/k", "Move between rows")
	line("←/→, h/l", "Move between columns")
	line("gg/G", "First/last photo")
	line("Enter", "Open photo details")
	line("Space, f", "Like or unlike")
	line("L", "List liked photos")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line("t", "Switch between light and dark mode")
	line("?", "Show this help")
	line("q", "Quit")

	return help.String()
}

// HelpOps runs full-screen content in the ov pager
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowInPager shows content using the ov pager
func (h *HelpOps) ShowInPager(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write the pager contents back to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
