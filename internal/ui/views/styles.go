package views

import (
	"github.com/charmbracelet/lipgloss"

	"snapsearch/internal/domain"
)

// palette holds the colors that differ between themes
type palette struct {
	accent    lipgloss.Color
	text      lipgloss.Color
	muted     lipgloss.Color
	border    lipgloss.Color
	selected  lipgloss.Color
	liked     lipgloss.Color
	errorText lipgloss.Color
}

var (
	lightPalette = palette{
		accent:    lipgloss.Color("#5a4fcf"),
		text:      lipgloss.Color("#1f2328"),
		muted:     lipgloss.Color("#6e7781"),
		border:    lipgloss.Color("#d0d7de"),
		selected:  lipgloss.Color("#5a4fcf"),
		liked:     lipgloss.Color("#d1242f"),
		errorText: lipgloss.Color("#cf222e"),
	}
	darkPalette = palette{
		accent:    lipgloss.Color("#a5a0ff"),
		text:      lipgloss.Color("#e6edf3"),
		muted:     lipgloss.Color("#8b949e"),
		border:    lipgloss.Color("#30363d"),
		selected:  lipgloss.Color("#a5a0ff"),
		liked:     lipgloss.Color("#ff7b72"),
		errorText: lipgloss.Color("#ff7b72"),
	}
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Toggle       lipgloss.Style
	Prompt       lipgloss.Style
	Category     lipgloss.Style
	CategoryKey  lipgloss.Style
	Dim          lipgloss.Style
	Error        lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardCaption  lipgloss.Style
	CardOwner    lipgloss.Style
	Liked        lipgloss.Style
	Unliked      lipgloss.Style
	Pagination   lipgloss.Style
	PageLink     lipgloss.Style
	Popup        lipgloss.Style
	PopupTitle   lipgloss.Style
}

// NewStyles creates the style set for theme
func NewStyles(theme domain.Theme) *Styles {
	p := lightPalette
	if theme == domain.ThemeDark {
		p = darkPalette
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),
		Toggle:      lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Prompt:      lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Category:    lipgloss.NewStyle().Foreground(p.text),
		CategoryKey: lipgloss.NewStyle().Foreground(p.accent),
		Dim:         lipgloss.NewStyle().Foreground(p.muted),
		Error:       lipgloss.NewStyle().Foreground(p.errorText).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(p.muted),
		Help:        lipgloss.NewStyle().Foreground(p.muted),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Card:         card,
		CardSelected: card.BorderForeground(p.selected).BorderStyle(lipgloss.ThickBorder()),
		CardCaption:  lipgloss.NewStyle().Foreground(p.text),
		CardOwner:    lipgloss.NewStyle().Foreground(p.muted),
		Liked:        lipgloss.NewStyle().Foreground(p.liked),
		Unliked:      lipgloss.NewStyle().Foreground(p.muted),
		Pagination:   lipgloss.NewStyle().Foreground(p.text),
		PageLink:     lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		PopupTitle: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
	}
}

// ThemeLabel names the theme the toggle switches to
func ThemeLabel(theme domain.Theme) string {
	if theme == domain.ThemeDark {
		return "Light Mode"
	}
	return "Dark Mode"
}
