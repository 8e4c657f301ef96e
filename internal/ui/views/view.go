package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snapsearch/internal/domain"
	"snapsearch/internal/search"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Theme  domain.Theme

	// Search
	Query      string
	InputMode  string // "search" while typing, "" otherwise
	Prompt     string
	TextInput  string // rendered text input
	Loading    bool
	Spinner    string
	ErrMsg     string
	Page       int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool

	// Grid
	Photos         []domain.Photo
	Liked          map[string]bool
	LikedCount     int
	SelectedIndex  int
	ViewportOffset int
	ViewportRows   int
	Columns        int

	// Detail overlay
	Detail         *domain.Photo
	DetailLiked    bool
	PreviewContent string
	PreviewLoading bool
	PreviewFailed  bool

	StatusMessage string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	theme       domain.Theme
	styles      *Styles
	gridRender  *GridRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(theme domain.Theme) *Renderer {
	r := &Renderer{}
	r.SetTheme(theme)
	return r
}

// SetTheme rebuilds the styles for theme
func (r *Renderer) SetTheme(theme domain.Theme) {
	styles := NewStyles(theme)
	r.theme = theme
	r.styles = styles
	r.gridRender = NewGridRenderer(styles)
	r.popupRender = NewPopupRenderer(styles)
}

// Theme returns the theme currently used for rendering
func (r *Renderer) Theme() domain.Theme {
	return r.theme
}

// HeaderLines is the number of lines above the grid
const HeaderLines = 6

// FooterLines is the number of lines below the grid
const FooterLines = 4

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Detail != nil {
		return r.popupRender.RenderDetail(state)
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")
	content.WriteString(r.renderSearchLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderCategories())
	content.WriteString("\n")

	// Error stays visible above whatever results are still shown
	if state.ErrMsg != "" {
		content.WriteString(r.styles.Error.Render(state.ErrMsg))
	}
	content.WriteString("\n")

	switch {
	case state.Loading:
		content.WriteString(r.styles.Dim.Render(strings.TrimSpace(state.Spinner + " Loading...")))
	case len(state.Photos) == 0:
		if state.ErrMsg == "" && state.Query != "" {
			content.WriteString(r.styles.Dim.Render(fmt.Sprintf("No photos found for %q.", state.Query)))
		}
	default:
		content.WriteString(r.gridRender.Render(state))
		if pagination := r.renderPagination(state); pagination != "" {
			content.WriteString("\n")
			content.WriteString(pagination)
		}
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom)
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		} else {
			content.WriteString("\n")
		}
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("Image Search")

	right := r.styles.Toggle.Render("t: " + ThemeLabel(state.Theme))
	if state.LikedCount > 0 {
		right = r.styles.Liked.Render(fmt.Sprintf("%s %d", heartLiked, state.LikedCount)) + "  " + right
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + right
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	if state.InputMode == "search" {
		return r.styles.Prompt.Render(state.Prompt) + state.TextInput
	}
	query := state.Query
	if query == "" {
		query = r.styles.Dim.Render("(none)")
	}
	return r.styles.Prompt.Render("Search: ") + query + r.styles.Dim.Render("   / to search")
}

func (r *Renderer) renderCategories() string {
	parts := make([]string, 0, len(search.Categories))
	for i, c := range search.Categories {
		parts = append(parts, r.styles.CategoryKey.Render(fmt.Sprintf("%d", i+1))+" "+r.styles.Category.Render(c.Label))
	}
	return strings.Join(parts, "   ")
}

// renderPagination shows Previous/Next only where a page exists in that direction
func (r *Renderer) renderPagination(state ViewState) string {
	if state.TotalPages <= 0 {
		return ""
	}
	parts := []string{}
	if state.HasPrev {
		parts = append(parts, r.styles.PageLink.Render("◀ Previous"))
	}
	parts = append(parts, r.styles.Pagination.Render(fmt.Sprintf("page %d of %d", state.Page, state.TotalPages)))
	if state.HasNext {
		parts = append(parts, r.styles.PageLink.Render("Next ▶"))
	}
	return strings.Join(parts, "   ")
}
