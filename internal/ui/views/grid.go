package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"snapsearch/internal/domain"
)

const (
	heartLiked   = "♥"
	heartUnliked = "♡"

	// CardHeight is the number of terminal lines one card row occupies
	CardHeight = 4
)

// GridRenderer draws the result cards
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// CardWidth returns the outer width of one card for the given screen width
func CardWidth(screenWidth, columns int) int {
	if columns < 1 {
		columns = 1
	}
	available := screenWidth - 4 // main container padding
	w := available / columns
	if w < 12 {
		w = 12
	}
	return w
}

// Render draws the visible rows of the grid
func (g *GridRenderer) Render(state ViewState) string {
	columns := state.Columns
	if columns < 1 {
		columns = 1
	}
	outer := CardWidth(state.Width, columns)

	totalRows := (len(state.Photos) + columns - 1) / columns
	first := state.ViewportOffset
	last := first + state.ViewportRows
	if state.ViewportRows <= 0 || last > totalRows {
		last = totalRows
	}

	rows := make([]string, 0, last-first+1)
	for row := first; row < last; row++ {
		cards := make([]string, 0, columns)
		for col := 0; col < columns; col++ {
			idx := row*columns + col
			if idx >= len(state.Photos) {
				break
			}
			photo := state.Photos[idx]
			cards = append(cards, g.renderCard(photo, state.Liked[photo.ID], idx == state.SelectedIndex, outer))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if last < totalRows {
		rows = append(rows, g.styles.Dim.Render("↓ (more below)"))
	}
	return strings.Join(rows, "\n")
}

func (g *GridRenderer) renderCard(photo domain.Photo, liked, selected bool, outer int) string {
	// border (2) and a one column gap between cards
	width := outer - 3
	textWidth := width - 2 // horizontal padding

	heart := g.styles.Unliked.Render(heartUnliked)
	if liked {
		heart = g.styles.Liked.Render(heartLiked)
	}

	caption := runewidth.Truncate(photo.Caption(), textWidth-2, "…")
	owner := runewidth.Truncate(photo.Owner.Name, textWidth, "…")

	body := heart + " " + g.styles.CardCaption.Render(caption) + "\n" + g.styles.CardOwner.Render(owner)

	style := g.styles.Card
	if selected {
		style = g.styles.CardSelected
	}
	return style.Width(width).MarginRight(1).Render(body)
}
