package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snapsearch/internal/domain"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// PreviewSize returns the cell box available for the image inside the popup
func PreviewSize(width, height int) (cols, rows int) {
	cols = width - 16
	if cols > 80 {
		cols = 80
	}
	rows = height - 18
	if rows > 24 {
		rows = 24
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// RenderDetail renders the photo detail overlay centered on the screen
func (pr *PopupRenderer) RenderDetail(state ViewState) string {
	photo := state.Detail
	if photo == nil {
		return ""
	}

	var b strings.Builder

	title := photo.Owner.Name
	if title == "" {
		title = photo.ID
	}
	if photo.Owner.Username != "" {
		title = fmt.Sprintf("%s (@%s)", title, photo.Owner.Username)
	}
	b.WriteString(pr.styles.PopupTitle.Render(title))
	b.WriteString("\n\n")

	switch {
	case state.PreviewContent != "":
		b.WriteString(state.PreviewContent)
	case state.PreviewLoading:
		b.WriteString(pr.styles.Dim.Render("Loading preview..."))
	case state.PreviewFailed:
		b.WriteString(pr.styles.Dim.Render("Preview unavailable"))
	}
	if state.PreviewContent != "" || state.PreviewLoading || state.PreviewFailed {
		b.WriteString("\n\n")
	}

	if text := photo.Caption(); text != photo.ID {
		b.WriteString(pr.styles.CardCaption.Render(text))
		b.WriteString("\n")
	}
	b.WriteString(pr.styles.Dim.Render(fmt.Sprintf("%d×%d · %d likes", photo.Width, photo.Height, photo.Likes)))
	b.WriteString("\n")
	if photo.Link != "" {
		b.WriteString(pr.styles.Dim.Render(photo.Link))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if state.DetailLiked {
		b.WriteString(pr.styles.Liked.Render(heartLiked + " Liked"))
	} else {
		b.WriteString(pr.styles.Unliked.Render(heartUnliked + " Like"))
	}
	b.WriteString(pr.styles.Dim.Render("   space: like · esc: close"))

	return pr.RenderPopupOverlay(b.String(), state.Height, state.Width, pr.styles.Popup)
}

// RenderPopupOverlay centers the styled popup on a blank screen of the given size
func (pr *PopupRenderer) RenderPopupOverlay(popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styled := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styled
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled)
}

// RenderLikedList renders the liked photos for the pager
func RenderLikedList(ids []string, known map[string]domain.Photo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Liked photos (%d)\n\n", len(ids)))
	if len(ids) == 0 {
		b.WriteString("Nothing liked yet. Press space on a photo to like it.\n")
		return b.String()
	}
	for _, id := range ids {
		photo, ok := known[id]
		if !ok {
			b.WriteString(fmt.Sprintf("%s  %s\n", heartLiked, id))
			continue
		}
		line := fmt.Sprintf("%s  %s  %s", heartLiked, id, photo.Caption())
		if photo.Owner.Name != "" {
			line += " · " + photo.Owner.Name
		}
		if photo.Link != "" {
			line += "  " + photo.Link
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
