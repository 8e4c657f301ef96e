package input

import (
	"snapsearch/internal/search"
	"snapsearch/internal/selection"
	"snapsearch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State      *state.AppState
	Controller *search.Controller
	Tracker    *selection.Tracker
}

// CurrentIndex returns the card under the cursor
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of cards on the current page
func (c *ModelContext) TotalItems() int {
	return len(c.Controller.Results())
}

// Loading reports whether a search is in flight
func (c *ModelContext) Loading() bool {
	return c.Controller.Loading()
}

// CurrentQuery returns the query of the most recent search
func (c *ModelContext) CurrentQuery() string {
	return c.Controller.Query()
}

// CurrentPhotoID returns the photo in the detail view if it is open,
// otherwise the photo under the cursor
func (c *ModelContext) CurrentPhotoID() string {
	if photo, ok := c.Tracker.Selected(); ok {
		return photo.ID
	}
	results := c.Controller.Results()
	idx := c.State.SelectedIndex
	if idx < 0 || idx >= len(results) {
		return ""
	}
	return results[idx].ID
}

// DetailOpen reports whether the detail view is showing
func (c *ModelContext) DetailOpen() bool {
	return c.Tracker.DetailOpen()
}

// HasPrev reports whether a previous page exists
func (c *ModelContext) HasPrev() bool {
	return c.Controller.HasPrev()
}

// HasNext reports whether a next page exists
func (c *ModelContext) HasNext() bool {
	return c.Controller.HasNext()
}
