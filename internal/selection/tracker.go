package selection

import (
	"sort"

	"snapsearch/internal/domain"
)

// Tracker holds the photo shown in the detail view and the liked photo IDs.
// Likes live for the session only and are never pruned when a photo drops
// out of the current results.
type Tracker struct {
	selected *domain.Photo
	open     bool
	liked    map[string]bool
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		liked: make(map[string]bool),
	}
}

// Select shows photo in the detail view
func (t *Tracker) Select(photo domain.Photo) {
	p := photo
	t.selected = &p
	t.open = true
}

// Dismiss closes the detail view
func (t *Tracker) Dismiss() {
	t.selected = nil
	t.open = false
}

// Selected returns the photo in the detail view
func (t *Tracker) Selected() (domain.Photo, bool) {
	if t.selected == nil {
		return domain.Photo{}, false
	}
	return *t.selected, true
}

// DetailOpen reports whether the detail view is showing
func (t *Tracker) DetailOpen() bool {
	return t.open
}

// ToggleLike flips the liked state of photoID and returns the new state
func (t *Tracker) ToggleLike(photoID string) bool {
	if t.liked[photoID] {
		delete(t.liked, photoID)
		return false
	}
	t.liked[photoID] = true
	return true
}

// IsLiked reports whether photoID is liked
func (t *Tracker) IsLiked(photoID string) bool {
	return t.liked[photoID]
}

// LikedCount returns the number of liked photos
func (t *Tracker) LikedCount() int {
	return len(t.liked)
}

// LikedIDs returns the liked photo IDs in sorted order
func (t *Tracker) LikedIDs() []string {
	ids := make([]string, 0, len(t.liked))
	for id := range t.liked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
