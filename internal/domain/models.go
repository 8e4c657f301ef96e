package domain

// Photo represents a single search hit returned by the photo API
type Photo struct {
	ID          string
	Description string
	AltText     string // alt_description, used as the card caption
	Color       string // dominant color as #rrggbb, "" if unknown
	Width       int
	Height      int
	Likes       int // like count reported by the API, not the local liked state
	URLs        PhotoURLs
	Owner       Owner
	Link        string // public html page for the photo
}

// PhotoURLs holds the image renditions we use
type PhotoURLs struct {
	Small   string // thumbnail
	Regular string // full-resolution preview
}

// Owner is the photographer credited for a photo
type Owner struct {
	Name     string
	Username string
}

// Caption returns the text shown on a card for the photo
func (p Photo) Caption() string {
	if p.AltText != "" {
		return p.AltText
	}
	if p.Description != "" {
		return p.Description
	}
	return p.ID
}

// SearchPage is one page of search results
type SearchPage struct {
	Query      string
	Page       int
	Total      int // total matching photos across all pages
	TotalPages int
	Photos     []Photo
}

// Theme is the persisted color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts a stored value into a Theme, defaulting to light
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
