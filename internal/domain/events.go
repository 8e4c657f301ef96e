package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventLikeToggled     EventType = "LikeToggled"
	EventThemeChanged    EventType = "ThemeChanged"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a search request is issued
type SearchStartedEvent struct {
	Seq   uint64
	Query string
	Page  int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when the latest search request succeeds
type SearchCompletedEvent struct {
	Seq        uint64
	Query      string
	Page       int
	Results    int
	TotalPages int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the latest search request fails
type SearchFailedEvent struct {
	Seq   uint64
	Query string
	Page  int
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// LikeToggledEvent is emitted when a photo is liked or unliked
type LikeToggledEvent struct {
	PhotoID string
	Liked   bool
}

func (e LikeToggledEvent) Type() EventType { return EventLikeToggled }

// ThemeChangedEvent is emitted when the user switches themes
type ThemeChangedEvent struct {
	Theme Theme
}

func (e ThemeChangedEvent) Type() EventType { return EventThemeChanged }

// ErrorEvent is emitted when an error occurs outside the search flow
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
