// Package search owns the query/page/result state machine and the
// dispatching of search requests to the photo API.
package search

import (
	"strings"

	"snapsearch/internal/domain"
)

const (
	// PageSize is the number of photos requested per page
	PageSize = 24

	// DefaultSeedQuery is searched on startup
	DefaultSeedQuery = "galaxy"

	// FetchErrorMessage is the only error text ever shown for a failed search
	FetchErrorMessage = "Error fetching images. Try again later."
)

// Category is a fixed search shortcut
type Category struct {
	Label string
	Term  string
}

// Categories are the shortcut searches offered next to the search box
var Categories = []Category{
	{Label: "Nature", Term: "nature"},
	{Label: "Birds", Term: "birds"},
	{Label: "Cats", Term: "cats"},
	{Label: "car", Term: "car"},
}

// Status is the controller's position in the Idle -> Loading -> Success/Failure cycle
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Request describes one search call. Seq increases with every request the
// controller issues; only the highest Seq may change state when it resolves.
type Request struct {
	Seq   uint64
	Query string
	Page  int
}

// Controller holds search state. It performs no I/O: every trigger returns
// the Request to run, and the caller reports the outcome through Complete
// or Fail. It is not safe for concurrent use; the UI goroutine owns it.
type Controller struct {
	query      string
	page       int
	totalPages int
	total      int
	results    []domain.Photo
	status     Status
	errMsg     string
	latest     Request
}

// NewController creates a controller on page 1 with no query
func NewController() *Controller {
	return &Controller{page: 1}
}

// Start seeds the query and requests the first page
func (c *Controller) Start(seed string) Request {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		seed = DefaultSeedQuery
	}
	c.query = seed
	c.page = 1
	return c.issue()
}

// SubmitSearch replaces the query and requests its first page.
// Empty or whitespace queries are ignored.
func (c *Controller) SubmitSearch(query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}

	// The query is stored before the page reset so a request can never
	// pair the new query with the old page.
	c.query = query
	c.page = 1
	return c.issue(), true
}

// SelectCategory searches for a shortcut term
func (c *Controller) SelectCategory(term string) (Request, bool) {
	return c.SubmitSearch(term)
}

// SetPage moves to page n of the current query, 1 <= n <= TotalPages
func (c *Controller) SetPage(n int) (Request, bool) {
	if n < 1 || n > c.totalPages || c.query == "" {
		return Request{}, false
	}
	c.page = n
	return c.issue(), true
}

// NextPage moves forward one page if there is one
func (c *Controller) NextPage() (Request, bool) {
	return c.SetPage(c.page + 1)
}

// PrevPage moves back one page if there is one
func (c *Controller) PrevPage() (Request, bool) {
	return c.SetPage(c.page - 1)
}

// Refresh re-requests the current query and page
func (c *Controller) Refresh() (Request, bool) {
	if c.query == "" {
		return Request{}, false
	}
	return c.issue(), true
}

// Complete applies a successful response. It returns false, leaving state
// untouched, when req has been superseded by a newer request.
func (c *Controller) Complete(req Request, page *domain.SearchPage) bool {
	if !c.IsCurrent(req) {
		return false
	}
	c.results = nil
	c.total = 0
	c.totalPages = 0
	if page != nil {
		c.results = append([]domain.Photo(nil), page.Photos...)
		c.total = page.Total
		c.totalPages = page.TotalPages
	}
	c.status = StatusSuccess
	c.errMsg = ""
	return true
}

// Fail records a failed request. Results and page count from the previous
// success stay as they were. Superseded requests are ignored.
func (c *Controller) Fail(req Request) bool {
	if !c.IsCurrent(req) {
		return false
	}
	c.status = StatusFailure
	c.errMsg = FetchErrorMessage
	return true
}

// IsCurrent reports whether req is the most recently issued request
func (c *Controller) IsCurrent(req Request) bool {
	return req.Seq != 0 && req.Seq == c.latest.Seq
}

func (c *Controller) issue() Request {
	c.latest = Request{
		Seq:   c.latest.Seq + 1,
		Query: c.query,
		Page:  c.page,
	}
	c.status = StatusLoading
	c.errMsg = ""
	return c.latest
}

// Query returns the current query text
func (c *Controller) Query() string { return c.query }

// Page returns the current 1-based page
func (c *Controller) Page() int { return c.page }

// TotalPages returns the page count from the last successful response
func (c *Controller) TotalPages() int { return c.totalPages }

// Total returns the total hit count from the last successful response
func (c *Controller) Total() int { return c.total }

// Results returns the photos of the last accepted response
func (c *Controller) Results() []domain.Photo { return c.results }

// Status returns the state machine position
func (c *Controller) Status() Status { return c.status }

// Loading reports whether the latest request is still in flight
func (c *Controller) Loading() bool { return c.status == StatusLoading }

// Err returns the user-facing error message, "" if none
func (c *Controller) Err() string { return c.errMsg }

// Latest returns the most recently issued request
func (c *Controller) Latest() Request { return c.latest }

// HasPrev reports whether a previous page exists
func (c *Controller) HasPrev() bool { return c.page > 1 }

// HasNext reports whether a next page exists
func (c *Controller) HasNext() bool { return c.page < c.totalPages }
