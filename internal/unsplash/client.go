// Package unsplash is a minimal client for the Unsplash photo search endpoint.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"snapsearch/internal/domain"
)

// DefaultBaseURL is the Unsplash photo search endpoint
const DefaultBaseURL = "https://api.unsplash.com/search/photos"

// ErrMissingAccessKey is returned when no API access key is configured
var ErrMissingAccessKey = errors.New("unsplash access key is not set")

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unsplash API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("unsplash API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Client queries the Unsplash search API
type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for baseURL ("" means DefaultBaseURL)
func NewClient(baseURL, accessKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
		accessKey:  accessKey,
		userAgent:  "snapsearch",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of photos matching query
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error) {
	if c.accessKey == "" {
		return nil, ErrMissingAccessKey
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{
		"query":     {query},
		"page":      {strconv.Itoa(page)},
		"per_page":  {strconv.Itoa(perPage)},
		"client_id": {c.accessKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing unsplash response: %w", err)
	}
	if sr.Results == nil {
		return nil, fmt.Errorf("parsing unsplash response: missing results")
	}

	result := &domain.SearchPage{
		Query:      query,
		Page:       page,
		Total:      sr.Total,
		TotalPages: sr.TotalPages,
		Photos:     make([]domain.Photo, 0, len(sr.Results)),
	}
	for _, p := range sr.Results {
		result.Photos = append(result.Photos, p.toDomain())
	}
	return result, nil
}

// Unsplash API JSON structures.
type searchResponse struct {
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	Results    []photoJSON `json:"results"`
}

type photoJSON struct {
	ID             string  `json:"id"`
	Description    *string `json:"description"`
	AltDescription *string `json:"alt_description"`
	Color          string  `json:"color"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Likes          int     `json:"likes"`
	URLs           struct {
		Small   string `json:"small"`
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
	Links struct {
		HTML string `json:"html"`
	} `json:"links"`
}

func (p photoJSON) toDomain() domain.Photo {
	return domain.Photo{
		ID:          p.ID,
		Description: deref(p.Description),
		AltText:     deref(p.AltDescription),
		Color:       p.Color,
		Width:       p.Width,
		Height:      p.Height,
		Likes:       p.Likes,
		URLs: domain.PhotoURLs{
			Small:   p.URLs.Small,
			Regular: p.URLs.Regular,
		},
		Owner: domain.Owner{
			Name:     p.User.Name,
			Username: p.User.Username,
		},
		Link: p.Links.HTML,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
