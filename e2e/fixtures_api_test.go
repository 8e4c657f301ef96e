//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// failingQuery makes the stub API answer with a server error
const failingQuery = "broken"

// apiCall is one search request received by the stub API
type apiCall struct {
	Query    string
	Page     int
	PerPage  int
	ClientID string
}

// StubAPI serves canned Unsplash search responses with five pages per query
type StubAPI struct {
	*httptest.Server

	mu    sync.Mutex
	calls []apiCall
}

// NewStubAPI starts a stub search endpoint that is closed when the test ends
func NewStubAPI(t *testing.T) *StubAPI {
	t.Helper()
	api := &StubAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

func (a *StubAPI) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	call := apiCall{Query: q.Get("query"), Page: page, PerPage: perPage, ClientID: q.Get("client_id")}

	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()

	if call.Query == failingQuery {
		http.Error(w, `{"errors":["boom"]}`, http.StatusInternalServerError)
		return
	}

	results := make([]map[string]any, 0, perPage)
	for i := 1; i <= perPage; i++ {
		n := (page-1)*perPage + i
		results = append(results, map[string]any{
			"id":              fmt.Sprintf("%s-%d", call.Query, n),
			"alt_description": fmt.Sprintf("%s photo %d", call.Query, n),
			"width":           4000,
			"height":          3000,
			"likes":           n,
			"urls":            map[string]string{"small": "http://127.0.0.1/small.jpg", "regular": "http://127.0.0.1/regular.jpg"},
			"user":            map[string]string{"name": "Stub Owner", "username": "stub"},
			"links":           map[string]string{"html": "https://unsplash.com/photos/" + call.Query},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total":       perPage * 5,
		"total_pages": 5,
		"results":     results,
	})
}

// Calls returns a copy of the requests received so far
func (a *StubAPI) Calls() []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiCall(nil), a.calls...)
}

// Received reports whether a request for query and page has arrived
func (a *StubAPI) Received(query string, page int) bool {
	for _, c := range a.Calls() {
		if c.Query == query && c.Page == page {
			return true
		}
	}
	return false
}
