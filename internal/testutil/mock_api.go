// Package testutil provides testing utilities for the scraper.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockAPI is a configurable paginated API server for testing. It
// understands all three pagination conventions (offset/limit,
// cursor/limit, page/pageSize) and serves a synthetic dataset of
// TotalCount items shaped {"id": N, "name": "item-N"}.
type MockAPI struct {
	server *httptest.Server
	mu     sync.RWMutex

	// TotalCount is the size of the synthetic dataset.
	TotalCount int

	// DataField and CountField name the response fields.
	DataField  string
	CountField string

	// Tracking
	RequestCount int

	failStatus   map[int]int
	dropDataPage map[int]bool
	dropCount    bool
}

// NewMockAPI creates a mock API serving totalCount items with the
// default field names data/totalCount.
func NewMockAPI(totalCount int) *MockAPI {
	mock := &MockAPI{
		TotalCount:   totalCount,
		DataField:    "data",
		CountField:   "totalCount",
		failStatus:   make(map[int]int),
		dropDataPage: make(map[int]bool),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// FailPage makes the given page respond with the given HTTP status.
func (m *MockAPI) FailPage(page, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStatus[page] = statusCode
}

// DropDataOnPage omits the data field from the given page's response.
func (m *MockAPI) DropDataOnPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropDataPage[page] = true
}

// DropTotalCount omits the total-count field from every response.
func (m *MockAPI) DropTotalCount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropCount = true
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// pageFromQuery derives (page, pageSize) from whichever pagination
// convention the request uses.
func pageFromQuery(r *http.Request) (int, int) {
	q := r.URL.Query()

	if p := q.Get("page"); p != "" {
		page, _ := strconv.Atoi(p)
		size, _ := strconv.Atoi(q.Get("pageSize"))
		return page, size
	}

	if c := q.Get("cursor"); c != "" {
		page, _ := strconv.Atoi(c)
		size, _ := strconv.Atoi(q.Get("limit"))
		return page, size
	}

	offset, _ := strconv.Atoi(q.Get("offset"))
	size, _ := strconv.Atoi(q.Get("limit"))
	if size <= 0 {
		return 1, 0
	}
	return offset/size + 1, size
}

func (m *MockAPI) handle(w http.ResponseWriter, r *http.Request) {
	page, size := pageFromQuery(r)

	m.mu.Lock()
	m.RequestCount++
	failStatus := m.failStatus[page]
	dropData := m.dropDataPage[page]
	dropCount := m.dropCount
	total := m.TotalCount
	dataField := m.DataField
	countField := m.CountField
	m.mu.Unlock()

	if failStatus != 0 {
		w.WriteHeader(failStatus)
		return
	}

	doc := map[string]any{}
	if !dropCount {
		doc[countField] = total
	}
	if !dropData {
		doc[dataField] = itemsForPage(page, size, total)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(doc)
}

// itemsForPage returns the slice of the synthetic dataset for one page.
func itemsForPage(page, size, total int) []map[string]any {
	items := []map[string]any{}
	if page < 1 || size <= 0 {
		return items
	}

	start := (page - 1) * size
	for i := start; i < start+size && i < total; i++ {
		items = append(items, map[string]any{
			"id":   i + 1,
			"name": "item-" + strconv.Itoa(i+1),
		})
	}
	return items
}
