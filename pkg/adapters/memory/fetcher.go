package memory

import (
	"context"
	"strings"
	"sync"
)

// Fetcher implements ports.Fetcher over a registered route table. Unmatched
// URLs return an empty record list, never an error, matching the recommended
// integration policy for the data-fetch port.
//
// A registered route may contain a single "*" wildcard that matches one or
// more path segments, e.g. "/api/tracks/*/students".
type Fetcher struct {
	mu     sync.RWMutex
	routes map[string][]map[string]any
}

// NewFetcher creates an empty Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{routes: make(map[string][]map[string]any)}
}

// Register adds (or replaces) the records served for a URL or URL pattern.
func (f *Fetcher) Register(url string, records []map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[url] = records
}

// Call returns the records registered for the URL. The method is ignored, as
// a canned backend has no side effects to distinguish.
func (f *Fetcher) Call(ctx context.Context, url, method string) ([]map[string]any, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if records, ok := f.routes[url]; ok {
		return cloneRecords(records), nil
	}

	for pattern, records := range f.routes {
		if matchPattern(pattern, url) {
			return cloneRecords(records), nil
		}
	}
	return []map[string]any{}, nil
}

func matchPattern(pattern, url string) bool {
	star := strings.Index(pattern, "*")
	if star < 0 {
		return false
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	return strings.HasPrefix(url, prefix) &&
		strings.HasSuffix(url, suffix) &&
		len(url) >= len(prefix)+len(suffix)
}

func cloneRecords(records []map[string]any) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, r := range records {
		c := make(map[string]any, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

// NewSampleFetcher returns a Fetcher preloaded with the demo data set used by
// the interactive commands: course tracks, grading metrics and students.
func NewSampleFetcher() *Fetcher {
	f := NewFetcher()
	f.Register("/api/teacher/tracks", []map[string]any{
		{"id": "game-design", "name": "Game Design"},
		{"id": "architecture", "name": "Architecture"},
	})
	f.Register("/api/metrics", []map[string]any{
		{"id": "creative", "name": "Creativity"},
		{"id": "result", "name": "Results"},
		{"id": "teamwork", "name": "Teamwork"},
		{"id": "initiative", "name": "Initiative"},
		{"id": "discipline", "name": "Discipline"},
		{"id": "communication", "name": "Communication"},
	})
	f.Register("/api/tracks/game-design/students", []map[string]any{
		{"id": "morgan", "full_name": "Morgan Reyes"},
		{"id": "casey", "full_name": "Casey Nguyen"},
	})
	f.Register("/api/tracks/architecture/students", []map[string]any{
		{"id": "rowan", "full_name": "Rowan Patel"},
	})
	f.Register("/api/tracks/*/students", []map[string]any{
		{"id": "morgan", "full_name": "Morgan Reyes"},
	})
	f.Register("/api/teacher/recent_students", []map[string]any{
		{"id": "morgan", "full_name": "Morgan Reyes"},
		{"id": "rowan", "full_name": "Rowan Patel"},
	})
	return f
}
