package clause

import (
	"sort"
	"strings"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

const (
	maxRelevance     = 100
	snippetMaxLength = 150
	snippetLeadIn    = 50
)

// Filters narrows the clause set before relevance scoring.
type Filters struct {
	Categories    []string
	Jurisdictions []string
	Complexities  []types.Complexity
	Languages     []string
	MinUsage      int
	MinRating     float64
}

// SearchResult is one scored search hit.
type SearchResult struct {
	Clause    *model.Clause
	Relevance int
	Snippet   string
}

// Search filters, scores and orders clause records. Clauses scoring 0
// are excluded; ties keep catalog insertion order.
func Search(query string, clauses []*model.Clause, filters Filters) []SearchResult {
	var results []SearchResult
	for _, cl := range clauses {
		if !filters.match(cl) {
			continue
		}
		score := Relevance(query, cl)
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{
			Clause:    cl,
			Relevance: score,
			Snippet:   Snippet(query, cl.Content, snippetMaxLength),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}

// Relevance scores a clause against a query on a 0..100 scale:
// whole-query substring matches in the name score highest, then
// per-token matches in name and content, then category, legal notes
// and applicable-to matches, with a small bonus for highly rated
// clauses. The raw total is capped at 100.
func Relevance(query string, cl *model.Clause) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	name := strings.ToLower(cl.Name)
	content := strings.ToLower(cl.Content)

	score := 0
	if strings.Contains(name, q) {
		score += 50
	}

	for _, token := range strings.Fields(q) {
		if strings.Contains(content, token) {
			score += 10
		}
		if strings.Contains(name, token) {
			score += 20
		}
	}

	if strings.Contains(strings.ToLower(cl.Category), q) {
		score += 30
	}
	if cl.LegalNotes != "" && strings.Contains(strings.ToLower(cl.LegalNotes), q) {
		score += 15
	}
	if len(cl.ApplicableTo) > 0 &&
		strings.Contains(strings.ToLower(strings.Join(cl.ApplicableTo, " ")), q) {
		score += 20
	}

	// Rating bonus applies only to clauses that matched at all, so a
	// well-rated but unrelated clause still scores 0.
	if score > 0 {
		switch {
		case cl.Rating >= 4.5:
			score += 5
		case cl.Rating >= 4.0:
			score += 3
		}
	}

	if score > maxRelevance {
		score = maxRelevance
	}
	return score
}

// Snippet extracts a window of content around the earliest query token
// match. When no token matches, the content is truncated from the
// start. Partial words at the window edges are trimmed to the nearest
// internal space boundary.
func Snippet(query, content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = snippetMaxLength
	}
	if len(content) <= maxLength {
		return content
	}

	lowered := strings.ToLower(content)
	earliest := -1
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if pos := strings.Index(lowered, token); pos >= 0 {
			if earliest < 0 || pos < earliest {
				earliest = pos
			}
		}
	}

	if earliest < 0 {
		return trimTail(content[:maxLength], true)
	}

	start := earliest - snippetLeadIn
	if start < 0 {
		start = 0
	}
	end := start + maxLength
	if end > len(content) {
		end = len(content)
		start = end - maxLength
		if start < 0 {
			start = 0
		}
	}

	window := content[start:end]
	if start > 0 {
		if idx := strings.IndexByte(window, ' '); idx >= 0 {
			window = window[idx+1:]
		}
	}
	if end < len(content) {
		window = trimTail(window, true)
	}
	return window
}

func trimTail(s string, atWordBoundary bool) string {
	if !atWordBoundary {
		return s
	}
	if idx := strings.LastIndexByte(s, ' '); idx > 0 {
		return s[:idx]
	}
	return s
}

func (f Filters) match(cl *model.Clause) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, cl.Category) {
		return false
	}
	if len(f.Jurisdictions) > 0 && !intersects(f.Jurisdictions, cl.Jurisdictions) {
		return false
	}
	if len(f.Complexities) > 0 {
		found := false
		for _, c := range f.Complexities {
			if c == cl.Complexity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Languages) > 0 && !containsString(f.Languages, cl.Language) {
		return false
	}
	if cl.UsageCount < f.MinUsage {
		return false
	}
	if cl.Rating < f.MinRating {
		return false
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if containsString(b, x) {
			return true
		}
	}
	return false
}
