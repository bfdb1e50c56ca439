// Package view derives the displayed subset and ordering of feedback items
// from a held list plus the active filter parameters.
package view

import (
	"sort"
	"strings"

	"github.com/pulseboard/pulseboard/internal/models"
)

// Sentinel meaning "no constraint" for the exact-match filters.
const All = "all"

// Sort keys.
const (
	SortRelevance  = "relevance"
	SortPopularity = "popularity"
	SortRecent     = "recent"
	SortRating     = "rating"
)

// Params is the filter configuration. Zero values mean "no constraint":
// blank search text, and blank or "all" for the exact-match filters.
type Params struct {
	SearchText string
	Status     string
	Category   string
	Priority   string
	SortKey    string
}

// Normalize maps empty filter fields onto their explicit sentinels so
// downstream matching only has one representation to test.
func (p Params) Normalize() Params {
	p.SearchText = strings.TrimSpace(p.SearchText)
	if p.Status == "" {
		p.Status = All
	}
	if p.Category == "" {
		p.Category = All
	}
	if p.Priority == "" {
		p.Priority = All
	}
	if p.SortKey == "" {
		p.SortKey = SortRelevance
	}
	return p
}

// Apply filters and orders items per the params. The input list is never
// mutated; the result is a fresh slice. Ties on the active sort key keep
// their input-relative order (stable sort). An empty result is an empty
// slice, not nil, so callers can range and marshal it uniformly.
func Apply(items []models.FeedbackItem, p Params) []models.FeedbackItem {
	p = p.Normalize()

	out := make([]models.FeedbackItem, 0, len(items))
	for _, it := range items {
		if matches(it, p) {
			out = append(out, it)
		}
	}

	switch p.SortKey {
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].VotesCount > out[j].VotesCount
		})
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return ratingOf(out[i]) > ratingOf(out[j])
		})
	default:
		// relevance: preserve the caller's (typically backend-provided) order
	}
	return out
}

func matches(it models.FeedbackItem, p Params) bool {
	if p.SearchText != "" {
		q := strings.ToLower(p.SearchText)
		title := strings.ToLower(it.Title)
		desc := strings.ToLower(it.Description)
		if !strings.Contains(title, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if p.Status != All && it.Status != p.Status {
		return false
	}
	if p.Category != All && it.Category != p.Category {
		return false
	}
	if p.Priority != All && it.Priority != p.Priority {
		return false
	}
	return true
}

// ratingOf orders unrated items after every rated one.
func ratingOf(it models.FeedbackItem) float64 {
	if it.Rating == nil {
		return -1
	}
	return *it.Rating
}
