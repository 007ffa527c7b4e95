// Package listing turns a raw set of complaint records into one page of
// display-ready views: normalize, filter by category and free-text query,
// sort, clamp the page, slice. The pipeline is pure; filter state arrives as
// an explicit Request instead of ambient UI state.
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/sorplus/public-gateway/internal/models"
	"github.com/sorplus/public-gateway/internal/normalize"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortNew      SortKey = "new"
	SortViews    SortKey = "views"
	SortComments SortKey = "comments"
)

// AllCategories is the category filter value that disables filtering.
const AllCategories = "Tümü"

// DefaultPageSize matches the public listing grid.
const DefaultPageSize = 9

// Request carries the complete filter context for one listing call.
type Request struct {
	Query    string
	Category string
	Sort     SortKey
	Page     int
	PageSize int
}

// Result is one page of the filtered listing.
type Result struct {
	Items      []models.ComplaintView `json:"items"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"totalPages"`
	Page       int                    `json:"page"`
}

// List runs the full pipeline. Query matching happens on the masked display
// text, never on raw records; the filtering layer sees exactly what the
// reader sees. Out-of-range pages clamp to the nearest bound. An unknown
// sort key falls back to newest-first.
func List(records []models.Complaint, req Request, now time.Time) Result {
	views := make([]models.ComplaintView, 0, len(records))
	for _, record := range records {
		views = append(views, normalize.Complaint(record, now))
	}

	views = filter(views, req.Query, req.Category)
	sortViews(views, req.Sort)

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(views)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := clamp(req.Page, 1, totalPages)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Items:      views[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

func filter(views []models.ComplaintView, query, category string) []models.ComplaintView {
	category = strings.TrimSpace(category)
	needle := strings.ToLower(strings.TrimSpace(query))

	filtered := views[:0]
	for _, v := range views {
		if category != "" && category != AllCategories && v.Category != category {
			continue
		}
		if needle != "" && !matchesQuery(v, needle) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

func matchesQuery(v models.ComplaintView, needle string) bool {
	return strings.Contains(strings.ToLower(v.Title), needle) ||
		strings.Contains(strings.ToLower(v.Excerpt), needle) ||
		strings.Contains(strings.ToLower(v.Category), needle)
}

// sortViews orders descending by the requested key. SliceStable keeps the
// input order for equal keys.
func sortViews(views []models.ComplaintView, key SortKey) {
	switch key {
	case SortViews:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Views > views[j].Views
		})
	case SortComments:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Comments > views[j].Comments
		})
	default:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		})
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
