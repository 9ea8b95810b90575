// Package query translates list query strings into a drone filter predicate and a page window.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/localnerve/dronedb/internal/models"
)

// Pagination defaults and bounds
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// SortCreatedDesc is the only list order: newest first
const SortCreatedDesc = "created_at DESC"

// SearchFields are the record fields matched by a free text search
var SearchFields = []string{"name", "manufacturer", "description"}

// Params is the raw query string, one value per key
type Params map[string]string

// Filter is the predicate selecting drone records. Nil or empty members do not filter.
type Filter struct {
	Category *string
	Enabled  *bool
	Search   string
}

// Page is the pagination window
type Page struct {
	Number int
	Limit  int
}

// Skip is the number of records before the window. It saturates at
// math.MaxInt instead of overflowing.
func (p Page) Skip() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// Window returns the bounds of the page within n ordered records.
// A page past the end is the empty window [n, n).
func (p Page) Window(n int) (start, end int) {
	start = p.Skip()
	if start < 0 || start >= n {
		return n, n
	}
	end = n
	if p.Limit > 0 && p.Limit < n-start {
		end = start + p.Limit
	}
	return start, end
}

// TotalPages is ceil(total/limit)
func (p Page) TotalPages(total int64) int64 {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (total + limit - 1) / limit
}

// Build parses list query parameters into a filter and a page
func Build(params Params) (Filter, Page) {
	var f Filter

	if category := params["category"]; category != "" {
		f.Category = &category
	}

	switch params["enabled"] {
	case "true":
		enabled := true
		f.Enabled = &enabled
	case "false":
		enabled := false
		f.Enabled = &enabled
	}

	f.Search = params["search"]

	limit := parseLimit(params["limit"])
	return f, Page{
		Number: parsePage(params["page"], limit),
		Limit:  limit,
	}
}

// parsePage keeps the page below the point where its window start
// would overflow an int.
func parsePage(raw string, limit int) int {
	page, ok := leadingInt(raw)
	if !ok || page < 1 {
		return DefaultPage
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		return maxPage
	}
	return page
}

func parseLimit(raw string) int {
	limit, ok := leadingInt(raw)
	if !ok {
		return DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// leadingInt parses the leading decimal integer of raw and ignores whatever
// follows it, so "20.5" is 20 and "25abc" is 25. Out of range values saturate.
func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// digits only, so this is a range error
		n = math.MaxInt
	}
	if negative {
		n = -n
	}
	return n, true
}

// WithoutSearch returns the filter with the free text search removed
func (f Filter) WithoutSearch() Filter {
	f.Search = ""
	return f
}

// IsEmpty reports whether the filter selects every record
func (f Filter) IsEmpty() bool {
	return f.Category == nil && f.Enabled == nil && f.Search == ""
}

// Matches evaluates the predicate against a record
func (f Filter) Matches(d models.DroneRecord) bool {
	if f.Category != nil && d.Category != *f.Category {
		return false
	}
	if f.Enabled != nil && d.Enabled != *f.Enabled {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		for _, haystack := range []string{d.Name, d.Manufacturer, d.Description} {
			if strings.Contains(strings.ToLower(haystack), needle) {
				return true
			}
		}
		return false
	}
	return true
}
