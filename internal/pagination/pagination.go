// Package pagination builds the paginated response envelope
// {count, next, previous, results} used by list endpoints.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// CoursePageSize is the default page size for course listings
	CoursePageSize = 10
	// CommentPageSize is the default page size for comment threads
	CommentPageSize = 5
	// MaxPageSize caps the page_size query override
	MaxPageSize = 50
)

// Page wraps one page of an ordered result set with navigation metadata
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Params holds a parsed page request
type Params struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the page
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParseParams reads page and page_size query parameters, falling back to
// page 1 and the given default size. Invalid values fall back silently,
// and page_size is capped at MaxPageSize.
func ParseParams(r *http.Request, defaultPageSize int) Params {
	params := Params{Page: 1, PageSize: defaultPageSize}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			params.Page = p
		}
	}

	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
			params.PageSize = min(s, MaxPageSize)
		}
	}

	return params
}

// NewPage builds the response envelope for one page. A request past the end
// of the result set yields an empty page with no next link, not an error.
// Results must never be nil so the envelope always serializes an array.
func NewPage(r *http.Request, params Params, total int, results any) Page {
	page := Page{
		Count:   total,
		Results: results,
	}

	if params.Offset()+params.PageSize < total {
		next := pageURL(r, params.Page+1)
		page.Next = &next
	}
	if params.Page > 1 {
		prev := pageURL(r, params.Page-1)
		page.Previous = &prev
	}

	return page
}

// pageURL rebuilds the request URL with the page parameter replaced
func pageURL(r *http.Request, page int) string {
	u := *r.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()

	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}

	return u.String()
}
