// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination carries page-based navigation for the history and
// library listings.
//
// The history pages in SQL (LIMIT/OFFSET); the library pages in memory over
// rows flattened from the content API. Both share [Params] and render [Meta].
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/shloka-console/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage bounds the page number so the offset cannot overflow.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Params is a clamped page request.
type Params struct {
	Page  int
	Limit int
}

// New clamps page to 1..[MaxPage] and limit to 1..[MaxLimit]. A non-positive
// limit falls back to [DefaultLimit].
func New(page, limit int) Params {
	if limit < 1 {
		limit = DefaultLimit
	}
	return Params{Page: min(max(page, DefaultPage), MaxPage), Limit: min(limit, MaxLimit)}
}

// FromRequest reads the "page" and "limit" query parameters.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return New(
		convert.ToIntD(query.Get("page"), DefaultPage),
		convert.ToIntD(query.Get("limit"), DefaultLimit),
	)
}

// Offset returns the number of items before this page. It saturates at
// [math.MaxInt] instead of wrapping for Params built without [New].
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of this page within total items;
// both always lie in 0..total.
func (p Params) Window(total int) (start, end int) {
	total = max(total, 0)
	start = min(p.Offset(), total)
	end = start + min(max(p.Limit, 0), total-start)
	return start, end
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Meta describes this page given the total number of matching items.
func (p Params) Meta(total int) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
