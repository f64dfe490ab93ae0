package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts pagination parameters from the echo context.
// Both "pageSize" and the legacy "limit" query parameter are accepted.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		size, _ = strconv.Atoi(c.QueryParam("limit"))
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pages returns the total number of pages for the given result count.
func (p Params) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// HasNext returns true if there are more results after the current page.
// count is the number of items actually returned on this page.
func (p Params) HasNext(count, total int) bool {
	return p.Offset()+count < total
}

// HasPrev returns true if there are results before the current page.
func (p Params) HasPrev() bool {
	return p.Page > 1
}

// Meta describes the pagination state of a response.
type Meta struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewMeta builds the pagination block for a page of count items out of total.
func NewMeta(p Params, count, total int) Meta {
	return Meta{
		Current: p.Page,
		Total:   p.Pages(total),
		HasNext: p.HasNext(count, total),
		HasPrev: p.HasPrev(),
	}
}
