package pagination

import (
	"math"
)

// Pagination represents pagination parameters
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:    1,
		PerPage: 15,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 15
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset calculates the offset into the ordered collection
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult wraps a page of items with its pagination metadata
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a paginated result
func NewPaginatedResult[T any](items []T, page, perPage int, total int64) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: NewPagination(page, perPage, total),
	}
}

// Slice applies the params to an already-materialized list. The ledger
// lives in memory as a single ordered collection, so audit listings
// paginate over a slice rather than a query.
func Slice[T any](items []T, p *PaginationParams) *PaginatedResult[T] {
	p.Validate()

	total := int64(len(items))
	start := p.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}

	return NewPaginatedResult(items[start:end], p.Page, p.PerPage, total)
}
