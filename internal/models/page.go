package models

import "time"

// PageRequest addresses one page of a result set. PageNumber is 0-based.
type PageRequest struct {
	PageNumber int
	PageSize   int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.PageNumber * p.PageSize
}

// Page is a bounded slice of a larger filtered result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
}

// TotalPages returns the number of pages needed for TotalElements.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// PostFilter narrows a post search. Empty fields are ignored; set fields combine with AND.
type PostFilter struct {
	Title     string
	CreatedBy string
	Tag       string
}

// PostSummaryRow is one row of a post search as read from the store.
type PostSummaryRow struct {
	ID        uint
	Title     string
	CreatedBy string
	CreatedAt time.Time
	FirstTag  *string
}
