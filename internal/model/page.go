package model

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery is the page/size pair accepted by list endpoints.
// Pages are 1-based; zero values fall back to the defaults.
type PageQuery struct {
	Page int `query:"page" validate:"min=0"`
	Size int `query:"size" validate:"min=0,max=100"`
}

// Normalize fills in defaults and clamps the size.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	return q
}

// Limit is the SQL LIMIT for the page.
func (q PageQuery) Limit() int {
	return q.Normalize().Size
}

// Offset is the SQL OFFSET for the page.
func (q PageQuery) Offset() int {
	n := q.Normalize()
	return (n.Page - 1) * n.Size
}

// Page is one page of a list result.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPage builds a page; items is never encoded as null.
func NewPage[T any](items []T, q PageQuery, total int64) Page[T] {
	n := q.Normalize()
	if items == nil {
		items = []T{}
	}

	totalPages := int((total + int64(n.Size) - 1) / int64(n.Size))

	return Page[T]{
		Items:      items,
		Page:       n.Page,
		Size:       n.Size,
		Total:      total,
		TotalPages: totalPages,
	}
}
