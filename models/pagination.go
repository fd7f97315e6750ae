package models

// PaginatedResult is one page of a filtered listing together with the size of
// the full result set it was cut from.
type PaginatedResult[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// NewPaginatedResult fills in TotalPages. A nil items slice is normalized to an
// empty one so the JSON body always carries an array.
func NewPaginatedResult[T any](items []T, page, pageSize int, total int64) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages is ceil(total/pageSize), zero for an empty result.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// ExpectedPageLen is the number of items a page must hold for the given total.
func ExpectedPageLen(total int64, page, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	var skipped int64
	if page > 1 {
		// Checked first so huge page numbers cannot overflow the product.
		if int64(page-1) > total/int64(pageSize) {
			return 0
		}
		skipped = int64(page-1) * int64(pageSize)
	}
	remaining := total - skipped
	if remaining <= 0 {
		return 0
	}
	if remaining < int64(pageSize) {
		return int(remaining)
	}
	return pageSize
}

// PaginationMeta is the wire form of the pagination block.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PageResponse is the wire form of a PaginatedResult.
type PageResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// Response converts the result to its wire form.
func (r *PaginatedResult[T]) Response() PageResponse[T] {
	return PageResponse[T]{
		Data: r.Items,
		Pagination: PaginationMeta{
			Page:       r.Page,
			Limit:      r.PageSize,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}
