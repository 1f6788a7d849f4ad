package dto

// Paginated wraps list responses with paging metadata.
type Paginated[T any] struct {
	Results    []T   `json:"results"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewPaginated builds a paginated envelope around the given page.
func NewPaginated[T any](results []T, total int64, page, pageSize int) *Paginated[T] {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	if results == nil {
		results = []T{}
	}
	return &Paginated[T]{
		Results:    results,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
