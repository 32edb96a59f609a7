package domain

// PaginationParams holds offset-based pagination parameters for list responses.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the item offset for the current page (0-based).
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) slice bounds of the page within total items.
func (p PaginationParams) Bounds(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = min(start+p.PageSize, total)
	return start, end
}
