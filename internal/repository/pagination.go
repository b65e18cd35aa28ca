package repository

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize clamps the request to valid bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) Limit() int {
	return p.Normalize().PageSize
}
