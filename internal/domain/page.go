package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based pagination request
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// NewPage clamps page and size to sane bounds
func NewPage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Page: page, PageSize: size}
}

func (p Page) Limit() int {
	return p.PageSize
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}
