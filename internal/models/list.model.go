package models

// ListParams are the shared query parameters of every collection endpoint.
type ListParams struct {
	Search   string
	Page     int
	PageSize int
	Sort     string
	Order    string
}

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Normalize clamps paging values into their valid ranges.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Order != "desc" {
		p.Order = "asc"
	}
}

// ListResult wraps a page of items with paging metadata. Items is never nil so
// empty collections serialize as [] rather than null.
type ListResult[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
