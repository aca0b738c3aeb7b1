package domain

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PaginationParams struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, params PaginationParams, totalItems int64) PaginatedResponse[T] {
	params.Normalize()
	if data == nil {
		data = []T{}
	}

	return PaginatedResponse[T]{
		Data:       data,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: totalItems,
		TotalPages: int((totalItems + int64(params.PageSize) - 1) / int64(params.PageSize)),
	}
}

func DefaultPagination() PaginationParams {
	return PaginationParams{Page: 1, PageSize: defaultPageSize}
}

func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p PaginationParams) Offset() int {
	p.Normalize()
	return (p.Page - 1) * p.PageSize
}

func (p PaginationParams) Limit() int {
	p.Normalize()
	return p.PageSize
}
