package dto

type PaginationMeta struct {
	TotalItems int64 `json:"total_items"`
	Page       int   `json:"page,omitempty"`
	PerPage    int   `json:"per_page,omitempty"`
}

type ListFilter struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Since   string `form:"since"`
}

// Normalize clamps pagination parameters to sane values.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}
}
