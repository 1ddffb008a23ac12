package querybuilder

// Page is a 1-based page request.
type Page struct {
	Page  int `mapstructure:"page"`
	Limit int `mapstructure:"limit"`
}

// Pagination is the metadata returned alongside a page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Pagination computes pages = ceil(total / limit).
func (p Page) Pagination(total int64) Pagination {
	var pages int64
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
