package services

// PageInfo is the shared pagination envelope for list endpoints.
type PageInfo struct {
	Count       int64 `json:"count"`
	Next        *int  `json:"next"`
	Previous    *int  `json:"previous"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func NewPageInfo(count int64, page, pageSize int) PageInfo {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	totalPages := int((count + int64(pageSize) - 1) / int64(pageSize))
	info := PageInfo{
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
	if info.HasNext {
		next := page + 1
		info.Next = &next
	}
	if info.HasPrevious {
		previous := page - 1
		info.Previous = &previous
	}
	return info
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
