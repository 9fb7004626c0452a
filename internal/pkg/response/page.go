package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// NewPageResponse wraps one page of items. A nil slice is rendered as [].
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}

// MapPage converts domain rows with convert and wraps them in a PageResponse.
func MapPage[S, T any](rows []S, convert func(S) T, page, pageSize, total int) PageResponse[T] {
	items := make([]T, len(rows))
	for i, row := range rows {
		items[i] = convert(row)
	}
	return NewPageResponse(items, page, pageSize, total)
}
