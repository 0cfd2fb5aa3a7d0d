package domain

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 12
)

// PageRequest - номер страницы (с 1) и размер страницы.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest подставляет значения по умолчанию для некорректных параметров.
func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset = (Page - 1) * PageSize. При переполнении возвращается math.MaxInt64,
// что для любого хранилища означает пустую страницу.
func (p PageRequest) Offset() int64 {
	if p.Page <= 1 {
		return 0
	}
	skipped := int64(p.Page - 1)
	size := int64(p.PageSize)
	if size > 0 && skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skipped * size
}

// PagedResult - одна страница результатов и метаданные пагинации.
type PagedResult[T any] struct {
	Data            []T
	CurrentPage     int
	PageSize        int
	TotalItems      int64
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPagedResult считает метаданные пагинации. Для 0 элементов TotalPages = 0.
func NewPagedResult[T any](data []T, req PageRequest, totalItems int64) *PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := TotalPages(totalItems, req.PageSize)
	return &PagedResult[T]{
		Data:            data,
		CurrentPage:     req.Page,
		PageSize:        req.PageSize,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
	}
}

// TotalPages = ceil(totalItems / pageSize).
func TotalPages(totalItems int64, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	pages := totalItems / size
	if totalItems%size != 0 {
		pages++
	}
	if pages > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(pages)
}

// Paginate вырезает страницу [offset, offset+pageSize) из уже отфильтрованной
// упорядоченной последовательности. Страница за пределами данных - пустой срез.
func Paginate[T any](all []T, req PageRequest) []T {
	offset := req.Offset()
	if offset >= int64(len(all)) {
		return []T{}
	}
	end := offset + int64(req.PageSize)
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	page := make([]T, end-offset)
	copy(page, all[offset:end])
	return page
}
