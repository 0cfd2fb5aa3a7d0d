package rest

import (
	"fmt"
	"math"
	"net/url"
	"real-estate-system/internal/core/domain"
	"strconv"
	"strings"
)

// PaginationConfig - размер страницы по умолчанию и верхняя граница (0 - без ограничения).
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// parseFilter собирает фильтр из query-параметров name, address, minPrice, maxPrice.
func parseFilter(query url.Values) (domain.PropertyFilter, error) {
	filter := domain.PropertyFilter{
		Name:    strings.TrimSpace(query.Get("name")),
		Address: strings.TrimSpace(query.Get("address")),
	}

	var err error
	if filter.MinPrice, err = parseOptionalFloat(query, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parseOptionalFloat(query, "maxPrice"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseOptionalFloat(query url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, domain.NewValidationError(key, fmt.Sprintf("must be a number, got %q", raw))
	}
	return &value, nil
}

func parseOptionalInt(query url.Values, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(key, fmt.Sprintf("must be an integer, got %q", raw))
	}
	return value, nil
}

// parsePageRequest: page < 1 и pageSize < 1 заменяются значениями по умолчанию,
// pageSize больше MaxPageSize обрезается.
func parsePageRequest(query url.Values, cfg PaginationConfig) (domain.PageRequest, error) {
	defaultSize := cfg.DefaultPageSize
	if defaultSize < 1 {
		defaultSize = domain.DefaultPageSize
	}

	page, err := parseOptionalInt(query, "page", domain.DefaultPage)
	if err != nil {
		return domain.PageRequest{}, err
	}
	pageSize, err := parseOptionalInt(query, "pageSize", defaultSize)
	if err != nil {
		return domain.PageRequest{}, err
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if cfg.MaxPageSize > 0 && pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}
	return domain.NewPageRequest(page, pageSize), nil
}
