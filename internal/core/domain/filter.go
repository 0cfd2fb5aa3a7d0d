package domain

import "strings"

// PropertyFilter - фильтр для поиска объектов. Все поля необязательные,
// пустая строка эквивалентна отсутствию поля.
type PropertyFilter struct {
	// Name ищется как подстрока в name ИЛИ address
	Name string `json:"name,omitempty"`
	// Address дополнительно сужает выборку по address
	Address  string   `json:"address,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// IsEmpty - true, если фильтр не накладывает ограничений.
func (f PropertyFilter) IsEmpty() bool {
	return f.Name == "" && f.Address == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// Matches - предикат фильтра для хранилищ, которые фильтруют в памяти.
// Семантика совпадает с SQL (ILIKE) и MongoDB ($regex с опцией i) реализациями.
func (f PropertyFilter) Matches(p Property) bool {
	if f.Name != "" {
		if !containsFold(p.Name, f.Name) && !containsFold(p.Address, f.Name) {
			return false
		}
	}
	if f.Address != "" && !containsFold(p.Address, f.Address) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// containsFold - регистронезависимый поиск подстроки. Используется простое
// посимвольное приведение к нижнему регистру, как в ILIKE и $regex, без полного
// Unicode folding ("ß" не совпадает с "ss").
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
