package domain

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestNewPageRequestDefaults(t *testing.T) {
	cases := []struct {
		page, size int
		want       PageRequest
	}{
		{0, 0, PageRequest{Page: 1, PageSize: 12}},
		{-4, 5, PageRequest{Page: 1, PageSize: 5}},
		{3, -1, PageRequest{Page: 3, PageSize: 12}},
		{2, 50, PageRequest{Page: 2, PageSize: 50}},
	}
	for _, tc := range cases {
		if got := NewPageRequest(tc.page, tc.size); got != tc.want {
			t.Errorf("NewPageRequest(%d, %d) = %+v, want %+v", tc.page, tc.size, got, tc.want)
		}
	}
}

func TestOffsetOverflow(t *testing.T) {
	req := PageRequest{Page: math.MaxInt, PageSize: math.MaxInt}
	if got := req.Offset(); got != math.MaxInt64 {
		t.Fatalf("Offset() = %d, want MaxInt64", got)
	}
	if page := Paginate([]int{1, 2, 3}, req); len(page) != 0 {
		t.Fatalf("overflowing page must be empty, got %v", page)
	}
}

func TestNewPagedResultMetadata(t *testing.T) {
	cases := []struct {
		name    string
		req     PageRequest
		total   int64
		pages   int
		hasNext bool
		hasPrev bool
	}{
		{"empty", PageRequest{1, 12}, 0, 0, false, false},
		{"single page", PageRequest{1, 12}, 12, 1, false, false},
		{"first of two", PageRequest{1, 12}, 13, 2, true, false},
		{"last", PageRequest{2, 12}, 13, 2, false, true},
		{"beyond range", PageRequest{9, 12}, 13, 2, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPagedResult[int](nil, tc.req, tc.total)
			if got.Data == nil {
				t.Fatal("Data must never be nil")
			}
			if got.TotalPages != tc.pages || got.HasNextPage != tc.hasNext || got.HasPreviousPage != tc.hasPrev {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

// Объединение всех страниц в порядке номеров равно исходной последовательности.
func TestPaginateUnionOfPagesIsWholeSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		all := rapid.SliceOf(rapid.Int()).Draw(t, "all")
		size := rapid.IntRange(1, 20).Draw(t, "pageSize")

		totalPages := TotalPages(int64(len(all)), size)
		var union []int
		for page := 1; page <= totalPages; page++ {
			chunk := Paginate(all, PageRequest{Page: page, PageSize: size})
			if len(chunk) == 0 || len(chunk) > size {
				t.Fatalf("page %d has %d items", page, len(chunk))
			}
			union = append(union, chunk...)
		}

		if len(union) != len(all) {
			t.Fatalf("union has %d items, want %d", len(union), len(all))
		}
		for i := range all {
			if union[i] != all[i] {
				t.Fatalf("item %d = %d, want %d", i, union[i], all[i])
			}
		}

		if beyond := Paginate(all, PageRequest{Page: totalPages + 1, PageSize: size}); len(beyond) != 0 {
			t.Fatalf("page after the last must be empty, got %v", beyond)
		}
	})
}

func TestTotalPagesIsCeiling(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Int64Range(0, 1_000_000).Draw(t, "total")
		size := rapid.IntRange(1, 1000).Draw(t, "size")

		pages := int64(TotalPages(total, size))
		if pages*int64(size) < total || (pages > 0 && (pages-1)*int64(size) >= total) {
			t.Fatalf("TotalPages(%d, %d) = %d", total, size, pages)
		}
	})
}
