package postgres_adapter

import (
	"real-estate-system/internal/core/domain"
	"reflect"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.PropertyFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "empty filter",
			filter:    domain.PropertyFilter{},
			wantWhere: "",
			wantArgs:  []interface{}{},
		},
		{
			name:      "name matches name or address",
			filter:    domain.PropertyFilter{Name: "Downtown"},
			wantWhere: "WHERE (p.name ILIKE $1 OR p.address ILIKE $1)",
			wantArgs:  []interface{}{"%Downtown%"},
		},
		{
			name:      "all fields",
			filter:    domain.PropertyFilter{Name: "loft", Address: "Main", MinPrice: ptr(100), MaxPrice: ptr(500)},
			wantWhere: "WHERE (p.name ILIKE $1 OR p.address ILIKE $1) AND p.address ILIKE $2 AND p.price >= $3 AND p.price <= $4",
			wantArgs:  []interface{}{"%loft%", "%Main%", 100.0, 500.0},
		},
		{
			name:      "only max price",
			filter:    domain.PropertyFilter{MaxPrice: ptr(0)},
			wantWhere: "WHERE p.price <= $1",
			wantArgs:  []interface{}{0.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := applyFilters(tt.filter).build()
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`c:\path`: `%c:\\path%`,
		"plain":   "%plain%",
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLimitOffsetArgsFollowFilterArgs(t *testing.T) {
	qb := applyFilters(domain.PropertyFilter{Address: "x", MinPrice: ptr(1)})
	limit := qb.nextArg(12)
	offset := qb.nextArg(int64(24))
	if limit != 3 || offset != 4 {
		t.Fatalf("limit/offset placeholders = $%d/$%d, want $3/$4", limit, offset)
	}
	_, args := qb.build()
	if len(args) != 4 {
		t.Fatalf("got %d args, want 4", len(args))
	}
}
