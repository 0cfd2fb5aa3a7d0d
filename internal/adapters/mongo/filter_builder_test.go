package mongo_adapter

import (
	"real-estate-system/internal/core/domain"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr(f float64) *float64 { return &f }

func TestBuildFilterEmpty(t *testing.T) {
	got := buildFilter(domain.PropertyFilter{})
	if len(got) != 0 {
		t.Fatalf("expected empty document, got %v", got)
	}
}

func TestBuildFilterPriceOnly(t *testing.T) {
	got := buildFilter(domain.PropertyFilter{MinPrice: ptr(100000), MaxPrice: ptr(200000)})
	want := bson.D{{Key: "price", Value: bson.D{
		{Key: "$gte", Value: 100000.0},
		{Key: "$lte", Value: 200000.0},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildFilterNameAndAddress(t *testing.T) {
	got := buildFilter(domain.PropertyFilter{Name: "Downtown", Address: "5th"})
	want := bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: primitive.Regex{Pattern: "Downtown", Options: "i"}}},
			bson.D{{Key: "address", Value: primitive.Regex{Pattern: "Downtown", Options: "i"}}},
		}}},
		bson.D{{Key: "address", Value: primitive.Regex{Pattern: "5th", Options: "i"}}},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestContainsRegexQuotesMeta(t *testing.T) {
	got := containsRegex("a.b*(c)")
	if got.Pattern != `a\.b\*\(c\)` || got.Options != "i" {
		t.Fatalf("unexpected regex %+v", got)
	}
}
