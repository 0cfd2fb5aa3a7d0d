package mongo_adapter

import (
	"real-estate-system/internal/core/domain"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// containsRegex - регистронезависимый поиск подстроки, спецсимволы экранируются.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// buildFilter переводит PropertyFilter в документ запроса. Пустой фильтр - bson.D{}.
func buildFilter(filter domain.PropertyFilter) bson.D {
	conditions := bson.A{}

	// name ищется и в имени, и в адресе
	if filter.Name != "" {
		conditions = append(conditions, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: containsRegex(filter.Name)}},
			bson.D{{Key: "address", Value: containsRegex(filter.Name)}},
		}}})
	}

	if filter.Address != "" {
		conditions = append(conditions, bson.D{{Key: "address", Value: containsRegex(filter.Address)}})
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.D{}
		if filter.MinPrice != nil {
			price = append(price, bson.E{Key: "$gte", Value: *filter.MinPrice})
		}
		if filter.MaxPrice != nil {
			price = append(price, bson.E{Key: "$lte", Value: *filter.MaxPrice})
		}
		conditions = append(conditions, bson.D{{Key: "price", Value: price}})
	}

	switch len(conditions) {
	case 0:
		return bson.D{}
	case 1:
		return conditions[0].(bson.D)
	default:
		return bson.D{{Key: "$and", Value: conditions}}
	}
}
