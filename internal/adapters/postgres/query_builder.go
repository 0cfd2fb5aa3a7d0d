package postgres_adapter

import (
	"fmt"
	"real-estate-system/internal/core/domain"
	"strings"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddFloatFilter добавляет включительные границы диапазона
func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddContainsAny - подстрока в любом из полей, один параметр на все поля.
func (qb *queryBuilder) AddContainsAny(value string, fieldNames ...string) {
	parts := make([]string, len(fieldNames))
	for i, f := range fieldNames {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", f, qb.argId)
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, containsPattern(value))
	qb.argId++
}

// nextArg резервирует номер следующего параметра (для LIMIT/OFFSET).
func (qb *queryBuilder) nextArg(arg interface{}) int {
	id := qb.argId
	qb.args = append(qb.args, arg)
	qb.argId++
	return id
}

// build возвращает WHERE (или пустую строку) и аргументы
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern экранирует спецсимволы LIKE, чтобы искать строку буквально.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// applyFilters переводит PropertyFilter в условия для таблицы properties (алиас p)
func applyFilters(filter domain.PropertyFilter) *queryBuilder {
	qb := newQueryBuilder()

	// name ищется и в имени, и в адресе
	if filter.Name != "" {
		qb.AddContainsAny(filter.Name, "p.name", "p.address")
	}

	if filter.Address != "" {
		qb.addCondition("%s ILIKE $%d", "p.address", containsPattern(filter.Address))
	}

	qb.AddFloatFilter("p.price", filter.MinPrice, filter.MaxPrice)

	return qb
}
