// Package filter describes list filters passed from the HTTP layer to repositories.
package filter

import (
	"fmt"
	"strings"
)

// ComparisonType is a filter operator.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	LessOrEqual    ComparisonType = "lte"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	Contains       ComparisonType = "contains" // ILIKE %val%
	IsNull         ComparisonType = "null"
	IsNotNull      ComparisonType = "not_null"
)

var operators = map[ComparisonType]struct{}{
	Equal: {}, NotEqual: {}, LessOrEqual: {}, GreaterOrEqual: {},
	InList: {}, Contains: {}, IsNull: {}, IsNotNull: {},
}

// Item is one filter condition.
type Item struct {
	Field    string         `json:"field"` // snake_case column name
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Parse reads "field:op:value" (or "field:op" for null checks).
// For the in operator the value is a comma separated list.
func Parse(raw string) (Item, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return Item{}, fmt.Errorf("filter %q: expected field:operator[:value]", raw)
	}

	item := Item{Field: strings.TrimSpace(parts[0]), Operator: ComparisonType(strings.TrimSpace(parts[1]))}
	if item.Field == "" {
		return Item{}, fmt.Errorf("filter %q: field is required", raw)
	}
	if _, ok := operators[item.Operator]; !ok {
		return Item{}, fmt.Errorf("filter %q: unknown operator %q", raw, item.Operator)
	}

	switch item.Operator {
	case IsNull, IsNotNull:
		return item, nil
	}
	if len(parts) != 3 {
		return Item{}, fmt.Errorf("filter %q: value is required", raw)
	}
	if item.Operator == InList {
		item.Value = strings.Split(parts[2], ",")
	} else {
		item.Value = parts[2]
	}
	return item, nil
}
