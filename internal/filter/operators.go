package filter

import "github.com/kherve/lazycrm/internal/models"

// OperatorsFor returns the available operators for a field type.
// Unrecognized types fall back to the string operator set.
func OperatorsFor(fieldType models.FieldType) []models.FilterOperator {
	switch fieldType {
	case models.FieldNumber, models.FieldDate:
		return []models.FilterOperator{
			models.OpEqual, models.OpNotEqual,
			models.OpGreaterThan, models.OpGreaterOrEq,
			models.OpLessThan, models.OpLessOrEq,
			models.OpBetween,
			models.OpIsEmpty, models.OpIsNotEmpty,
		}
	case models.FieldSelect:
		return []models.FilterOperator{
			models.OpEqual, models.OpNotEqual,
			models.OpIn, models.OpNotIn,
			models.OpIsEmpty, models.OpIsNotEmpty,
		}
	default:
		return []models.FilterOperator{
			models.OpEqual, models.OpNotEqual,
			models.OpContains, models.OpNotContains,
			models.OpIsEmpty, models.OpIsNotEmpty,
		}
	}
}

var operatorLabels = map[models.FilterOperator]string{
	models.OpEqual:       "equals",
	models.OpNotEqual:    "not equal",
	models.OpContains:    "contains",
	models.OpNotContains: "does not contain",
	models.OpGreaterThan: "greater than",
	models.OpGreaterOrEq: "greater or equal",
	models.OpLessThan:    "less than",
	models.OpLessOrEq:    "less or equal",
	models.OpBetween:     "between",
	models.OpIn:          "is one of",
	models.OpNotIn:       "is none of",
	models.OpIsEmpty:     "is empty",
	models.OpIsNotEmpty:  "is not empty",
}

// Label returns the display label of an operator. Every operator
// returned by OperatorsFor has a label; unknown codes render as-is.
func Label(op models.FilterOperator) string {
	if label, ok := operatorLabels[op]; ok {
		return label
	}
	return string(op)
}
