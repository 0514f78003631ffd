package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FilterOperator represents a filter comparison operator
type FilterOperator string

const (
	OpEqual       FilterOperator = "eq"
	OpNotEqual    FilterOperator = "neq"
	OpContains    FilterOperator = "contains"
	OpNotContains FilterOperator = "not_contains"
	OpGreaterThan FilterOperator = "gt"
	OpGreaterOrEq FilterOperator = "gte"
	OpLessThan    FilterOperator = "lt"
	OpLessOrEq    FilterOperator = "lte"
	OpBetween     FilterOperator = "between"
	OpIn          FilterOperator = "in"
	OpNotIn       FilterOperator = "not_in"
	OpIsEmpty     FilterOperator = "is_empty"
	OpIsNotEmpty  FilterOperator = "is_not_empty"
)

// NeedsNoValue reports whether the operator takes no value at all.
// Conditions with these operators omit the value key on the wire.
func (op FilterOperator) NeedsNoValue() bool {
	return op == OpIsEmpty || op == OpIsNotEmpty
}

// TakesList reports whether the operator's value is a list of tokens
// (comma-separated in the row editor).
func (op FilterOperator) TakesList() bool {
	return op == OpBetween || op == OpIn || op == OpNotIn
}

// GroupOperator is the top-level boolean combinator of a filter group
type GroupOperator string

const (
	GroupAnd GroupOperator = "and"
	GroupOr  GroupOperator = "or"
)

// Toggle returns the opposite group operator
func (g GroupOperator) Toggle() GroupOperator {
	if g == GroupAnd {
		return GroupOr
	}
	return GroupAnd
}

// FilterValue is a condition value: either a single scalar string or a
// list of strings. An absent value is represented as a nil *FilterValue
// so the value key disappears from the JSON entirely.
type FilterValue struct {
	List     []string
	Scalar   string
	IsScalar bool
}

// Scalar creates a single-string filter value
func Scalar(s string) *FilterValue {
	return &FilterValue{Scalar: s, IsScalar: true}
}

// List creates a list filter value
func List(items []string) *FilterValue {
	return &FilterValue{List: items}
}

// Display renders the value back to the row editor's single input string.
// List values join with ", "; a nil value renders as "".
func (v *FilterValue) Display() string {
	if v == nil {
		return ""
	}
	if v.IsScalar {
		return v.Scalar
	}
	return strings.Join(v.List, ", ")
}

// MarshalJSON emits a bare string for scalars and an array for lists
func (v FilterValue) MarshalJSON() ([]byte, error) {
	if v.IsScalar {
		return json.Marshal(v.Scalar)
	}
	return json.Marshal(v.List)
}

// UnmarshalJSON accepts either a string or an array of strings
func (v *FilterValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		v.IsScalar = false
		return json.Unmarshal(data, &v.List)
	}
	v.IsScalar = true
	if strings.HasPrefix(trimmed, "\"") {
		return json.Unmarshal(data, &v.Scalar)
	}
	// Stored data may carry numbers or booleans; render them as strings
	// rather than rejecting the preset (lenient parsing).
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Scalar = fmt.Sprintf("%v", raw)
	return nil
}

// FilterCondition is a single field/operator/value triple as persisted
// and exchanged with the server
type FilterCondition struct {
	Field string         `json:"field"`
	Op    FilterOperator `json:"op"`
	Value *FilterValue   `json:"value,omitempty"`
}

// FilterGroup is an AND/OR combination of conditions. A group with zero
// conditions is never persisted or applied; "no filter" is a nil group.
type FilterGroup struct {
	Operator   GroupOperator     `json:"operator"`
	Conditions []FilterCondition `json:"conditions"`
}

// SavedFilter is a named filter group persisted on the server
type SavedFilter struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	EntityType string      `json:"entity_type"`
	Filters    FilterGroup `json:"filters"`
}

// FilterRow is one editable condition row in the filter panel session.
// Field may be empty (unselected); Value is the raw text as typed.
type FilterRow struct {
	ID    string
	Field string
	Op    FilterOperator
	Value string
}
