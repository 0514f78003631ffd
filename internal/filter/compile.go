package filter

import (
	"strings"

	"github.com/kherve/lazycrm/internal/models"
)

// Compile converts the row session into the persisted filter group
// shape. Rows without a field or operator are skipped. When no row
// survives, Compile returns nil: "no filter applied" is the absence of
// a group, never a group with zero conditions.
func Compile(rows []models.FilterRow, op models.GroupOperator) *models.FilterGroup {
	var conditions []models.FilterCondition
	for _, row := range rows {
		if row.Field == "" || row.Op == "" {
			continue
		}
		cond := models.FilterCondition{Field: row.Field, Op: row.Op}
		switch {
		case row.Op.NeedsNoValue():
			// value key omitted entirely
		case row.Op.TakesList():
			cond.Value = models.List(splitTokens(row.Value))
		default:
			cond.Value = models.Scalar(row.Value)
		}
		conditions = append(conditions, cond)
	}
	if len(conditions) == 0 {
		return nil
	}
	return &models.FilterGroup{Operator: op, Conditions: conditions}
}

// Hydrate converts a stored filter group back into editable rows, the
// inverse of Compile. Conditions without a field are discarded. An
// empty result still yields one fresh empty row so the panel session
// invariant holds.
func Hydrate(group models.FilterGroup, newID IDGenerator) ([]models.FilterRow, models.GroupOperator) {
	var rows []models.FilterRow
	for _, cond := range group.Conditions {
		if cond.Field == "" {
			continue
		}
		rows = append(rows, models.FilterRow{
			ID:    newID(),
			Field: cond.Field,
			Op:    cond.Op,
			Value: cond.Value.Display(),
		})
	}
	if len(rows) == 0 {
		rows = append(rows, NewRow(newID))
	}
	op := group.Operator
	if op == "" {
		op = models.GroupAnd
	}
	return rows, op
}

// splitTokens splits a comma-separated input into trimmed tokens.
// No length validation happens here: a between value that splits into
// one or three parts is passed through as-is and left to the server.
func splitTokens(value string) []string {
	parts := strings.Split(value, ",")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}
