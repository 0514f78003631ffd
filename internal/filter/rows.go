package filter

import (
	"github.com/google/uuid"

	"github.com/kherve/lazycrm/internal/models"
)

// IDGenerator produces unique row ids. The panel uses UUIDGenerator;
// tests inject a deterministic one.
type IDGenerator func() string

// UUIDGenerator returns a random UUID string
func UUIDGenerator() string {
	return uuid.New().String()
}

// NewRow creates an empty row: no field, operator defaulted to eq,
// empty value
func NewRow(newID IDGenerator) models.FilterRow {
	return models.FilterRow{
		ID: newID(),
		Op: models.OpEqual,
	}
}

// AddRow appends one empty row. There is no upper bound on row count.
func AddRow(rows []models.FilterRow, newID IDGenerator) []models.FilterRow {
	return append(rows, NewRow(newID))
}

// RemoveRow removes the row with the given id. A session always keeps
// at least one row: removing the last one yields a single fresh empty
// row. Unknown ids are no-ops.
func RemoveRow(rows []models.FilterRow, id string, newID IDGenerator) []models.FilterRow {
	out := make([]models.FilterRow, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = append(out, NewRow(newID))
	}
	return out
}

// SetField changes the field of the matching row. The row's operator
// resets to eq and its value clears, since the previous pair may not
// be valid for the new field's type. Unknown ids are no-ops.
func SetField(rows []models.FilterRow, id, field string) []models.FilterRow {
	for i, r := range rows {
		if r.ID == id {
			rows[i].Field = field
			rows[i].Op = models.OpEqual
			rows[i].Value = ""
			break
		}
	}
	return rows
}

// SetOp changes the operator of the matching row
func SetOp(rows []models.FilterRow, id string, op models.FilterOperator) []models.FilterRow {
	for i, r := range rows {
		if r.ID == id {
			rows[i].Op = op
			break
		}
	}
	return rows
}

// SetValue changes the raw value of the matching row
func SetValue(rows []models.FilterRow, id, value string) []models.FilterRow {
	for i, r := range rows {
		if r.ID == id {
			rows[i].Value = value
			break
		}
	}
	return rows
}
