package filter

import (
	"fmt"
	"testing"

	"github.com/kherve/lazycrm/internal/models"
)

// testIDGen returns a deterministic id generator for tests
func testIDGen() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func TestNewRow_Defaults(t *testing.T) {
	newID := testIDGen()
	row := NewRow(newID)

	if row.ID != "row-1" {
		t.Errorf("expected id 'row-1', got '%s'", row.ID)
	}
	if row.Field != "" {
		t.Errorf("expected empty field, got '%s'", row.Field)
	}
	if row.Op != models.OpEqual {
		t.Errorf("expected default operator eq, got '%s'", row.Op)
	}
	if row.Value != "" {
		t.Errorf("expected empty value, got '%s'", row.Value)
	}
}

func TestAddRow_Appends(t *testing.T) {
	newID := testIDGen()
	rows := []models.FilterRow{NewRow(newID)}

	rows = AddRow(rows, newID)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID == rows[1].ID {
		t.Error("expected distinct row ids")
	}
}

func TestRemoveRow_LastRowYieldsFreshEmptyRow(t *testing.T) {
	newID := testIDGen()
	rows := []models.FilterRow{
		{ID: "only", Field: "status", Op: models.OpEqual, Value: "new"},
	}

	rows = RemoveRow(rows, "only", newID)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row after removing the last one, got %d", len(rows))
	}
	if rows[0].ID == "only" {
		t.Error("expected a fresh row, got the removed one back")
	}
	if rows[0].Field != "" || rows[0].Value != "" {
		t.Errorf("expected empty replacement row, got field '%s' value '%s'", rows[0].Field, rows[0].Value)
	}
	if rows[0].Op != models.OpEqual {
		t.Errorf("expected replacement row op eq, got '%s'", rows[0].Op)
	}
}

func TestRemoveRow_UnknownIDIsNoOp(t *testing.T) {
	newID := testIDGen()
	rows := []models.FilterRow{
		{ID: "a", Field: "score", Op: models.OpGreaterThan, Value: "50"},
		{ID: "b", Field: "status", Op: models.OpEqual, Value: "new"},
	}

	rows = RemoveRow(rows, "missing", newID)

	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
}

func TestSetField_ResetsOperatorAndValue(t *testing.T) {
	rows := []models.FilterRow{
		{ID: "a", Field: "score", Op: models.OpBetween, Value: "10, 20"},
	}

	rows = SetField(rows, "a", "status")

	if rows[0].Field != "status" {
		t.Errorf("expected field 'status', got '%s'", rows[0].Field)
	}
	if rows[0].Op != models.OpEqual {
		t.Errorf("expected op reset to eq, got '%s'", rows[0].Op)
	}
	if rows[0].Value != "" {
		t.Errorf("expected value reset to empty, got '%s'", rows[0].Value)
	}
}

func TestSetOp_And_SetValue(t *testing.T) {
	rows := []models.FilterRow{
		{ID: "a", Field: "score", Op: models.OpEqual},
	}

	rows = SetOp(rows, "a", models.OpGreaterOrEq)
	rows = SetValue(rows, "a", "80")

	if rows[0].Op != models.OpGreaterOrEq {
		t.Errorf("expected op gte, got '%s'", rows[0].Op)
	}
	if rows[0].Value != "80" {
		t.Errorf("expected value '80', got '%s'", rows[0].Value)
	}
}

func TestSetField_UnknownIDIsNoOp(t *testing.T) {
	rows := []models.FilterRow{
		{ID: "a", Field: "score", Op: models.OpGreaterThan, Value: "50"},
	}

	rows = SetField(rows, "missing", "status")

	if rows[0].Field != "score" || rows[0].Op != models.OpGreaterThan || rows[0].Value != "50" {
		t.Errorf("expected row untouched, got %+v", rows[0])
	}
}
