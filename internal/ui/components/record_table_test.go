package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kherve/lazycrm/internal/models"
	"github.com/kherve/lazycrm/internal/ui/theme"
)

func newTestTable(rowCount int) *RecordTable {
	rt := NewRecordTable(theme.DefaultTheme())
	rt.Width = 60
	rt.Height = 8 // 5 visible rows after header, separator, status

	fields := []models.FieldDefinition{
		{Name: "name", Label: "Name", Type: models.FieldString},
	}
	rows := make([]models.Record, rowCount)
	for i := range rows {
		rows[i] = models.Record{"name": fmt.Sprintf("Record %d", i+1)}
	}
	rt.SetData(fields, rows, rowCount)
	return rt
}

func TestRecordTable_StatusShowsVisibleRange(t *testing.T) {
	rt := newTestTable(20)

	view := rt.View()
	if !strings.Contains(view, "1-5 of 20 records") {
		t.Errorf("expected range 1-5 of 20, got:\n%s", view)
	}
}

func TestRecordTable_StatusRangeAfterScroll(t *testing.T) {
	rt := newTestTable(20)
	rt.View() // establishes the visible window

	for i := 0; i < 10; i++ {
		rt.MoveSelection(1)
	}

	view := rt.View()
	if !strings.Contains(view, "7-11 of 20 records") {
		t.Errorf("expected range 7-11 of 20 after scrolling, got:\n%s", view)
	}
}

func TestRecordTable_StatusRangeWithFewRows(t *testing.T) {
	rt := newTestTable(3)

	view := rt.View()
	if !strings.Contains(view, "1-3 of 3 records") {
		t.Errorf("expected range 1-3 of 3, got:\n%s", view)
	}
}
