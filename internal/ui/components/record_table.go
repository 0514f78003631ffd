package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kherve/lazycrm/internal/models"
	"github.com/kherve/lazycrm/internal/ui/theme"
)

// RecordTable displays one page of entity records
type RecordTable struct {
	Fields []models.FieldDefinition
	Rows   []models.Record
	Width  int
	Height int
	Theme  theme.Theme

	// Scrolling state
	TopRow      int
	VisibleRows int
	SelectedRow int
	TotalRows   int

	// Column widths (calculated)
	ColumnWidths []int

	MaxCellWidth int
}

// NewRecordTable creates an empty record table
func NewRecordTable(th theme.Theme) *RecordTable {
	return &RecordTable{
		Theme:        th,
		MaxCellWidth: 32,
	}
}

// SetData replaces the table contents with a fresh page
func (rt *RecordTable) SetData(fields []models.FieldDefinition, rows []models.Record, totalRows int) {
	rt.Fields = fields
	rt.Rows = rows
	rt.TotalRows = totalRows
	rt.TopRow = 0
	rt.SelectedRow = 0
	rt.calculateColumnWidths()
}

// Append adds a paginated batch of rows
func (rt *RecordTable) Append(rows []models.Record, totalRows int) {
	rt.Rows = append(rt.Rows, rows...)
	rt.TotalRows = totalRows
	rt.calculateColumnWidths()
}

// calculateColumnWidths calculates column widths from headers and data
func (rt *RecordTable) calculateColumnWidths() {
	if len(rt.Fields) == 0 {
		return
	}

	rt.ColumnWidths = make([]int, len(rt.Fields))
	for i, f := range rt.Fields {
		rt.ColumnWidths[i] = len(f.Label)
	}

	for _, row := range rt.Rows {
		for i, f := range rt.Fields {
			if l := len(row.Get(f.Name)); l > rt.ColumnWidths[i] {
				rt.ColumnWidths[i] = l
			}
		}
	}

	for i := range rt.ColumnWidths {
		if rt.ColumnWidths[i] > rt.MaxCellWidth {
			rt.ColumnWidths[i] = rt.MaxCellWidth
		}
		if rt.ColumnWidths[i] < 6 {
			rt.ColumnWidths[i] = 6
		}
	}
}

// View renders the table
func (rt *RecordTable) View() string {
	if len(rt.Fields) == 0 || len(rt.Rows) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(rt.Theme.Muted).Padding(1)
		return emptyStyle.Render("No records")
	}

	var b strings.Builder

	b.WriteString(rt.renderHeader())
	b.WriteString("\n")
	b.WriteString(rt.renderSeparator())
	b.WriteString("\n")

	// Header + separator + status
	rt.VisibleRows = rt.Height - 3
	if rt.VisibleRows < 1 {
		rt.VisibleRows = 1
	}

	endRow := rt.TopRow + rt.VisibleRows
	if endRow > len(rt.Rows) {
		endRow = len(rt.Rows)
	}

	for i := rt.TopRow; i < endRow; i++ {
		b.WriteString(rt.renderRow(rt.Rows[i], i == rt.SelectedRow))
		if i < endRow-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(rt.renderStatus())

	return b.String()
}

func (rt *RecordTable) renderHeader() string {
	var parts []string
	for i, f := range rt.Fields {
		parts = append(parts, rt.pad(f.Label, rt.ColumnWidths[i]))
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(rt.Theme.TableHeader)
	return headerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func (rt *RecordTable) renderSeparator() string {
	var parts []string
	for _, width := range rt.ColumnWidths {
		parts = append(parts, strings.Repeat("─", width))
	}
	separatorStyle := lipgloss.NewStyle().Foreground(rt.Theme.Border)
	return separatorStyle.Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (rt *RecordTable) renderRow(row models.Record, selected bool) string {
	var parts []string
	for i, f := range rt.Fields {
		parts = append(parts, rt.pad(row.Get(f.Name), rt.ColumnWidths[i]))
	}

	line := " " + strings.Join(parts, " │ ") + " "

	if selected {
		return lipgloss.NewStyle().
			Background(rt.Theme.TableRowSelected).
			Foreground(rt.Theme.Foreground).
			Bold(true).
			Render(line)
	}
	return line
}

func (rt *RecordTable) renderStatus() string {
	endRow := rt.TopRow + rt.VisibleRows
	if endRow > len(rt.Rows) {
		endRow = len(rt.Rows)
	}

	showing := fmt.Sprintf(" %d-%d of %d records", rt.TopRow+1, endRow, rt.TotalRows)
	return lipgloss.NewStyle().
		Foreground(rt.Theme.Muted).
		Italic(true).
		Render(showing)
}

func (rt *RecordTable) pad(s string, width int) string {
	if len(s) > width {
		if width <= 3 {
			return s[:width]
		}
		return s[:width-3] + "..."
	}
	return s + strings.Repeat(" ", width-len(s))
}

// MoveSelection moves the selection up or down
func (rt *RecordTable) MoveSelection(delta int) {
	rt.SelectedRow += delta

	if rt.SelectedRow < 0 {
		rt.SelectedRow = 0
	}
	if rt.SelectedRow >= len(rt.Rows) {
		rt.SelectedRow = len(rt.Rows) - 1
	}
	if rt.SelectedRow < 0 {
		rt.SelectedRow = 0
	}

	// Adjust visible window if needed
	if rt.SelectedRow < rt.TopRow {
		rt.TopRow = rt.SelectedRow
	}
	if rt.VisibleRows > 0 && rt.SelectedRow >= rt.TopRow+rt.VisibleRows {
		rt.TopRow = rt.SelectedRow - rt.VisibleRows + 1
	}
}

// PageUp moves the selection one page up
func (rt *RecordTable) PageUp() {
	rt.SelectedRow -= rt.VisibleRows
	if rt.SelectedRow < 0 {
		rt.SelectedRow = 0
	}
	rt.TopRow = rt.SelectedRow
}

// PageDown moves the selection one page down
func (rt *RecordTable) PageDown() {
	rt.SelectedRow += rt.VisibleRows
	if rt.SelectedRow >= len(rt.Rows) {
		rt.SelectedRow = len(rt.Rows) - 1
	}
	if rt.SelectedRow < 0 {
		rt.SelectedRow = 0
	}
	if rt.SelectedRow < rt.TopRow {
		rt.TopRow = rt.SelectedRow
	}
	if rt.VisibleRows > 0 && rt.SelectedRow >= rt.TopRow+rt.VisibleRows {
		rt.TopRow = rt.SelectedRow - rt.VisibleRows + 1
	}
}
