package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kherve/lazycrm/internal/filter"
	"github.com/kherve/lazycrm/internal/models"
	"github.com/kherve/lazycrm/internal/schema"
	"github.com/kherve/lazycrm/internal/ui/theme"
)

// ApplyFilterMsg is sent when a filter should be applied. Group is nil
// when the filter was cleared.
type ApplyFilterMsg struct {
	Group *models.FilterGroup
}

// CloseFilterPanelMsg is sent when the filter panel should close
type CloseFilterPanelMsg struct{}

// SavePresetMsg requests persisting the compiled group under a name
type SavePresetMsg struct {
	Name  string
	Group models.FilterGroup
}

// PresetSavedMsg reports the outcome of a save request
type PresetSavedMsg struct {
	Preset *models.SavedFilter
	Err    error
}

// LoadPresetsMsg requests the preset list for the panel's entity type
type LoadPresetsMsg struct{}

// PresetsLoadedMsg carries the fetched preset list
type PresetsLoadedMsg struct {
	Presets []models.SavedFilter
	Err     error
}

// DeletePresetMsg requests deleting a preset by server id
type DeletePresetMsg struct {
	ID int
}

// PresetDeletedMsg reports the outcome of a delete request
type PresetDeletedMsg struct {
	ID  int
	Err error
}

// FilterPanel is the interactive filter editor for one entity type.
// While open it always holds at least one row; the compiled group is
// derived on demand, never cached.
type FilterPanel struct {
	Width  int
	Height int
	Theme  theme.Theme

	entity models.EntityType
	fields []models.FieldDefinition

	rows    []models.FilterRow
	groupOp models.GroupOperator
	applied *models.FilterGroup

	// editMode: "" (navigation), "field", "operator", "value",
	// "save", "presets"
	editMode      string
	currentIndex  int
	editRowID     string
	fieldIndex    int
	operatorIndex int
	availableOps  []models.FilterOperator
	valueInput    textinput.Model
	nameInput     textinput.Model

	presets     []models.SavedFilter
	presetIndex int

	saving          bool
	validationError string

	newID filter.IDGenerator
}

// NewFilterPanel creates a filter panel for an entity type
func NewFilterPanel(entity models.EntityType, th theme.Theme) *FilterPanel {
	vi := textinput.New()
	vi.Placeholder = "Value..."
	vi.CharLimit = 256
	vi.Width = 40

	ni := textinput.New()
	ni.Placeholder = "Preset name..."
	ni.CharLimit = 64
	ni.Width = 40

	fp := &FilterPanel{
		Width:      60,
		Height:     24,
		Theme:      th,
		valueInput: vi,
		nameInput:  ni,
		newID:      filter.UUIDGenerator,
	}
	fp.SetEntity(entity)
	return fp
}

// SetEntity switches the panel to another entity type and resets the
// session: one empty row, AND, nothing applied
func (fp *FilterPanel) SetEntity(entity models.EntityType) {
	fp.entity = entity
	fp.fields = schema.Fields(entity)
	fp.rows = []models.FilterRow{filter.NewRow(fp.newID)}
	fp.groupOp = models.GroupAnd
	fp.applied = nil
	fp.presets = nil
	fp.editMode = ""
	fp.currentIndex = 0
	fp.validationError = ""
}

// Applied returns the currently applied group, nil when no filter is
// active
func (fp *FilterPanel) Applied() *models.FilterGroup {
	return fp.applied
}

// AppliedCount returns the number of active conditions, for the badge
// shown while the panel is closed
func (fp *FilterPanel) AppliedCount() int {
	if fp.applied == nil {
		return 0
	}
	return len(fp.applied.Conditions)
}

// Editing reports whether a text input currently owns the keyboard
func (fp *FilterPanel) Editing() bool {
	return fp.editMode == "value" || fp.editMode == "save"
}

// Update handles messages while the panel is open
func (fp *FilterPanel) Update(msg tea.Msg) (*FilterPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch fp.editMode {
		case "":
			return fp.handleNavigationMode(msg)
		case "field":
			return fp.handleFieldMode(msg)
		case "operator":
			return fp.handleOperatorMode(msg)
		case "value":
			return fp.handleValueMode(msg)
		case "save":
			return fp.handleSaveMode(msg)
		case "presets":
			return fp.handlePresetsMode(msg)
		}

	case PresetSavedMsg:
		fp.saving = false
		if msg.Err != nil {
			// Leave the save dialog open so the user may retry
			fp.validationError = msg.Err.Error()
			return fp, nil
		}
		fp.editMode = ""
		fp.nameInput.SetValue("")
		fp.validationError = ""
		if msg.Preset != nil {
			fp.presets = append(fp.presets, *msg.Preset)
		}

	case PresetsLoadedMsg:
		if msg.Err != nil {
			fp.validationError = msg.Err.Error()
			return fp, nil
		}
		fp.presets = msg.Presets
		fp.presetIndex = 0

	case PresetDeletedMsg:
		if msg.Err != nil {
			fp.validationError = msg.Err.Error()
			return fp, nil
		}
		for i, p := range fp.presets {
			if p.ID == msg.ID {
				fp.presets = append(fp.presets[:i], fp.presets[i+1:]...)
				break
			}
		}
		if fp.presetIndex >= len(fp.presets) && fp.presetIndex > 0 {
			fp.presetIndex--
		}
	}
	return fp, nil
}

// handleNavigationMode handles keys in navigation mode
func (fp *FilterPanel) handleNavigationMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if fp.currentIndex > 0 {
			fp.currentIndex--
		}
	case "down", "j":
		if fp.currentIndex < len(fp.rows)-1 {
			fp.currentIndex++
		}
	case "a", "n":
		// Add a row and start editing its field
		fp.rows = filter.AddRow(fp.rows, fp.newID)
		fp.currentIndex = len(fp.rows) - 1
		fp.startFieldMode(fp.rows[fp.currentIndex])
	case "d", "x":
		if fp.currentIndex < len(fp.rows) {
			fp.rows = filter.RemoveRow(fp.rows, fp.rows[fp.currentIndex].ID, fp.newID)
			if fp.currentIndex >= len(fp.rows) {
				fp.currentIndex = len(fp.rows) - 1
			}
		}
	case "e":
		if fp.currentIndex < len(fp.rows) {
			fp.startFieldMode(fp.rows[fp.currentIndex])
		}
	case "o":
		fp.groupOp = fp.groupOp.Toggle()
	case "enter":
		return fp.apply()
	case "c":
		return fp.clear()
	case "s":
		if filter.Compile(fp.rows, fp.groupOp) == nil {
			fp.validationError = "Add at least one complete condition before saving"
			return fp, nil
		}
		fp.validationError = ""
		fp.editMode = "save"
		fp.nameInput.SetValue("")
		fp.nameInput.Focus()
	case "p":
		fp.validationError = ""
		fp.editMode = "presets"
		fp.presetIndex = 0
		return fp, func() tea.Msg { return LoadPresetsMsg{} }
	case "esc":
		return fp, func() tea.Msg { return CloseFilterPanelMsg{} }
	}
	return fp, nil
}

// startFieldMode begins editing the field of a row
func (fp *FilterPanel) startFieldMode(row models.FilterRow) {
	fp.editMode = "field"
	fp.editRowID = row.ID
	fp.fieldIndex = 0
	for i, f := range fp.fields {
		if f.Name == row.Field {
			fp.fieldIndex = i
			break
		}
	}
	fp.validationError = ""
}

// handleFieldMode handles field selection
func (fp *FilterPanel) handleFieldMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.editMode = ""
	case "up", "k":
		if fp.fieldIndex > 0 {
			fp.fieldIndex--
		}
	case "down", "j":
		if fp.fieldIndex < len(fp.fields)-1 {
			fp.fieldIndex++
		}
	case "enter":
		if len(fp.fields) == 0 {
			fp.editMode = ""
			return fp, nil
		}
		field := fp.fields[fp.fieldIndex]
		// Changing the field resets operator and value
		fp.rows = filter.SetField(fp.rows, fp.editRowID, field.Name)
		fp.availableOps = filter.OperatorsFor(field.Type)
		fp.operatorIndex = 0
		fp.editMode = "operator"
	}
	return fp, nil
}

// handleOperatorMode handles operator selection
func (fp *FilterPanel) handleOperatorMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.editMode = "field"
	case "up", "k":
		if fp.operatorIndex > 0 {
			fp.operatorIndex--
		}
	case "down", "j":
		if fp.operatorIndex < len(fp.availableOps)-1 {
			fp.operatorIndex++
		}
	case "enter":
		op := fp.availableOps[fp.operatorIndex]
		fp.rows = filter.SetOp(fp.rows, fp.editRowID, op)
		if op.NeedsNoValue() {
			// No value needed, the row is complete
			fp.rows = filter.SetValue(fp.rows, fp.editRowID, "")
			fp.editMode = ""
		} else {
			fp.valueInput.SetValue(fp.currentRowValue())
			fp.valueInput.Placeholder = valuePlaceholder(op)
			fp.valueInput.Focus()
			fp.editMode = "value"
		}
	}
	return fp, nil
}

// handleValueMode handles value input
func (fp *FilterPanel) handleValueMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.editMode = "operator"
	case "enter":
		fp.rows = filter.SetValue(fp.rows, fp.editRowID, fp.valueInput.Value())
		fp.editMode = ""
	default:
		var cmd tea.Cmd
		fp.valueInput, cmd = fp.valueInput.Update(msg)
		return fp, cmd
	}
	return fp, nil
}

// handleSaveMode handles the save-preset dialog
func (fp *FilterPanel) handleSaveMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !fp.saving {
			fp.editMode = ""
			fp.validationError = ""
		}
	case "enter":
		if fp.saving {
			return fp, nil
		}
		name := strings.TrimSpace(fp.nameInput.Value())
		group := filter.Compile(fp.rows, fp.groupOp)
		// Save stays disabled until both the name and the group are
		// non-empty
		if name == "" || group == nil {
			return fp, nil
		}
		fp.saving = true
		fp.validationError = ""
		g := *group
		return fp, func() tea.Msg {
			return SavePresetMsg{Name: name, Group: g}
		}
	default:
		var cmd tea.Cmd
		fp.nameInput, cmd = fp.nameInput.Update(msg)
		return fp, cmd
	}
	return fp, nil
}

// handlePresetsMode handles the preset list
func (fp *FilterPanel) handlePresetsMode(msg tea.KeyMsg) (*FilterPanel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.editMode = ""
		fp.validationError = ""
	case "up", "k":
		if fp.presetIndex > 0 {
			fp.presetIndex--
		}
	case "down", "j":
		if fp.presetIndex < len(fp.presets)-1 {
			fp.presetIndex++
		}
	case "d", "x":
		if fp.presetIndex < len(fp.presets) {
			id := fp.presets[fp.presetIndex].ID
			return fp, func() tea.Msg { return DeletePresetMsg{ID: id} }
		}
	case "enter":
		if fp.presetIndex >= len(fp.presets) {
			return fp, nil
		}
		// Loading a preset hydrates the rows and applies immediately
		return fp.ApplyGroup(fp.presets[fp.presetIndex].Filters)
	}
	return fp, nil
}

// ApplyGroup loads a stored group into the session and applies it.
// Preset loads and history re-applies both land here.
func (fp *FilterPanel) ApplyGroup(group models.FilterGroup) (*FilterPanel, tea.Cmd) {
	fp.rows, fp.groupOp = filter.Hydrate(group, fp.newID)
	fp.currentIndex = 0
	fp.editMode = ""
	return fp.apply()
}

// apply compiles the session and hands the group to the consumer
func (fp *FilterPanel) apply() (*FilterPanel, tea.Cmd) {
	group := filter.Compile(fp.rows, fp.groupOp)
	fp.applied = group
	fp.validationError = ""
	return fp, func() tea.Msg {
		return ApplyFilterMsg{Group: group}
	}
}

// clear resets the session to one empty row and applies "no filter"
func (fp *FilterPanel) clear() (*FilterPanel, tea.Cmd) {
	fp.rows = []models.FilterRow{filter.NewRow(fp.newID)}
	fp.groupOp = models.GroupAnd
	fp.currentIndex = 0
	fp.applied = nil
	fp.validationError = ""
	return fp, func() tea.Msg {
		return ApplyFilterMsg{Group: nil}
	}
}

// currentRowValue returns the raw value of the row being edited
func (fp *FilterPanel) currentRowValue() string {
	for _, r := range fp.rows {
		if r.ID == fp.editRowID {
			return r.Value
		}
	}
	return ""
}

// valuePlaceholder hints at the expected input shape for an operator
func valuePlaceholder(op models.FilterOperator) string {
	switch {
	case op == models.OpBetween:
		return "min, max"
	case op.TakesList():
		return "a, b, c"
	default:
		return "Value..."
	}
}

// fieldLabel resolves a field name to its display label
func (fp *FilterPanel) fieldLabel(name string) string {
	if f, ok := schema.Find(fp.entity, name); ok {
		return f.Label
	}
	return name
}

// rowLine renders one condition row for the list
func (fp *FilterPanel) rowLine(row models.FilterRow) string {
	if row.Field == "" {
		return "(choose field)"
	}
	if row.Op.NeedsNoValue() {
		return fmt.Sprintf("%s %s", fp.fieldLabel(row.Field), filter.Label(row.Op))
	}
	return fmt.Sprintf("%s %s %s", fp.fieldLabel(row.Field), filter.Label(row.Op), row.Value)
}

// View renders the filter panel
func (fp *FilterPanel) View() string {
	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().
		Foreground(fp.Theme.Foreground).
		Background(fp.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Filters · "+fp.entity.Label()))

	// Instructions based on mode
	instructionStyle := lipgloss.NewStyle().
		Foreground(fp.Theme.Muted).
		Padding(0, 1)

	var instructions string
	switch fp.editMode {
	case "field":
		instructions = "↑↓ Select field, Enter to confirm, Esc to cancel"
	case "operator":
		instructions = "↑↓ Select operator, Enter to confirm, Esc to go back"
	case "value":
		instructions = "Type value, Enter to confirm, Esc to go back"
	case "save":
		instructions = "Type preset name, Enter to save, Esc to cancel"
	case "presets":
		instructions = "↑↓ Select, Enter=Load d=Delete Esc=Back"
	default:
		instructions = "a=Add e=Edit d=Delete o=AND/OR s=Save p=Presets c=Clear Enter=Apply Esc=Close"
	}
	sections = append(sections, instructionStyle.Render(instructions))

	// Validation / adapter error
	if fp.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(fp.Theme.Error).
			Padding(0, 1).
			Bold(true)
		sections = append(sections, errorStyle.Render("Error: "+fp.validationError))
	}

	if fp.editMode == "presets" {
		sections = append(sections, fp.viewPresets())
	} else {
		sections = append(sections, fp.viewEditor())
	}

	content := strings.Join(sections, "\n")

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fp.Theme.BorderFocused).
		Width(fp.Width).
		Height(fp.Height).
		Padding(1)

	return containerStyle.Render(content)
}

// viewEditor renders the row list and the active edit area
func (fp *FilterPanel) viewEditor() string {
	var sections []string

	opStyle := lipgloss.NewStyle().
		Foreground(fp.Theme.Operator).
		Padding(0, 1).
		Bold(true)
	match := "ALL conditions (AND)"
	if fp.groupOp == models.GroupOr {
		match = "ANY condition (OR)"
	}
	sections = append(sections, opStyle.Render("Match "+match))

	sections = append(sections, "\nConditions:")
	for i, row := range fp.rows {
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == fp.currentIndex && fp.editMode == "" {
			style = style.Background(fp.Theme.Selection).Foreground(fp.Theme.Foreground)
		}
		sections = append(sections, style.Render(fmt.Sprintf(" %d. %s", i+1, fp.rowLine(row))))
	}

	// Edit area
	switch fp.editMode {
	case "field":
		sections = append(sections, "\nSelect field:")
		for i, f := range fp.fields {
			style := lipgloss.NewStyle().Padding(0, 1)
			if i == fp.fieldIndex {
				style = style.Background(fp.Theme.Selection).Foreground(fp.Theme.Foreground)
			}
			sections = append(sections, style.Render("  "+f.Label))
		}
	case "operator":
		sections = append(sections, "\nSelect operator:")
		for i, op := range fp.availableOps {
			style := lipgloss.NewStyle().Padding(0, 1)
			if i == fp.operatorIndex {
				style = style.Background(fp.Theme.Selection).Foreground(fp.Theme.Foreground)
			}
			sections = append(sections, style.Render("  "+filter.Label(op)))
		}
	case "value":
		sections = append(sections, "\nValue: "+fp.valueInput.View())
	case "save":
		label := "Save preset as: "
		if fp.saving {
			label = "Saving... "
		}
		sections = append(sections, "\n"+label+fp.nameInput.View())
	}

	return strings.Join(sections, "\n")
}

// viewPresets renders the saved preset list
func (fp *FilterPanel) viewPresets() string {
	var sections []string

	sections = append(sections, "\nSaved presets:")
	if len(fp.presets) == 0 {
		mutedStyle := lipgloss.NewStyle().Foreground(fp.Theme.Muted).Padding(0, 1)
		sections = append(sections, mutedStyle.Render("  (none)"))
	}
	for i, p := range fp.presets {
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == fp.presetIndex {
			style = style.Background(fp.Theme.Selection).Foreground(fp.Theme.Foreground)
		}
		line := fmt.Sprintf(" %s (%d conditions, %s)",
			p.Name, len(p.Filters.Conditions), strings.ToUpper(string(p.Filters.Operator)))
		sections = append(sections, style.Render(line))
	}

	return strings.Join(sections, "\n")
}
