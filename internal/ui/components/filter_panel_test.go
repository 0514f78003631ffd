package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kherve/lazycrm/internal/models"
	"github.com/kherve/lazycrm/internal/ui/theme"
)

func newTestPanel() *FilterPanel {
	fp := NewFilterPanel(models.EntityLeads, theme.DefaultTheme())
	n := 0
	fp.newID = func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
	return fp
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// collect runs a command and returns the message it produces
func collect(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestNewFilterPanel_StartsWithOneEmptyRow(t *testing.T) {
	fp := newTestPanel()

	if len(fp.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(fp.rows))
	}
	if fp.rows[0].Field != "" {
		t.Errorf("expected empty field, got '%s'", fp.rows[0].Field)
	}
	if fp.groupOp != models.GroupAnd {
		t.Errorf("expected AND, got '%s'", fp.groupOp)
	}
	if fp.Applied() != nil {
		t.Error("expected no applied filter")
	}
}

func TestFilterPanel_ToggleGroupOperator(t *testing.T) {
	fp := newTestPanel()

	fp, _ = fp.Update(keyRune('o'))
	if fp.groupOp != models.GroupOr {
		t.Errorf("expected OR after toggle, got '%s'", fp.groupOp)
	}

	fp, _ = fp.Update(keyRune('o'))
	if fp.groupOp != models.GroupAnd {
		t.Errorf("expected AND after second toggle, got '%s'", fp.groupOp)
	}
}

func TestFilterPanel_ApplyEmptySessionSendsNilGroup(t *testing.T) {
	fp := newTestPanel()

	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := collect(t, cmd)

	apply, ok := msg.(ApplyFilterMsg)
	if !ok {
		t.Fatalf("expected ApplyFilterMsg, got %T", msg)
	}
	if apply.Group != nil {
		t.Errorf("expected nil group for an empty session, got %+v", apply.Group)
	}
	if fp.AppliedCount() != 0 {
		t.Errorf("expected badge count 0, got %d", fp.AppliedCount())
	}
}

// buildRow walks the field/operator/value flow for the current row
func buildRow(t *testing.T, fp *FilterPanel, fieldDowns int, opDowns int, value string) *FilterPanel {
	t.Helper()

	fp, _ = fp.Update(keyRune('e'))
	if fp.editMode != "field" {
		t.Fatalf("expected field mode, got '%s'", fp.editMode)
	}
	for i := 0; i < fieldDowns; i++ {
		fp, _ = fp.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	fp, _ = fp.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if fp.editMode != "operator" {
		t.Fatalf("expected operator mode, got '%s'", fp.editMode)
	}
	for i := 0; i < opDowns; i++ {
		fp, _ = fp.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	fp, _ = fp.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if fp.editMode == "value" {
		fp.valueInput.SetValue(value)
		fp, _ = fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return fp
}

func TestFilterPanel_EditFlowBuildsCondition(t *testing.T) {
	fp := newTestPanel()

	// Leads schema: field 0 is name, operator 0 for strings is eq
	fp = buildRow(t, fp, 0, 0, "Ada")

	if fp.editMode != "" {
		t.Errorf("expected navigation mode after value entry, got '%s'", fp.editMode)
	}
	row := fp.rows[0]
	if row.Field != "name" || row.Op != models.OpEqual || row.Value != "Ada" {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestFilterPanel_ApplySendsCompiledGroup(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")

	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := collect(t, cmd)

	apply, ok := msg.(ApplyFilterMsg)
	if !ok {
		t.Fatalf("expected ApplyFilterMsg, got %T", msg)
	}
	if apply.Group == nil {
		t.Fatal("expected a compiled group")
	}
	if len(apply.Group.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(apply.Group.Conditions))
	}
	cond := apply.Group.Conditions[0]
	if cond.Field != "name" || cond.Op != models.OpEqual {
		t.Errorf("unexpected condition: %+v", cond)
	}
	if fp.AppliedCount() != 1 {
		t.Errorf("expected badge count 1, got %d", fp.AppliedCount())
	}
}

func TestFilterPanel_ClearResetsSessionAndAppliesNoFilter(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")
	fp, _ = fp.Update(keyRune('o'))
	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = collect(t, cmd)

	fp, cmd = fp.Update(keyRune('c'))
	msg := collect(t, cmd)

	apply, ok := msg.(ApplyFilterMsg)
	if !ok {
		t.Fatalf("expected ApplyFilterMsg, got %T", msg)
	}
	if apply.Group != nil {
		t.Errorf("expected nil group after clear, got %+v", apply.Group)
	}
	if len(fp.rows) != 1 || fp.rows[0].Field != "" {
		t.Errorf("expected one fresh row, got %+v", fp.rows)
	}
	if fp.groupOp != models.GroupAnd {
		t.Errorf("expected AND after clear, got '%s'", fp.groupOp)
	}
	if fp.Applied() != nil {
		t.Error("expected no applied filter after clear")
	}
}

func TestFilterPanel_RemoveLastRowLeavesFreshRow(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")

	fp, _ = fp.Update(keyRune('d'))

	if len(fp.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(fp.rows))
	}
	if fp.rows[0].Field != "" || fp.rows[0].Value != "" {
		t.Errorf("expected fresh empty row, got %+v", fp.rows[0])
	}
}

func TestFilterPanel_SaveBlockedWithoutCompleteCondition(t *testing.T) {
	fp := newTestPanel()

	fp, _ = fp.Update(keyRune('s'))

	if fp.editMode == "save" {
		t.Error("expected save dialog to stay closed for an empty session")
	}
	if fp.validationError == "" {
		t.Error("expected a validation error")
	}
}

func TestFilterPanel_SaveEmitsSavePresetMsg(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")

	fp, _ = fp.Update(keyRune('s'))
	if fp.editMode != "save" {
		t.Fatalf("expected save mode, got '%s'", fp.editMode)
	}

	fp.nameInput.SetValue("By name")
	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := collect(t, cmd)

	save, ok := msg.(SavePresetMsg)
	if !ok {
		t.Fatalf("expected SavePresetMsg, got %T", msg)
	}
	if save.Name != "By name" {
		t.Errorf("expected name 'By name', got '%s'", save.Name)
	}
	if len(save.Group.Conditions) != 1 {
		t.Errorf("unexpected group: %+v", save.Group)
	}
	if !fp.saving {
		t.Error("expected the panel to be in saving state")
	}
}

func TestFilterPanel_SaveWithBlankNameDoesNothing(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")

	fp, _ = fp.Update(keyRune('s'))
	fp.nameInput.SetValue("   ")
	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no command for a blank name")
	}
	if fp.editMode != "save" {
		t.Errorf("expected save dialog to stay open, got mode '%s'", fp.editMode)
	}
}

func TestFilterPanel_SaveFailureKeepsDialogOpen(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")
	fp, _ = fp.Update(keyRune('s'))
	fp.nameInput.SetValue("By name")
	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = collect(t, cmd)

	fp, _ = fp.Update(PresetSavedMsg{Err: fmt.Errorf("name already taken")})

	if fp.editMode != "save" {
		t.Errorf("expected save dialog to stay open, got mode '%s'", fp.editMode)
	}
	if fp.saving {
		t.Error("expected saving to be reset so the user may retry")
	}
	if !strings.Contains(fp.validationError, "name already taken") {
		t.Errorf("expected the server message to surface, got '%s'", fp.validationError)
	}
}

func TestFilterPanel_SaveSuccessClosesDialog(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")
	fp, _ = fp.Update(keyRune('s'))
	fp.nameInput.SetValue("By name")
	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = collect(t, cmd)

	saved := &models.SavedFilter{ID: 3, Name: "By name", EntityType: "leads"}
	fp, _ = fp.Update(PresetSavedMsg{Preset: saved})

	if fp.editMode != "" {
		t.Errorf("expected navigation mode after save, got '%s'", fp.editMode)
	}
	if len(fp.presets) != 1 || fp.presets[0].ID != 3 {
		t.Errorf("expected the new preset cached, got %+v", fp.presets)
	}
}

func TestFilterPanel_OpenPresetsRequestsLoad(t *testing.T) {
	fp := newTestPanel()

	fp, cmd := fp.Update(keyRune('p'))
	msg := collect(t, cmd)

	if _, ok := msg.(LoadPresetsMsg); !ok {
		t.Fatalf("expected LoadPresetsMsg, got %T", msg)
	}
	if fp.editMode != "presets" {
		t.Errorf("expected presets mode, got '%s'", fp.editMode)
	}
}

func TestFilterPanel_LoadPresetHydratesAndApplies(t *testing.T) {
	fp := newTestPanel()
	fp, cmd := fp.Update(keyRune('p'))
	_ = collect(t, cmd)

	preset := models.SavedFilter{
		ID: 5, Name: "High score", EntityType: "leads",
		Filters: models.FilterGroup{
			Operator: models.GroupOr,
			Conditions: []models.FilterCondition{
				{Field: "score", Op: models.OpGreaterOrEq, Value: models.Scalar("80")},
			},
		},
	}
	fp, _ = fp.Update(PresetsLoadedMsg{Presets: []models.SavedFilter{preset}})

	fp, cmd = fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := collect(t, cmd)

	apply, ok := msg.(ApplyFilterMsg)
	if !ok {
		t.Fatalf("expected ApplyFilterMsg, got %T", msg)
	}
	if apply.Group == nil || apply.Group.Operator != models.GroupOr {
		t.Fatalf("expected the preset group applied, got %+v", apply.Group)
	}
	if fp.rows[0].Field != "score" || fp.rows[0].Value != "80" {
		t.Errorf("expected hydrated row, got %+v", fp.rows[0])
	}
	if fp.editMode != "" {
		t.Errorf("expected navigation mode after load, got '%s'", fp.editMode)
	}
}

func TestFilterPanel_DeletePresetRequestsDelete(t *testing.T) {
	fp := newTestPanel()
	fp, cmd := fp.Update(keyRune('p'))
	_ = collect(t, cmd)
	fp, _ = fp.Update(PresetsLoadedMsg{Presets: []models.SavedFilter{
		{ID: 5, Name: "High score", EntityType: "leads"},
	}})

	fp, cmd = fp.Update(keyRune('d'))
	msg := collect(t, cmd)

	del, ok := msg.(DeletePresetMsg)
	if !ok {
		t.Fatalf("expected DeletePresetMsg, got %T", msg)
	}
	if del.ID != 5 {
		t.Errorf("expected id 5, got %d", del.ID)
	}

	fp, _ = fp.Update(PresetDeletedMsg{ID: 5})
	if len(fp.presets) != 0 {
		t.Errorf("expected preset removed, got %+v", fp.presets)
	}
}

func TestFilterPanel_SetEntityResetsSession(t *testing.T) {
	fp := newTestPanel()
	fp = buildRow(t, fp, 0, 0, "Ada")
	fp, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = collect(t, cmd)

	fp.SetEntity(models.EntityContacts)

	if len(fp.rows) != 1 || fp.rows[0].Field != "" {
		t.Errorf("expected one fresh row, got %+v", fp.rows)
	}
	if fp.Applied() != nil {
		t.Error("expected no applied filter after entity switch")
	}
}

func TestFilterPanel_EscCloses(t *testing.T) {
	fp := newTestPanel()

	_, cmd := fp.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg := collect(t, cmd)

	if _, ok := msg.(CloseFilterPanelMsg); !ok {
		t.Fatalf("expected CloseFilterPanelMsg, got %T", msg)
	}
}

func TestFilterPanel_ViewShowsConditions(t *testing.T) {
	fp := newTestPanel()
	fp.Width = 60
	fp.Height = 24
	fp = buildRow(t, fp, 0, 0, "Ada")

	view := fp.View()
	if !strings.Contains(view, "Name") {
		t.Error("expected the field label in the view")
	}
	if !strings.Contains(view, "Ada") {
		t.Error("expected the value in the view")
	}
}
