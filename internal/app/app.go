package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kherve/lazycrm/internal/api"
	"github.com/kherve/lazycrm/internal/config"
	"github.com/kherve/lazycrm/internal/export"
	"github.com/kherve/lazycrm/internal/history"
	"github.com/kherve/lazycrm/internal/models"
	"github.com/kherve/lazycrm/internal/presets"
	"github.com/kherve/lazycrm/internal/schema"
	"github.com/kherve/lazycrm/internal/ui/components"
	"github.com/kherve/lazycrm/internal/ui/help"
	"github.com/kherve/lazycrm/internal/ui/theme"
)

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme

	client  *api.Client
	presets *presets.Manager
	history *history.Store // nil when history is disabled

	table  *components.RecordTable
	panels map[models.EntityType]*components.FilterPanel

	// Filter panel overlay
	showFilterPanel bool

	// Filter history overlay
	showHistory    bool
	historyEntries []history.Entry
	historyIndex   int

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay

	exportDir     string
	statusMessage string
	loading       bool
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// LoadRecordsMsg requests loading a page of the active entity list
type LoadRecordsMsg struct {
	Entity models.EntityType
	Offset int
}

// RecordsLoadedMsg is sent when a record page arrived
type RecordsLoadedMsg struct {
	Entity  models.EntityType
	Offset  int
	Page    *api.RecordPage
	Applied *models.FilterGroup
	Err     error
}

// ExportDoneMsg is sent when a record export finished
type ExportDoneMsg struct {
	Path string
	Err  error
}

// HistoryLoadedMsg carries the recent applied-filter entries
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// New creates a new App instance
func New(cfg *config.Config, client *api.Client, presetMgr *presets.Manager, hist *history.Store, exportDir string) *App {
	state := models.NewAppState()

	themeName := "default"
	if cfg != nil && cfg.UI.Theme != "" {
		themeName = cfg.UI.Theme
	}
	th := theme.GetTheme(themeName)

	panels := make(map[models.EntityType]*components.FilterPanel)
	for _, entity := range models.AllEntityTypes() {
		panels[entity] = components.NewFilterPanel(entity, th)
	}

	table := components.NewRecordTable(th)
	if cfg != nil && cfg.Data.MaxCellDisplayLength > 0 {
		table.MaxCellWidth = cfg.Data.MaxCellDisplayLength
	}

	return &App{
		state:        state,
		config:       cfg,
		theme:        th,
		client:       client,
		presets:      presetMgr,
		history:      hist,
		table:        table,
		panels:       panels,
		errorOverlay: components.NewErrorOverlay(th),
		exportDir:    exportDir,
	}
}

// activePanel returns the filter panel of the active entity type
func (a *App) activePanel() *components.FilterPanel {
	return a.panels[a.state.ActiveEntity]
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.loadRecords(a.state.ActiveEntity, 0)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case components.ApplyFilterMsg:
		// Compiled group handed off by the panel; reload from page zero
		a.showFilterPanel = false
		return a, a.loadRecords(a.state.ActiveEntity, 0)

	case components.CloseFilterPanelMsg:
		a.showFilterPanel = false
		return a, nil

	case components.SavePresetMsg:
		return a, a.savePreset(a.state.ActiveEntity, msg.Name, msg.Group)

	case components.LoadPresetsMsg:
		return a, a.loadPresets(a.state.ActiveEntity)

	case components.DeletePresetMsg:
		return a, a.deletePreset(a.state.ActiveEntity, msg.ID)

	case components.PresetSavedMsg, components.PresetsLoadedMsg, components.PresetDeletedMsg:
		panel, cmd := a.activePanel().Update(msg)
		a.panels[a.state.ActiveEntity] = panel
		return a, cmd

	case HistoryLoadedMsg:
		if msg.Err != nil {
			a.ShowError("History Error", msg.Err.Error())
			return a, nil
		}
		a.showHistory = true
		a.historyEntries = msg.Entries
		a.historyIndex = 0
		return a, nil

	case LoadRecordsMsg:
		return a, a.loadRecords(msg.Entity, msg.Offset)

	case RecordsLoadedMsg:
		return a.handleRecordsLoaded(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			a.ShowError("Export Failed", msg.Err.Error())
			return a, nil
		}
		a.statusMessage = "Exported to " + msg.Path
		return a, nil

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.table.Width = msg.Width - 4
		a.table.Height = msg.Height - 6
		return a, nil
	}
	return a, nil
}

// handleKey routes keyboard input
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Error overlay consumes everything but quit
	if a.showError {
		if key == "esc" || key == "enter" {
			a.DismissError()
			return a, nil
		}
		if key == "q" || key == "ctrl+c" {
			return a, tea.Quit
		}
		return a, nil
	}

	if a.showHistory {
		return a.handleHistoryKey(key)
	}

	// Filter panel owns the keyboard while open
	if a.showFilterPanel {
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		panel, cmd := a.activePanel().Update(msg)
		a.panels[a.state.ActiveEntity] = panel
		return a, cmd
	}

	switch key {
	case "q", "ctrl+c":
		if a.state.ViewMode == models.HelpMode {
			a.state.ViewMode = models.NormalMode
			return a, nil
		}
		return a, tea.Quit
	case "?":
		if a.state.ViewMode == models.HelpMode {
			a.state.ViewMode = models.NormalMode
		} else {
			a.state.ViewMode = models.HelpMode
		}
	case "esc":
		if a.state.ViewMode == models.HelpMode {
			a.state.ViewMode = models.NormalMode
		}
	case "f":
		a.showFilterPanel = true
		a.statusMessage = ""
	case "h":
		return a, a.loadHistory(a.state.ActiveEntity)
	case "r", "f5":
		return a, a.loadRecords(a.state.ActiveEntity, 0)
	case "tab":
		return a.switchEntity(nextEntity(a.state.ActiveEntity))
	case "1", "2", "3", "4", "5":
		entities := models.AllEntityTypes()
		idx := int(key[0] - '1')
		return a.switchEntity(entities[idx])
	case "x":
		return a, a.exportRecords("csv")
	case "X":
		return a, a.exportRecords("json")
	case "up", "k":
		a.table.MoveSelection(-1)
	case "down", "j":
		a.table.MoveSelection(1)
		// Lazy loading near the end of the loaded window
		if a.table.SelectedRow >= len(a.table.Rows)-10 &&
			len(a.table.Rows) < a.table.TotalRows && !a.loading {
			return a, a.loadRecords(a.state.ActiveEntity, len(a.table.Rows))
		}
	case "ctrl+u":
		a.table.PageUp()
	case "ctrl+d":
		a.table.PageDown()
	}
	return a, nil
}

// handleHistoryKey handles keys while the history overlay is open
func (a *App) handleHistoryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "q", "h":
		a.showHistory = false
	case "up", "k":
		if a.historyIndex > 0 {
			a.historyIndex--
		}
	case "down", "j":
		if a.historyIndex < len(a.historyEntries)-1 {
			a.historyIndex++
		}
	case "enter":
		if a.historyIndex >= len(a.historyEntries) {
			return a, nil
		}
		entry := a.historyEntries[a.historyIndex]
		a.showHistory = false
		panel, cmd := a.activePanel().ApplyGroup(entry.Filters)
		a.panels[a.state.ActiveEntity] = panel
		return a, cmd
	}
	return a, nil
}

// loadHistory fetches the recent applied filters of an entity type
func (a *App) loadHistory(entity models.EntityType) tea.Cmd {
	if a.history == nil {
		a.statusMessage = "Filter history is disabled"
		return nil
	}
	store := a.history
	return func() tea.Msg {
		entries, err := store.GetRecent(entity, 20)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// switchEntity activates another entity list and loads its first page
func (a *App) switchEntity(entity models.EntityType) (tea.Model, tea.Cmd) {
	if entity == a.state.ActiveEntity {
		return a, nil
	}
	a.state.ActiveEntity = entity
	a.statusMessage = ""
	return a, a.loadRecords(entity, 0)
}

// nextEntity returns the entity after the given one, wrapping around
func nextEntity(entity models.EntityType) models.EntityType {
	entities := models.AllEntityTypes()
	for i, e := range entities {
		if e == entity {
			return entities[(i+1)%len(entities)]
		}
	}
	return entities[0]
}

// pageSize returns the configured list page size, defaulted when the
// app runs without a config
func (a *App) pageSize() int {
	if a.config != nil && a.config.Data.PageSize > 0 {
		return a.config.Data.PageSize
	}
	return 50
}

// loadRecords fetches one page of the entity list with its active filter
func (a *App) loadRecords(entity models.EntityType, offset int) tea.Cmd {
	a.loading = true
	applied := a.panels[entity].Applied()
	limit := a.pageSize()
	client := a.client

	return func() tea.Msg {
		page, err := client.QueryRecords(context.Background(), entity, applied, offset, limit)
		return RecordsLoadedMsg{Entity: entity, Offset: offset, Page: page, Applied: applied, Err: err}
	}
}

// handleRecordsLoaded applies a fetched page to the table
func (a *App) handleRecordsLoaded(msg RecordsLoadedMsg) (tea.Model, tea.Cmd) {
	a.loading = false
	if msg.Err != nil {
		a.ShowError("API Error", fmt.Sprintf("Failed to load %s:\n\n%v", msg.Entity, msg.Err))
		return a, nil
	}
	if msg.Entity != a.state.ActiveEntity {
		// A page from a previously active entity; drop it
		return a, nil
	}

	fields := schema.Fields(msg.Entity)
	if msg.Offset == 0 {
		a.table.SetData(fields, msg.Page.Records, msg.Page.Total)
	} else {
		a.table.Append(msg.Page.Records, msg.Page.Total)
	}

	// Log applied filters on fresh loads only, not on pagination
	if a.history != nil && msg.Offset == 0 && msg.Applied != nil {
		maxEntries := 1000
		if a.config != nil && a.config.History.MaxEntries > 0 {
			maxEntries = a.config.History.MaxEntries
		}
		_ = a.history.Add(msg.Entity, *msg.Applied, msg.Page.Total)
		_ = a.history.Prune(maxEntries)
	}
	return a, nil
}

// savePreset persists a named preset through the preset manager
func (a *App) savePreset(entity models.EntityType, name string, group models.FilterGroup) tea.Cmd {
	mgr := a.presets
	return func() tea.Msg {
		saved, err := mgr.Create(context.Background(), name, entity, &group)
		return components.PresetSavedMsg{Preset: saved, Err: err}
	}
}

// loadPresets fetches the preset list of an entity type
func (a *App) loadPresets(entity models.EntityType) tea.Cmd {
	mgr := a.presets
	return func() tea.Msg {
		saved, err := mgr.List(context.Background(), entity)
		if err != nil && saved != nil {
			// Offline snapshot served; show it rather than the error
			return components.PresetsLoadedMsg{Presets: saved}
		}
		return components.PresetsLoadedMsg{Presets: saved, Err: err}
	}
}

// deletePreset removes a preset by server id
func (a *App) deletePreset(entity models.EntityType, id int) tea.Cmd {
	mgr := a.presets
	return func() tea.Msg {
		err := mgr.Delete(context.Background(), entity, id)
		return components.PresetDeletedMsg{ID: id, Err: err}
	}
}

// exportRecords writes the loaded rows to a CSV or JSON file
func (a *App) exportRecords(format string) tea.Cmd {
	if len(a.table.Rows) == 0 {
		return func() tea.Msg {
			return ExportDoneMsg{Err: fmt.Errorf("no records to export")}
		}
	}

	entity := a.state.ActiveEntity
	fields := schema.Fields(entity)
	rows := a.table.Rows
	name := fmt.Sprintf("%s-%s.%s", entity, time.Now().Format("20060102-150405"), format)
	path := filepath.Join(a.exportDir, name)

	return func() tea.Msg {
		var err error
		if format == "json" {
			err = export.ExportToJSON(rows, path)
		} else {
			err = export.ExportToCSV(fields, rows, path)
		}
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		return ExportDoneMsg{Path: path}
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height)
	}

	if a.showHistory {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.renderHistory(),
		)
	}

	if a.showFilterPanel {
		panel := a.activePanel()
		panel.Width = min(a.state.Width-8, 70)
		panel.Height = min(a.state.Height-4, 30)
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			panel.View(),
		)
	}

	header := a.renderHeader()
	listPanel := components.Panel{
		Title:   a.state.ActiveEntity.Label(),
		Badge:   a.filterBadge(),
		Content: a.table.View(),
		Width:   a.state.Width - 2,
		Height:  a.state.Height - 4,
		Style:   lipgloss.NewStyle().BorderForeground(a.theme.BorderFocused),
	}

	status := a.renderStatus()
	return header + "\n" + listPanel.View() + "\n" + status
}

// renderHistory renders the recent applied-filter list
func (a *App) renderHistory() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Info)
	b.WriteString(titleStyle.Render("Recent filters · " + a.state.ActiveEntity.Label()))
	b.WriteString("\n\n")

	if len(a.historyEntries) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(a.theme.Muted).Render("(none yet)"))
	}
	for i, e := range a.historyEntries {
		line := fmt.Sprintf(" %s · %d conditions (%s) · %d results",
			e.AppliedAt.Format("Jan 02 15:04"),
			len(e.Filters.Conditions),
			strings.ToUpper(string(e.Filters.Operator)),
			e.ResultCount)
		style := lipgloss.NewStyle()
		if i == a.historyIndex {
			style = style.Background(a.theme.Selection).Foreground(a.theme.Foreground)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hintStyle := lipgloss.NewStyle().Foreground(a.theme.Muted).Italic(true)
	b.WriteString(hintStyle.Render("Enter=Re-apply Esc=Close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.BorderFocused).
		Width(min(a.state.Width-8, 70)).
		Padding(1, 2).
		Render(b.String())
}

// renderHeader renders the entity tab bar
func (a *App) renderHeader() string {
	tabStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(a.theme.Muted)
	activeStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Foreground(a.theme.Foreground).Background(a.theme.Selection)

	var tabs []string
	for i, entity := range models.AllEntityTypes() {
		label := fmt.Sprintf("%d:%s", i+1, entity.Label())
		if entity == a.state.ActiveEntity {
			tabs = append(tabs, activeStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// filterBadge shows the active condition count while the panel is closed
func (a *App) filterBadge() string {
	count := a.activePanel().AppliedCount()
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%d filters", count)
}

// renderStatus renders the bottom status line
func (a *App) renderStatus() string {
	msg := a.statusMessage
	if a.loading {
		msg = "Loading..."
	}
	if msg == "" {
		msg = "f=Filters ?=Help q=Quit"
	}
	return lipgloss.NewStyle().Foreground(a.theme.Muted).Padding(0, 1).Render(msg)
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.Set(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
