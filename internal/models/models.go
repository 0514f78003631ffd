package models

// AppState holds the application state
type AppState struct {
	Width  int
	Height int

	ViewMode     ViewMode
	ActiveEntity EntityType
}

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:        80,
		Height:       24,
		ViewMode:     NormalMode,
		ActiveEntity: EntityLeads,
	}
}
