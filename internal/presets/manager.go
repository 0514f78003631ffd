package presets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kherve/lazycrm/internal/models"
)

// API is the slice of the CRM client the manager needs
type API interface {
	ListSavedFilters(ctx context.Context, entity models.EntityType) ([]models.SavedFilter, error)
	CreateSavedFilter(ctx context.Context, name string, entity models.EntityType, group models.FilterGroup) (*models.SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, id int) error
}

// Manager manages saved filter presets. The server owns preset
// lifetime; the manager keeps a read-through cache per entity type and
// an offline yaml snapshot in the config dir so the last known presets
// survive an unreachable API.
type Manager struct {
	api      API
	path     string
	byEntity map[models.EntityType][]models.SavedFilter
}

// NewManager creates a new preset manager. The snapshot lives at
// <configDir>/presets.yaml and is loaded lazily on the first failed
// list.
func NewManager(api API, configDir string) *Manager {
	return &Manager{
		api:      api,
		path:     filepath.Join(configDir, "presets.yaml"),
		byEntity: make(map[models.EntityType][]models.SavedFilter),
	}
}

// List returns the presets of an entity type, refreshing the cache
// from the server. When the server is unreachable it serves the last
// snapshot instead and still reports the error.
func (m *Manager) List(ctx context.Context, entity models.EntityType) ([]models.SavedFilter, error) {
	saved, err := m.api.ListSavedFilters(ctx, entity)
	if err != nil {
		if cached, ok := m.snapshot(entity); ok {
			return cached, err
		}
		return nil, err
	}

	m.byEntity[entity] = saved
	if err := m.writeSnapshot(); err != nil {
		// Snapshot failures don't invalidate a successful list
		return saved, nil
	}
	return saved, nil
}

// Create persists a new named preset. An empty name or an empty group
// never reaches the server; the panel disables save in those cases and
// this guards the same invariant.
func (m *Manager) Create(ctx context.Context, name string, entity models.EntityType, group *models.FilterGroup) (*models.SavedFilter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("preset name cannot be empty")
	}
	if group == nil || len(group.Conditions) == 0 {
		return nil, fmt.Errorf("preset filter cannot be empty")
	}

	saved, err := m.api.CreateSavedFilter(ctx, name, entity, *group)
	if err != nil {
		return nil, err
	}

	m.byEntity[entity] = append(m.byEntity[entity], *saved)
	_ = m.writeSnapshot()
	return saved, nil
}

// Delete removes a preset by server id
func (m *Manager) Delete(ctx context.Context, entity models.EntityType, id int) error {
	if err := m.api.DeleteSavedFilter(ctx, id); err != nil {
		return err
	}

	cached := m.byEntity[entity]
	for i, p := range cached {
		if p.ID == id {
			m.byEntity[entity] = append(cached[:i], cached[i+1:]...)
			break
		}
	}
	_ = m.writeSnapshot()
	return nil
}

// Cached returns the cached presets of an entity type without hitting
// the server
func (m *Manager) Cached(entity models.EntityType) []models.SavedFilter {
	return m.byEntity[entity]
}

// snapshot returns the snapshot entries for an entity, loading the
// yaml file on first use
func (m *Manager) snapshot(entity models.EntityType) ([]models.SavedFilter, bool) {
	if cached, ok := m.byEntity[entity]; ok {
		return cached, true
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, false
	}
	var all []models.SavedFilter
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, false
	}

	// The in-memory cache is fresher than the file; only fill entity
	// types the file knows and memory doesn't, otherwise entries cached
	// from a live list would double up.
	fromFile := make(map[models.EntityType][]models.SavedFilter)
	for _, p := range all {
		e := models.EntityType(p.EntityType)
		fromFile[e] = append(fromFile[e], p)
	}
	for e, saved := range fromFile {
		if _, ok := m.byEntity[e]; !ok {
			m.byEntity[e] = saved
		}
	}

	cached, ok := m.byEntity[entity]
	return cached, ok
}

// writeSnapshot saves every cached preset to the yaml snapshot file
func (m *Manager) writeSnapshot() error {
	var all []models.SavedFilter
	for _, entity := range models.AllEntityTypes() {
		all = append(all, m.byEntity[entity]...)
	}

	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}
	return nil
}
