package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kherve/lazycrm/internal/models"
)

// ListSavedFilters returns the saved filters of one entity type
func (c *Client) ListSavedFilters(ctx context.Context, entity models.EntityType) ([]models.SavedFilter, error) {
	query := url.Values{"entity_type": {string(entity)}}

	var saved []models.SavedFilter
	if err := c.do(ctx, http.MethodGet, "/api/saved_filters", query, nil, &saved); err != nil {
		return nil, fmt.Errorf("failed to list saved filters: %w", err)
	}
	return saved, nil
}

// CreateSavedFilter persists a named filter group and returns it with
// its server-assigned id
func (c *Client) CreateSavedFilter(ctx context.Context, name string, entity models.EntityType, group models.FilterGroup) (*models.SavedFilter, error) {
	body := struct {
		Name       string             `json:"name"`
		EntityType string             `json:"entity_type"`
		Filters    models.FilterGroup `json:"filters"`
	}{name, string(entity), group}

	var saved models.SavedFilter
	if err := c.do(ctx, http.MethodPost, "/api/saved_filters", nil, body, &saved); err != nil {
		return nil, fmt.Errorf("failed to create saved filter: %w", err)
	}
	return &saved, nil
}

// DeleteSavedFilter removes a saved filter by its server id
func (c *Client) DeleteSavedFilter(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/saved_filters/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete saved filter %d: %w", id, err)
	}
	return nil
}
