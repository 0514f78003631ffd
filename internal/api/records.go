package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kherve/lazycrm/internal/models"
)

// RecordQuery is the payload of a record list request. Filters is nil
// when no filter is applied; the key is still sent (as null) so the
// server treats it the same as an absent filter.
type RecordQuery struct {
	Filters *models.FilterGroup `json:"filters"`
	Offset  int                 `json:"offset"`
	Limit   int                 `json:"limit"`
}

// RecordPage is one page of records plus the unpaged total
type RecordPage struct {
	Records []models.Record `json:"records"`
	Total   int             `json:"total"`
}

// QueryRecords fetches one page of an entity list, optionally filtered
func (c *Client) QueryRecords(ctx context.Context, entity models.EntityType, filters *models.FilterGroup, offset, limit int) (*RecordPage, error) {
	query := RecordQuery{Filters: filters, Offset: offset, Limit: limit}

	var page RecordPage
	path := fmt.Sprintf("/api/%s/query", entity)
	if err := c.do(ctx, http.MethodPost, path, nil, query, &page); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	return &page, nil
}
