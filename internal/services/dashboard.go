package services

import (
	"context"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/transport"
)

// Dashboard fetches the aggregate numbers for the dashboard home.
type Dashboard struct {
	api *transport.Client
}

// NewDashboard builds the dashboard client.
func NewDashboard(api *transport.Client) *Dashboard {
	return &Dashboard{api: api}
}

// Stats returns the dashboard aggregates.
func (d *Dashboard) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var out struct {
		Stats domain.DashboardStats `json:"stats"`
	}
	if err := d.api.Get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
