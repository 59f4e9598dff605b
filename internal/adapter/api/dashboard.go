package api

import (
	"context"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

const layoutPath = "/api/dashboard/layout"

// DashboardAPI are the typed layout accessors. Errors propagate unchanged
// from the client; shape validation is left to the caller.
type DashboardAPI struct {
	client *Client
}

func NewDashboardAPI(client *Client) *DashboardAPI {
	return &DashboardAPI{client: client}
}

func (a *DashboardAPI) GetLayout(ctx context.Context) (*domain.Layout, error) {
	var resp struct {
		Layout *domain.Layout `json:"layout"`
	}
	if err := a.client.Get(ctx, layoutPath, &resp); err != nil {
		return nil, err
	}
	// A null layout is expected absence, not an error.
	return resp.Layout, nil
}

func (a *DashboardAPI) SaveLayout(ctx context.Context, layout domain.Layout) error {
	body := struct {
		Layout domain.Layout `json:"layout"`
	}{Layout: layout}

	var resp struct {
		Success bool          `json:"success"`
		Layout  domain.Layout `json:"layout"`
	}
	return a.client.Post(ctx, layoutPath, body, &resp)
}
