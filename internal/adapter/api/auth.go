package api

import (
	"context"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Me(ctx context.Context) (*domain.User, *domain.Clinic, error) {
	var resp struct {
		User   *domain.User   `json:"user"`
		Clinic *domain.Clinic `json:"clinic"`
	}
	if err := a.client.Get(ctx, "/api/auth/me", &resp); err != nil {
		return nil, nil, err
	}
	return resp.User, resp.Clinic, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Post(ctx, "/api/auth/logout", nil, nil)
}
