package api

import (
	"context"
	"fmt"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

// CatalogAPI lists the clinic's domain collections. Each endpoint takes a
// page-size limit and answers with a single-key envelope named after the
// collection.
type CatalogAPI struct {
	client *Client
}

func NewCatalogAPI(client *Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

func (a *CatalogAPI) ListPets(ctx context.Context, limit int) ([]domain.Pet, error) {
	var resp struct {
		Pets []domain.Pet `json:"pets"`
	}
	if err := a.client.Get(ctx, listPath("pets", limit), &resp); err != nil {
		return nil, err
	}
	return resp.Pets, nil
}

func (a *CatalogAPI) ListGuardians(ctx context.Context, limit int) ([]domain.Guardian, error) {
	var resp struct {
		Guardians []domain.Guardian `json:"guardians"`
	}
	if err := a.client.Get(ctx, listPath("guardians", limit), &resp); err != nil {
		return nil, err
	}
	return resp.Guardians, nil
}

func (a *CatalogAPI) ListVeterinarians(ctx context.Context, limit int) ([]domain.Veterinarian, error) {
	var resp struct {
		Veterinarians []domain.Veterinarian `json:"veterinarians"`
	}
	if err := a.client.Get(ctx, listPath("veterinarians", limit), &resp); err != nil {
		return nil, err
	}
	return resp.Veterinarians, nil
}

func (a *CatalogAPI) ListAppointments(ctx context.Context, limit int) ([]domain.Appointment, error) {
	var resp struct {
		Appointments []domain.Appointment `json:"appointments"`
	}
	if err := a.client.Get(ctx, listPath("appointments", limit), &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

func (a *CatalogAPI) ListConsultations(ctx context.Context, limit int) ([]domain.Consultation, error) {
	var resp struct {
		Consultations []domain.Consultation `json:"consultations"`
	}
	if err := a.client.Get(ctx, listPath("consultations", limit), &resp); err != nil {
		return nil, err
	}
	return resp.Consultations, nil
}

func (a *CatalogAPI) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	var resp struct {
		Products []domain.Product `json:"products"`
	}
	if err := a.client.Get(ctx, listPath("products", limit), &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func listPath(collection string, limit int) string {
	return fmt.Sprintf("/api/%s?limit=%d", collection, limit)
}
