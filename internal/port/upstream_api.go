package port

import (
	"context"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

type DashboardAPI interface {
	// GetLayout fetches the saved layout; a nil layout with nil error means
	// no layout has been persisted yet
	GetLayout(ctx context.Context) (*domain.Layout, error)

	// SaveLayout persists the layout for the authenticated user
	SaveLayout(ctx context.Context, layout domain.Layout) error
}

type AuthAPI interface {
	// Me returns the current session's user and clinic, or an error when the
	// session is invalid
	Me(ctx context.Context) (*domain.User, *domain.Clinic, error)

	// Logout invalidates the server-side session; the response body is ignored
	Logout(ctx context.Context) error
}

type CatalogAPI interface {
	ListPets(ctx context.Context, limit int) ([]domain.Pet, error)
	ListGuardians(ctx context.Context, limit int) ([]domain.Guardian, error)
	ListVeterinarians(ctx context.Context, limit int) ([]domain.Veterinarian, error)
	ListAppointments(ctx context.Context, limit int) ([]domain.Appointment, error)
	ListConsultations(ctx context.Context, limit int) ([]domain.Consultation, error)
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
}
