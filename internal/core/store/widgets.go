package store

import (
	"context"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

// SetDashboardWidgets replaces the whole widget collection.
func (s *Store) SetDashboardWidgets(ctx context.Context, widgets []domain.Widget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DashboardWidgets = widgets
	s.persistLocked(ctx)
}

func (s *Store) AddDashboardWidget(ctx context.Context, w domain.Widget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DashboardWidgets = append(s.state.DashboardWidgets, w)
	s.persistLocked(ctx)
}

// UpdateDashboardWidget applies the mutator to the widget matched by ID,
// leaving every other widget untouched. Unknown IDs are a no-op; no new
// element is inserted.
func (s *Store) UpdateDashboardWidget(ctx context.Context, id string, mutate func(*domain.Widget)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.DashboardWidgets {
		if s.state.DashboardWidgets[i].ID == id {
			mutate(&s.state.DashboardWidgets[i])
			s.persistLocked(ctx)
			return
		}
	}
}

func (s *Store) RemoveDashboardWidget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DashboardWidgets = removeByID(s.state.DashboardWidgets, id, func(w domain.Widget) string { return w.ID })
	s.persistLocked(ctx)
}

// ToggleWidgetVisibility flips the visible flag of the widget matched by ID.
func (s *Store) ToggleWidgetVisibility(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.DashboardWidgets {
		if s.state.DashboardWidgets[i].ID == id {
			s.state.DashboardWidgets[i].Visible = !s.state.DashboardWidgets[i].Visible
			s.persistLocked(ctx)
			return
		}
	}
}

// LoadDashboardLayout fetches the saved layout through the dashboard
// service. Success with data replaces the whole widget collection, with
// each title re-derived from the type since the persisted shape omits it.
// Failure or an absent saved layout leaves the current (default) collection
// untouched.
func (s *Store) LoadDashboardLayout(ctx context.Context) {
	result := s.dash.LoadLayout(ctx)
	if !result.Success || result.Data == nil {
		return
	}

	widgets := result.Data.Widgets
	for i := range widgets {
		widgets[i].Title = domain.TitleForType(widgets[i].Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DashboardWidgets = widgets
	s.persistLocked(ctx)
}

// SaveDashboardLayout serializes the current widget collection and sends it
// through the dashboard service. Fire and forget: failures are logged by
// the service and not surfaced here.
func (s *Store) SaveDashboardLayout(ctx context.Context) {
	s.mu.Lock()
	widgets := append([]domain.Widget(nil), s.state.DashboardWidgets...)
	s.mu.Unlock()

	s.dash.SaveLayout(ctx, domain.Layout{Widgets: widgets})
}
