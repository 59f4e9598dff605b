// Package registry maps widget types to view-model renderers.
package registry

import (
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
)

// Renderer derives a widget's presentation value from a store snapshot.
// Renderers never fetch; they assume the relevant collection was populated
// by a page-level load.
type Renderer func(s store.State) any

// Rendered is one widget ready for display, keyed by the widget's stable ID
// for list reconciliation.
type Rendered struct {
	ID       string            `json:"id"`
	Type     domain.WidgetType `json:"type"`
	Title    string            `json:"title"`
	Position domain.Position   `json:"position"`
	Size     domain.Size       `json:"size"`
	View     any               `json:"view"`
}

type Registry struct {
	renderers map[domain.WidgetType]Renderer
}

// New returns a registry with the built-in widget kinds registered.
func New() *Registry {
	r := &Registry{renderers: make(map[domain.WidgetType]Renderer)}
	r.Register(domain.WidgetAppointmentsToday, renderAppointmentsToday)
	r.Register(domain.WidgetRevenueChart, renderRevenueChart)
	r.Register(domain.WidgetPetsCount, renderPetsCount)
	r.Register(domain.WidgetStockAlerts, renderStockAlerts)
	r.Register(domain.WidgetRecentConsultations, renderRecentConsultations)
	r.Register(domain.WidgetQuickActions, renderQuickActions)
	return r
}

func (r *Registry) Register(t domain.WidgetType, fn Renderer) {
	r.renderers[t] = fn
}

// Knows reports whether a widget type has a registered renderer.
func (r *Registry) Knows(t domain.WidgetType) bool {
	_, ok := r.renderers[t]
	return ok
}

// Render produces the display list for the given widgets. Widgets with an
// unregistered type yield nothing: a persisted layout referencing a
// since-removed kind degrades silently instead of breaking the dashboard.
func (r *Registry) Render(widgets []domain.Widget, s store.State) []Rendered {
	out := make([]Rendered, 0, len(widgets))
	for _, w := range widgets {
		fn, ok := r.renderers[w.Type]
		if !ok {
			continue
		}
		title := w.Title
		if title == "" {
			title = domain.TitleForType(w.Type)
		}
		out = append(out, Rendered{
			ID:       w.ID,
			Type:     w.Type,
			Title:    title,
			Position: w.Position,
			Size:     w.Size,
			View:     fn(s),
		})
	}
	return out
}
