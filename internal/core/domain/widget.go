package domain

type WidgetType string

const (
	WidgetAppointmentsToday   WidgetType = "appointments-today"
	WidgetRevenueChart        WidgetType = "revenue-chart"
	WidgetPetsCount           WidgetType = "pets-count"
	WidgetStockAlerts         WidgetType = "stock-alerts"
	WidgetRecentConsultations WidgetType = "recent-consultations"
	WidgetQuickActions        WidgetType = "quick-actions"
)

// Position is a grid-cell coordinate, column-major from the top left.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a widget extent in grid cells.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Widget is one positioned dashboard panel. Title is derived from Type and
// never serialized; persisted layouts carry only id/type/position/size/visible.
type Widget struct {
	ID       string         `json:"id"`
	Type     WidgetType     `json:"type"`
	Title    string         `json:"-"`
	Position Position       `json:"position"`
	Size     Size           `json:"size"`
	Visible  bool           `json:"visible"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Layout is the serializable snapshot of a widget collection, the shape
// round-tripped to the backend keyed by the authenticated user.
type Layout struct {
	Widgets []Widget `json:"widgets"`
}

var widgetTitles = map[WidgetType]string{
	WidgetAppointmentsToday:   "Agendamentos de Hoje",
	WidgetRevenueChart:        "Faturamento",
	WidgetPetsCount:           "Total de Pets",
	WidgetStockAlerts:         "Alertas de Estoque",
	WidgetRecentConsultations: "Consultas Recentes",
	WidgetQuickActions:        "Ações Rápidas",
}

// TitleForType returns the display title for a widget type, or "" for an
// unknown type.
func TitleForType(t WidgetType) string {
	return widgetTitles[t]
}

// DefaultWidgets returns the widget set installed for a fresh session. IDs
// double as the stable type identifiers.
func DefaultWidgets() []Widget {
	return []Widget{
		{ID: string(WidgetAppointmentsToday), Type: WidgetAppointmentsToday, Title: widgetTitles[WidgetAppointmentsToday], Position: Position{X: 0, Y: 0}, Size: Size{W: 6, H: 4}, Visible: true},
		{ID: string(WidgetRevenueChart), Type: WidgetRevenueChart, Title: widgetTitles[WidgetRevenueChart], Position: Position{X: 6, Y: 0}, Size: Size{W: 6, H: 4}, Visible: true},
		{ID: string(WidgetPetsCount), Type: WidgetPetsCount, Title: widgetTitles[WidgetPetsCount], Position: Position{X: 0, Y: 4}, Size: Size{W: 3, H: 3}, Visible: true},
		{ID: string(WidgetStockAlerts), Type: WidgetStockAlerts, Title: widgetTitles[WidgetStockAlerts], Position: Position{X: 3, Y: 4}, Size: Size{W: 3, H: 3}, Visible: true},
		{ID: string(WidgetRecentConsultations), Type: WidgetRecentConsultations, Title: widgetTitles[WidgetRecentConsultations], Position: Position{X: 6, Y: 4}, Size: Size{W: 6, H: 4}, Visible: true},
		{ID: string(WidgetQuickActions), Type: WidgetQuickActions, Title: widgetTitles[WidgetQuickActions], Position: Position{X: 0, Y: 7}, Size: Size{W: 6, H: 3}, Visible: true},
	}
}
