package registry

import (
	"sort"
	"time"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
)

const (
	recentConsultationsLimit = 5
	revenueWindowDays        = 7
)

type AppointmentsTodayView struct {
	Count        int                  `json:"count"`
	Appointments []domain.Appointment `json:"appointments"`
}

func renderAppointmentsToday(s store.State) any {
	today := time.Now()
	var todays []domain.Appointment
	for _, a := range s.Appointments {
		if sameDay(a.ScheduledAt, today) && a.Status != domain.AppointmentStatusCancelled {
			todays = append(todays, a)
		}
	}
	sort.Slice(todays, func(i, j int) bool {
		return todays[i].ScheduledAt.Before(todays[j].ScheduledAt)
	})
	return AppointmentsTodayView{Count: len(todays), Appointments: todays}
}

type RevenuePoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type RevenueChartView struct {
	Points []RevenuePoint `json:"points"`
	Total  float64        `json:"total"`
}

// renderRevenueChart buckets consultation revenue per day over the trailing
// window, oldest day first.
func renderRevenueChart(s store.State) any {
	now := time.Now()
	start := now.AddDate(0, 0, -(revenueWindowDays - 1))

	byDay := make(map[string]float64, revenueWindowDays)
	for _, c := range s.Consultations {
		if c.Date.Before(truncateDay(start)) || c.Date.After(now) {
			continue
		}
		byDay[c.Date.Format("2006-01-02")] += c.Price
	}

	view := RevenueChartView{Points: make([]RevenuePoint, 0, revenueWindowDays)}
	for i := 0; i < revenueWindowDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		total := byDay[day]
		view.Points = append(view.Points, RevenuePoint{Date: day, Total: total})
		view.Total += total
	}
	return view
}

type PetsCountView struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

func renderPetsCount(s store.State) any {
	view := PetsCountView{Total: len(s.Pets)}
	for _, p := range s.Pets {
		if p.Active {
			view.Active++
		}
	}
	return view
}

type StockAlertsView struct {
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

func renderStockAlerts(s store.State) any {
	var low []domain.Product
	for _, p := range s.Products {
		if p.Quantity <= p.MinStock {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return StockAlertsView{Count: len(low), Products: low}
}

type RecentConsultationsView struct {
	Consultations []domain.Consultation `json:"consultations"`
}

func renderRecentConsultations(s store.State) any {
	consultations := append([]domain.Consultation(nil), s.Consultations...)
	sort.Slice(consultations, func(i, j int) bool {
		return consultations[i].Date.After(consultations[j].Date)
	})
	if len(consultations) > recentConsultationsLimit {
		consultations = consultations[:recentConsultationsLimit]
	}
	return RecentConsultationsView{Consultations: consultations}
}

type QuickAction struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type QuickActionsView struct {
	Actions []QuickAction `json:"actions"`
}

func renderQuickActions(_ store.State) any {
	return QuickActionsView{Actions: []QuickAction{
		{Label: "Novo Agendamento", Path: "/appointments/new"},
		{Label: "Novo Pet", Path: "/pets/new"},
		{Label: "Nova Consulta", Path: "/consultations/new"},
		{Label: "Novo Produto", Path: "/inventory/new"},
	}}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
