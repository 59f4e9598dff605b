// Package store is the single source of truth for session state, domain
// collections, and the dashboard widget collection. All mutation goes
// through action methods; reads go through Snapshot.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/service"
	"github.com/gabrielnatan/petinova-2-sub000/internal/port"
)

const collectionPageSize = 100

// State is a point-in-time copy of everything the store holds. Collections
// are the last-fetched snapshots; there is no consistency guarantee beyond
// last write wins.
type State struct {
	User             *domain.User
	CurrentClinic    *domain.Clinic
	IsAuthenticated  bool
	SidebarCollapsed bool

	Pets          []domain.Pet
	Guardians     []domain.Guardian
	Veterinarians []domain.Veterinarian
	Appointments  []domain.Appointment
	Consultations []domain.Consultation
	Products      []domain.Product

	DashboardWidgets []domain.Widget
}

// persistedState is the whitelisted projection that survives restarts.
// Everything else is empty at cold start and must be re-fetched.
type persistedState struct {
	User             *domain.User    `json:"user"`
	CurrentClinic    *domain.Clinic  `json:"currentClinic"`
	IsAuthenticated  bool            `json:"isAuthenticated"`
	DashboardWidgets []domain.Widget `json:"dashboardWidgets"`
	SidebarCollapsed bool            `json:"sidebarCollapsed"`
}

type Store struct {
	mu    sync.Mutex
	key   string
	state State

	states  port.StateRepository
	dash    *service.DashboardService
	auth    port.AuthAPI
	catalog port.CatalogAPI
	log     *zap.SugaredLogger
}

// New builds a store for one session key, hydrating the persisted subset
// when a blob exists and installing the default widget set otherwise.
func New(ctx context.Context, key string, states port.StateRepository, dash *service.DashboardService, auth port.AuthAPI, catalog port.CatalogAPI, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Store{
		key:     key,
		states:  states,
		dash:    dash,
		auth:    auth,
		catalog: catalog,
		log:     log,
	}
	s.state.DashboardWidgets = domain.DefaultWidgets()
	s.hydrate(ctx)
	return s
}

// Snapshot returns a copy of the current state. Slices are copied so
// callers can read without racing the next action.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

func (s *Store) copyStateLocked() State {
	cp := s.state
	cp.Pets = append([]domain.Pet(nil), s.state.Pets...)
	cp.Guardians = append([]domain.Guardian(nil), s.state.Guardians...)
	cp.Veterinarians = append([]domain.Veterinarian(nil), s.state.Veterinarians...)
	cp.Appointments = append([]domain.Appointment(nil), s.state.Appointments...)
	cp.Consultations = append([]domain.Consultation(nil), s.state.Consultations...)
	cp.Products = append([]domain.Product(nil), s.state.Products...)
	cp.DashboardWidgets = append([]domain.Widget(nil), s.state.DashboardWidgets...)
	return cp
}

// Login sets the session fields atomically. The caller has already
// authenticated against the upstream; no network call happens here.
func (s *Store) Login(ctx context.Context, user domain.User, clinic domain.Clinic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = &user
	s.state.CurrentClinic = &clinic
	s.state.IsAuthenticated = true
	s.persistLocked(ctx)
}

// Logout invalidates the upstream session best-effort, then unconditionally
// clears all session and domain state. The client never stays in a state
// claiming authentication after a logout attempt, even when the upstream
// call fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warnw("upstream logout failed", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{DashboardWidgets: domain.DefaultWidgets()}
	if err := s.states.Delete(ctx, s.key); err != nil {
		s.log.Warnw("persisted state delete failed", "error", err)
	}
}

// CheckAuth refreshes the session from the upstream. Success sets the
// session fields; any failure clears them. It never returns an error and is
// idempotent from either session state.
func (s *Store) CheckAuth(ctx context.Context) {
	user, clinic, err := s.auth.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || user == nil {
		s.state.User = nil
		s.state.CurrentClinic = nil
		s.state.IsAuthenticated = false
	} else {
		s.state.User = user
		s.state.CurrentClinic = clinic
		s.state.IsAuthenticated = true
	}
	s.persistLocked(ctx)
}

// SetSidebarCollapsed flips the persisted sidebar flag.
func (s *Store) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SidebarCollapsed = collapsed
	s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(persistedState{
		User:             s.state.User,
		CurrentClinic:    s.state.CurrentClinic,
		IsAuthenticated:  s.state.IsAuthenticated,
		DashboardWidgets: s.state.DashboardWidgets,
		SidebarCollapsed: s.state.SidebarCollapsed,
	})
	if err != nil {
		s.log.Errorw("state marshal failed", "error", err)
		return
	}
	if err := s.states.Save(ctx, s.key, payload); err != nil {
		s.log.Warnw("state persist failed", "error", err)
	}
}

func (s *Store) hydrate(ctx context.Context) {
	payload, err := s.states.Load(ctx, s.key)
	if err != nil {
		s.log.Warnw("state hydrate failed", "error", err)
		return
	}
	if payload == nil {
		return
	}

	var saved persistedState
	if err := json.Unmarshal(payload, &saved); err != nil {
		s.log.Warnw("state blob unreadable, using defaults", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = saved.User
	s.state.CurrentClinic = saved.CurrentClinic
	s.state.IsAuthenticated = saved.IsAuthenticated
	s.state.SidebarCollapsed = saved.SidebarCollapsed
	if len(saved.DashboardWidgets) > 0 {
		// Titles are never serialized; re-derive them from the type.
		for i := range saved.DashboardWidgets {
			saved.DashboardWidgets[i].Title = domain.TitleForType(saved.DashboardWidgets[i].Type)
		}
		s.state.DashboardWidgets = saved.DashboardWidgets
	}
}

// APIFactory builds the upstream accessors for one session key. The key is
// the session's bearer token, so every store talks upstream with its own
// credentials.
type APIFactory func(key string) (*service.DashboardService, port.AuthAPI, port.CatalogAPI)

// Manager hands out one hydrated store per session key.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	states port.StateRepository
	apis   APIFactory
	log    *zap.SugaredLogger
}

func NewManager(states port.StateRepository, apis APIFactory, log *zap.SugaredLogger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		states: states,
		apis:   apis,
		log:    log,
	}
}

func (m *Manager) Get(ctx context.Context, key string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[key]; ok {
		return s
	}
	dash, auth, catalog := m.apis(key)
	s := New(ctx, key, m.states, dash, auth, catalog, m.log)
	m.stores[key] = s
	return s
}

func (m *Manager) Drop(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, key)
}
