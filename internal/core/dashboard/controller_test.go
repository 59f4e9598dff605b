package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/service"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
)

type mockStateRepo struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func (m *mockStateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[key], nil
}

func (m *mockStateRepo) Save(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = payload
	return nil
}

func (m *mockStateRepo) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

type mockDashboardAPI struct {
	mu        sync.Mutex
	layout    *domain.Layout
	saveCount atomic.Int32
}

func (m *mockDashboardAPI) GetLayout(ctx context.Context) (*domain.Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layout, nil
}

func (m *mockDashboardAPI) SaveLayout(ctx context.Context, layout domain.Layout) error {
	m.mu.Lock()
	m.layout = &layout
	m.mu.Unlock()
	m.saveCount.Add(1)
	return nil
}

type mockAuthAPI struct{}

func (mockAuthAPI) Me(ctx context.Context) (*domain.User, *domain.Clinic, error) {
	return &domain.User{ID: "u1"}, &domain.Clinic{ID: "c1"}, nil
}

func (mockAuthAPI) Logout(ctx context.Context) error { return nil }

type mockCatalogAPI struct {
	listCalls atomic.Int32
}

func (m *mockCatalogAPI) ListPets(ctx context.Context, limit int) ([]domain.Pet, error) {
	m.listCalls.Add(1)
	return nil, nil
}

func (m *mockCatalogAPI) ListGuardians(ctx context.Context, limit int) ([]domain.Guardian, error) {
	m.listCalls.Add(1)
	return nil, nil
}

func (m *mockCatalogAPI) ListVeterinarians(ctx context.Context, limit int) ([]domain.Veterinarian, error) {
	m.listCalls.Add(1)
	return nil, nil
}

func (m *mockCatalogAPI) ListAppointments(ctx context.Context, limit int) ([]domain.Appointment, error) {
	m.listCalls.Add(1)
	return nil, nil
}

func (m *mockCatalogAPI) ListConsultations(ctx context.Context, limit int) ([]domain.Consultation, error) {
	m.listCalls.Add(1)
	return []domain.Consultation{{ID: "c1"}}, nil
}

func (m *mockCatalogAPI) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	m.listCalls.Add(1)
	return []domain.Product{{ID: "pr1"}}, nil
}

func newTestController(t *testing.T, debounce time.Duration) (*Controller, *store.Store, *mockDashboardAPI) {
	t.Helper()
	dash := &mockDashboardAPI{}
	states := &mockStateRepo{blobs: make(map[string][]byte)}
	svc := service.NewDashboardService(dash, nil)
	st := store.New(context.Background(), "ctl-test", states, svc, mockAuthAPI{}, &mockCatalogAPI{}, nil)
	c := NewController(st, debounce, nil)
	t.Cleanup(c.Close)
	return c, st, dash
}

func TestApplyLayoutChange_EditModeOff(t *testing.T) {
	c, st, dash := newTestController(t, 20*time.Millisecond)
	ctx := context.Background()

	before := st.Snapshot().DashboardWidgets
	c.ApplyLayoutChange(ctx, []GridItem{{ID: "pets-count", X: 9, Y: 9, W: 2, H: 2}})

	after := st.Snapshot().DashboardWidgets
	for i := range after {
		if after[i].Position != before[i].Position || after[i].Size != before[i].Size {
			t.Error("expected no store mutation while edit mode is off")
		}
	}

	time.Sleep(60 * time.Millisecond)
	if dash.saveCount.Load() != 0 {
		t.Error("expected no save scheduled while edit mode is off")
	}
}

func TestApplyLayoutChange_EditModeOnWritesBack(t *testing.T) {
	c, st, _ := newTestController(t, 20*time.Millisecond)
	ctx := context.Background()

	c.SetEditMode(ctx, true)
	c.ApplyLayoutChange(ctx, []GridItem{{ID: "pets-count", X: 5, Y: 6, W: 4, H: 3}})

	for _, w := range st.Snapshot().DashboardWidgets {
		if w.ID != "pets-count" {
			continue
		}
		if (w.Position != domain.Position{X: 5, Y: 6}) {
			t.Errorf("expected position written back, got %+v", w.Position)
		}
		if (w.Size != domain.Size{W: 4, H: 3}) {
			t.Errorf("expected size written back, got %+v", w.Size)
		}
	}
}

func TestDebounce_CoalescesBurstIntoOneSave(t *testing.T) {
	c, _, dash := newTestController(t, 30*time.Millisecond)
	ctx := context.Background()

	c.SetEditMode(ctx, true)
	for i := 0; i < 10; i++ {
		c.ApplyLayoutChange(ctx, []GridItem{{ID: "pets-count", X: i, Y: 0, W: 3, H: 3}})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := dash.saveCount.Load(); got != 1 {
		t.Errorf("expected exactly 1 coalesced save, got %d", got)
	}
}

func TestSetEditMode_ExitFlushesImmediately(t *testing.T) {
	c, _, dash := newTestController(t, time.Minute)
	ctx := context.Background()

	c.SetEditMode(ctx, true)
	c.ApplyLayoutChange(ctx, []GridItem{{ID: "pets-count", X: 1, Y: 1, W: 3, H: 3}})

	// The debounce window is a minute out; leaving edit mode must not wait.
	c.SetEditMode(ctx, false)
	if got := dash.saveCount.Load(); got != 1 {
		t.Errorf("expected immediate save on edit-mode exit, got %d", got)
	}

	time.Sleep(20 * time.Millisecond)
	if got := dash.saveCount.Load(); got != 1 {
		t.Errorf("expected pending debounce cancelled, got %d saves", got)
	}
}

func TestOpen_WithoutUserLoadsNothing(t *testing.T) {
	dash := &mockDashboardAPI{}
	states := &mockStateRepo{blobs: make(map[string][]byte)}
	catalog := &mockCatalogAPI{}
	svc := service.NewDashboardService(dash, nil)

	st := store.New(context.Background(), "anon", states, svc, mockAuthAPI{}, catalog, nil)
	c := NewController(st, 0, nil)
	defer c.Close()

	c.Open(context.Background())
	if catalog.listCalls.Load() != 0 {
		t.Error("expected no loads without a session user")
	}
}

func TestOpen_LoadsLayoutConsultationsProducts(t *testing.T) {
	c, st, _ := newTestController(t, 0)
	ctx := context.Background()

	st.Login(ctx, domain.User{ID: "u1"}, domain.Clinic{ID: "c1"})
	c.Open(ctx)

	snap := st.Snapshot()
	if len(snap.Consultations) != 1 || len(snap.Products) != 1 {
		t.Error("expected consultations and products loaded on open")
	}
	if len(c.GridLayout()) == 0 {
		t.Error("expected grid layout derived after open")
	}
}

func TestGridLayout_ProjectsVisibleWidgetsWithMinSizes(t *testing.T) {
	c, st, _ := newTestController(t, 0)
	ctx := context.Background()

	st.ToggleWidgetVisibility(ctx, "quick-actions")
	items := c.GridLayout()

	if len(items) != 5 {
		t.Fatalf("expected 5 visible grid items, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == "quick-actions" {
			t.Error("hidden widget should not be projected")
		}
		if item.MinW != minWidgetW || item.MinH != minWidgetH {
			t.Errorf("expected min constraints on %q", item.ID)
		}
	}
}
