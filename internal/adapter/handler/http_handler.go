package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gabrielnatan/petinova-2-sub000/internal/adapter/api"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/dashboard"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/registry"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
)

const tokenCookieName = "token"

type HTTPHandler struct {
	manager  *store.Manager
	registry *registry.Registry
	debounce time.Duration
	log      *zap.SugaredLogger

	mu          sync.Mutex
	controllers map[string]*dashboard.Controller
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewHTTPHandler(manager *store.Manager, reg *registry.Registry, debounce time.Duration, log *zap.SugaredLogger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &HTTPHandler{
		manager:     manager,
		registry:    reg,
		debounce:    debounce,
		log:         log,
		controllers: make(map[string]*dashboard.Controller),
	}
}

// Routes wires every endpoint onto a fresh mux.
func (h *HTTPHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/session", h.Session)
	mux.HandleFunc("/api/session/login", h.Login)
	mux.HandleFunc("/api/session/logout", h.Logout)
	mux.HandleFunc("/api/dashboard", h.Dashboard)
	mux.HandleFunc("/api/dashboard/layout", h.LayoutChange)
	mux.HandleFunc("/api/dashboard/edit-mode", h.EditMode)
	mux.HandleFunc("/api/dashboard/widget/add", h.AddWidget)
	mux.HandleFunc("/api/dashboard/widget/remove", h.RemoveWidget)
	mux.HandleFunc("/api/dashboard/widget/toggle", h.ToggleWidget)
	mux.HandleFunc("/api/collections/refresh", h.RefreshCollections)
	mux.HandleFunc("/api/ui/sidebar", h.Sidebar)
	return mux
}

// sessionKey resolves the request's bearer token: the Authorization header
// is checked first, a same-named cookie is the fallback.
func sessionKey(r *http.Request) string {
	var header, cookie string
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		header = strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie(tokenCookieName); err == nil {
		cookie = c.Value
	}
	return api.TokenChain{api.StaticToken(header), api.StaticToken(cookie)}.Token()
}

func (h *HTTPHandler) session(w http.ResponseWriter, r *http.Request) (*store.Store, string, bool) {
	key := sessionKey(r)
	if key == "" {
		writeJSON(w, http.StatusUnauthorized, StatusResponse{Success: false, Message: "missing session token"})
		return nil, "", false
	}
	return h.manager.Get(r.Context(), key), key, true
}

func (h *HTTPHandler) controller(key string, st *store.Store) *dashboard.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.controllers[key]; ok {
		return c
	}
	c := dashboard.NewController(st, h.debounce, h.log)
	h.controllers[key] = c
	return c
}

func (h *HTTPHandler) dropSession(key string) {
	h.mu.Lock()
	c := h.controllers[key]
	delete(h.controllers, key)
	h.mu.Unlock()

	if c != nil {
		c.Close()
	}
	h.manager.Drop(key)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type SessionResponse struct {
	User            *domain.User   `json:"user"`
	Clinic          *domain.Clinic `json:"currentClinic"`
	IsAuthenticated bool           `json:"isAuthenticated"`
}

func (h *HTTPHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	st.CheckAuth(r.Context())
	snap := st.Snapshot()
	writeJSON(w, http.StatusOK, SessionResponse{
		User:            snap.User,
		Clinic:          snap.CurrentClinic,
		IsAuthenticated: snap.IsAuthenticated,
	})
}

type LoginRequest struct {
	User   domain.User   `json:"user"`
	Clinic domain.Clinic `json:"clinic"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "invalid request body"})
		return
	}
	if req.User.ID == "" {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "missing user"})
		return
	}

	st.Login(r.Context(), req.User, req.Clinic)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

type LogoutResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, key, ok := h.session(w, r)
	if !ok {
		return
	}

	st.Logout(r.Context())
	h.dropSession(key)

	// The client is always sent back to the login screen, even when the
	// upstream logout failed.
	writeJSON(w, http.StatusOK, LogoutResponse{Success: true, Redirect: "/login"})
}

type DashboardResponse struct {
	Success  bool                 `json:"success"`
	EditMode bool                 `json:"editMode"`
	Grid     []dashboard.GridItem `json:"grid"`
	Widgets  []registry.Rendered  `json:"widgets"`
}

func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, key, ok := h.session(w, r)
	if !ok {
		return
	}

	ctrl := h.controller(key, st)
	ctrl.Open(r.Context())

	snap := st.Snapshot()
	visible := make([]domain.Widget, 0, len(snap.DashboardWidgets))
	for _, wgt := range snap.DashboardWidgets {
		if wgt.Visible {
			visible = append(visible, wgt)
		}
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		Success:  true,
		EditMode: ctrl.EditMode(),
		Grid:     ctrl.GridLayout(),
		Widgets:  h.registry.Render(visible, snap),
	})
}

type LayoutChangeRequest struct {
	Items []dashboard.GridItem `json:"items"`
}

func (h *HTTPHandler) LayoutChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, key, ok := h.session(w, r)
	if !ok {
		return
	}

	var req LayoutChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "invalid request body"})
		return
	}

	h.controller(key, st).ApplyLayoutChange(r.Context(), req.Items)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

type EditModeRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *HTTPHandler) EditMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, key, ok := h.session(w, r)
	if !ok {
		return
	}

	var req EditModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "invalid request body"})
		return
	}

	h.controller(key, st).SetEditMode(r.Context(), req.Enabled)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

type AddWidgetRequest struct {
	ID       string            `json:"id"`
	Type     domain.WidgetType `json:"type"`
	Position domain.Position   `json:"position"`
	Size     domain.Size       `json:"size"`
}

func (h *HTTPHandler) AddWidget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "invalid request body"})
		return
	}
	if !h.registry.Knows(req.Type) {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "unknown widget type"})
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	if req.Size.W == 0 || req.Size.H == 0 {
		req.Size = domain.Size{W: 4, H: 3}
	}

	st.AddDashboardWidget(r.Context(), domain.Widget{
		ID:       id,
		Type:     req.Type,
		Title:    domain.TitleForType(req.Type),
		Position: req.Position,
		Size:     req.Size,
		Visible:  true,
	})
	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Message: id})
}

type WidgetIDRequest struct {
	ID string `json:"id"`
}

func (h *HTTPHandler) RemoveWidget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req WidgetIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "missing widget id"})
		return
	}

	st.RemoveDashboardWidget(r.Context(), req.ID)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

func (h *HTTPHandler) ToggleWidget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req WidgetIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "missing widget id"})
		return
	}

	st.ToggleWidgetVisibility(r.Context(), req.ID)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

func (h *HTTPHandler) RefreshCollections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	loads := []func(){
		func() { st.LoadPets(ctx) },
		func() { st.LoadGuardians(ctx) },
		func() { st.LoadVeterinarians(ctx) },
		func() { st.LoadAppointments(ctx) },
		func() { st.LoadConsultations(ctx) },
		func() { st.LoadProducts(ctx) },
	}
	var wg sync.WaitGroup
	wg.Add(len(loads))
	for _, load := range loads {
		go func(fn func()) {
			defer wg.Done()
			fn()
		}(load)
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

type SidebarRequest struct {
	Collapsed bool `json:"collapsed"`
}

func (h *HTTPHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st, _, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SidebarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Success: false, Message: "invalid request body"})
		return
	}

	st.SetSidebarCollapsed(r.Context(), req.Collapsed)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
