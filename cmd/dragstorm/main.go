// dragstorm simulates a burst of drag/resize events against a dashboard
// controller and verifies that the debounced save path coalesces the storm
// into a single upstream write.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabrielnatan/petinova-2-sub000/internal/adapter/api"
	"github.com/gabrielnatan/petinova-2-sub000/internal/adapter/storage"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/dashboard"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/service"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
)

const (
	totalEvents  = 50
	eventSpacing = 5 * time.Millisecond
	saveDebounce = 300 * time.Millisecond
)

func main() {
	ctx := context.Background()

	var saveCount atomic.Int32
	var mu sync.Mutex
	var lastSaved domain.Layout

	// Stub upstream that records layout saves and echoes the last one back.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/dashboard/layout" && r.Method == http.MethodPost:
			var body struct {
				Layout domain.Layout `json:"layout"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, `{"error":"bad layout"}`, http.StatusBadRequest)
				return
			}
			mu.Lock()
			lastSaved = body.Layout
			mu.Unlock()
			saveCount.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "layout": body.Layout})
		case r.URL.Path == "/api/dashboard/layout":
			mu.Lock()
			defer mu.Unlock()
			if lastSaved.Widgets == nil {
				w.Write([]byte(`{"layout":null}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"layout": lastSaved})
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	client := api.NewClient(upstream.URL, api.StaticToken("dragstorm-token"), nil)
	dash := service.NewDashboardService(api.NewDashboardAPI(client), nil)
	states := storage.NewMemoryStateRepository()

	st := store.New(ctx, "dragstorm", states, dash, api.NewAuthAPI(client), api.NewCatalogAPI(client), nil)
	ctrl := dashboard.NewController(st, saveDebounce, nil)
	defer ctrl.Close()

	ctrl.SetEditMode(ctx, true)

	start := time.Now()
	for i := 0; i < totalEvents; i++ {
		ctrl.ApplyLayoutChange(ctx, []dashboard.GridItem{
			{ID: "pets-count", X: i % 12, Y: i % 8, W: 3, H: 3},
		})
		time.Sleep(eventSpacing)
	}

	// Wait out the final debounce window.
	time.Sleep(saveDebounce + 200*time.Millisecond)
	elapsed := time.Since(start)

	saves := saveCount.Load()

	fmt.Println("========== DRAG STORM RESULTS ==========")
	fmt.Printf("Layout Events:    %d\n", totalEvents)
	fmt.Printf("Upstream Saves:   %d\n", saves)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("========================================")

	if saves >= 1 && int(saves) < totalEvents {
		fmt.Printf("PASS: %d events coalesced into %d save(s)\n", totalEvents, saves)
	} else {
		fmt.Printf("FAIL: expected coalescing, got %d saves for %d events\n", saves, totalEvents)
	}

	// Round-trip check: reload and compare the final position.
	st.LoadDashboardLayout(ctx)
	for _, w := range st.Snapshot().DashboardWidgets {
		if w.ID != "pets-count" {
			continue
		}
		want := domain.Position{X: (totalEvents - 1) % 12, Y: (totalEvents - 1) % 8}
		if w.Position == want {
			fmt.Println("PASS: reloaded layout matches final drag position")
		} else {
			log.Printf("FAIL: expected position %+v, got %+v", want, w.Position)
		}
	}
}
