// Package dashboard bridges the grid layout model and the store's widget
// collection, owning edit mode and debounced layout persistence.
package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/core/store"
)

const (
	// DefaultSaveDebounce coalesces a burst of drag events into one save.
	DefaultSaveDebounce = time.Second

	minWidgetW = 2
	minWidgetH = 2
)

// GridItem is the grid engine's coordinate projection of one widget.
type GridItem struct {
	ID   string `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	MinW int    `json:"minW"`
	MinH int    `json:"minH"`
}

// Controller orchestrates one session's dashboard. At most one debounce
// timer is outstanding per controller; each layout-change event cancels and
// reschedules it.
type Controller struct {
	store    *store.Store
	debounce time.Duration
	log      *zap.SugaredLogger

	mu       sync.Mutex
	editMode bool
	layout   []GridItem
	timer    *time.Timer
	closed   bool
}

func NewController(st *store.Store, debounce time.Duration, log *zap.SugaredLogger) *Controller {
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{store: st, debounce: debounce, log: log}
}

// Open runs the mount-time loads: saved layout, consultations, and products
// are fetched concurrently, and Open returns once all three settle. Load
// failures are swallowed upstream, so Open never blocks on a failed fetch.
// Without a session user nothing is loaded.
func (c *Controller) Open(ctx context.Context) {
	if c.store.Snapshot().User == nil {
		return
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		c.store.LoadDashboardLayout(ctx)
	}()
	go func() {
		defer wg.Done()
		c.store.LoadConsultations(ctx)
	}()
	go func() {
		defer wg.Done()
		c.store.LoadProducts(ctx)
	}()
	wg.Wait()

	c.mu.Lock()
	c.layout = c.projectGrid()
	c.mu.Unlock()
}

// GridLayout projects the store's visible widgets into grid items. The same
// layout serves every breakpoint.
func (c *Controller) GridLayout() []GridItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectGrid()
}

func (c *Controller) projectGrid() []GridItem {
	widgets := c.store.Snapshot().DashboardWidgets
	items := make([]GridItem, 0, len(widgets))
	for _, w := range widgets {
		if !w.Visible {
			continue
		}
		items = append(items, GridItem{
			ID:   w.ID,
			X:    w.Position.X,
			Y:    w.Position.Y,
			W:    w.Size.W,
			H:    w.Size.H,
			MinW: minWidgetW,
			MinH: minWidgetH,
		})
	}
	return items
}

func (c *Controller) EditMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editMode
}

// SetEditMode toggles whether layout-change events are written back to the
// store. The flag itself is never persisted. Leaving edit mode flushes any
// pending save immediately so no change is lost.
func (c *Controller) SetEditMode(ctx context.Context, on bool) {
	c.mu.Lock()
	wasOn := c.editMode
	c.editMode = on
	c.mu.Unlock()

	if wasOn && !on {
		c.Flush(ctx)
	}
}

// ApplyLayoutChange always updates the local layout for rendering. When edit
// mode is active it additionally writes each item's position and size back
// into the store and schedules one debounced save for the whole burst.
func (c *Controller) ApplyLayoutChange(ctx context.Context, items []GridItem) {
	c.mu.Lock()
	c.layout = items
	editing := c.editMode
	c.mu.Unlock()

	if !editing {
		return
	}

	for _, item := range items {
		pos := domain.Position{X: item.X, Y: item.Y}
		size := domain.Size{W: item.W, H: item.H}
		c.store.UpdateDashboardWidget(ctx, item.ID, func(w *domain.Widget) {
			w.Position = pos
			w.Size = size
		})
	}

	c.schedule()
}

func (c *Controller) schedule() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		// The debounced save runs detached from any request context.
		c.store.SaveDashboardLayout(context.Background())
	})
}

// Flush cancels any pending debounced save and saves now.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.store.SaveDashboardLayout(ctx)
}

// Close stops the debounce timer; a closed controller schedules no further
// saves.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
