package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
	"github.com/gabrielnatan/petinova-2-sub000/internal/port"
)

// LayoutResult is the non-erroring shape the store consumes for layout
// operations. Success with a nil Data means no layout has been saved yet;
// callers must distinguish that from a failed fetch.
type LayoutResult struct {
	Success bool
	Data    *domain.Layout
	Err     string
}

// DashboardService is the single boundary where upstream errors become
// values. Everything above it (store, controller) consumes results.
type DashboardService struct {
	api port.DashboardAPI
	log *zap.SugaredLogger
}

func NewDashboardService(api port.DashboardAPI, log *zap.SugaredLogger) *DashboardService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DashboardService{api: api, log: log}
}

func (s *DashboardService) LoadLayout(ctx context.Context) LayoutResult {
	layout, err := s.api.GetLayout(ctx)
	if err != nil {
		s.log.Warnw("dashboard layout load failed", "error", err)
		return LayoutResult{Success: false, Err: err.Error()}
	}
	return LayoutResult{Success: true, Data: layout}
}

func (s *DashboardService) SaveLayout(ctx context.Context, layout domain.Layout) LayoutResult {
	if err := s.api.SaveLayout(ctx, layout); err != nil {
		s.log.Warnw("dashboard layout save failed", "error", err)
		return LayoutResult{Success: false, Err: err.Error()}
	}
	return LayoutResult{Success: true, Data: &layout}
}
