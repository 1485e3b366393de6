package service

import (
	"context"

	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/repo"
)

// ReportService backs non-critical dashboards. Every method degrades to an
// empty or zeroed result on failure instead of propagating it.
type ReportService struct {
	Repo *repo.GormRepo
}

func (s *ReportService) RecentOrders(ctx context.Context, limit int) []repo.OrderSummary {
	rows, err := s.Repo.RecentOrders(ctx, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("recent orders query failed", "error", err)
		return []repo.OrderSummary{}
	}
	return rows
}

func (s *ReportService) Stats(ctx context.Context) repo.Stats {
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("stats query failed", "error", err)
		return repo.Stats{}
	}
	return stats
}
