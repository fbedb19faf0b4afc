package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"highwayMonitor/internal/domain"
)

type DashboardSvc struct {
	repo     IncidentRepository
	cache    IncidentCacheService
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewDashboardService builds the read side behind the operator dashboard.
// cache may be nil.
func NewDashboardService(repo IncidentRepository, cache IncidentCacheService, cacheTTL time.Duration, logger *slog.Logger) *DashboardSvc {
	return &DashboardSvc{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *DashboardSvc) WithClock(now func() time.Time) *DashboardSvc {
	s.now = now
	return s
}

func (s *DashboardSvc) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	const op = "service.Dashboard.Overview"

	detected, err := s.repo.FindByStatus(ctx, domain.IncidentDetected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	confirmed, err := s.repo.FindByStatus(ctx, domain.IncidentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resolved, err := s.repo.FindByStatus(ctx, domain.IncidentResolved)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.DashboardOverview{
		DetectedCount:      len(detected),
		ConfirmedCount:     len(confirmed),
		ResolvedCount:      len(resolved),
		ActiveIncidents:    len(detected) + len(confirmed),
		DetectedIncidents:  detected,
		ConfirmedIncidents: confirmed,
	}, nil
}

// ActiveIncidents lists DETECTED and CONFIRMED incidents, newest first.
// The list is cache-aside when a cache is configured.
func (s *DashboardSvc) ActiveIncidents(ctx context.Context) ([]*domain.Incident, error) {
	const op = "service.Dashboard.ActiveIncidents"

	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("active incidents cache read failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	detected, err := s.repo.FindByStatus(ctx, domain.IncidentDetected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	confirmed, err := s.repo.FindByStatus(ctx, domain.IncidentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	active := append(detected, confirmed...)
	domain.SortByDetectionDesc(active)

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, active, s.cacheTTL); err != nil {
			s.logger.Warn("active incidents cache write failed", slog.Any("error", err))
		}
	}
	return active, nil
}

// QuickStatistics counts today's and this week's (from Monday) incidents
// in local time and averages the processing time of resolved ones.
func (s *DashboardSvc) QuickStatistics(ctx context.Context) (*domain.QuickStatistics, error) {
	const op = "service.Dashboard.QuickStatistics"

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	sinceMonday := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -sinceMonday)

	today, err := s.repo.CountBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	week, err := s.repo.CountBetween(ctx, weekStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resolved, err := s.repo.FindResolvedWithResolutionTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &domain.QuickStatistics{
		TodayIncidents:    today,
		WeekIncidents:     week,
		AvgProcessingTime: "--",
	}
	if avg, ok := averageResolutionMinutes(resolved); ok {
		stats.AvgProcessingTimeMinutes = avg
		stats.AvgProcessingTime = formatMinutes(avg)
	}
	return stats, nil
}

// formatMinutes renders "Xh Ym", or "Ym" under an hour.
func formatMinutes(avg float64) string {
	total := int64(avg)
	hours, minutes := total/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
