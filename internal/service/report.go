package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

const latestIncidentsLimit = 10

type ReportSvc struct {
	repo   IncidentRepository
	logger *slog.Logger
}

func NewReportService(repo IncidentRepository, logger *slog.Logger) *ReportSvc {
	return &ReportSvc{repo: repo, logger: logger}
}

func (s *ReportSvc) IncidentReport(ctx context.Context) (*domain.IncidentReport, error) {
	const op = "service.Report.IncidentReport"
	s.logger.Info("Generating incident report")

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts := countByStatus(all)
	report := &domain.IncidentReport{
		TotalIncidents:  len(all),
		DetectedCount:   counts[domain.IncidentDetected],
		ConfirmedCount:  counts[domain.IncidentConfirmed],
		ResolvedCount:   counts[domain.IncidentResolved],
		LatestIncidents: all[:min(len(all), latestIncidentsLimit)],
	}
	if avg, ok := averageResolutionMinutes(all); ok {
		report.AverageResolutionTimeMinutes = &avg
	}
	return report, nil
}

func (s *ReportSvc) DetailedStatistics(ctx context.Context) (*domain.DetailedStatistics, error) {
	const op = "service.Report.DetailedStatistics"
	s.logger.Info("Generating detailed statistics")

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &domain.DetailedStatistics{
		StatusDistribution:  countByStatus(all),
		TotalIncidentsCount: len(all),
	}

	times := resolutionMinutes(all)
	if len(times) > 0 {
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		lo, hi, median := times[0], times[len(times)-1], times[len(times)/2]
		stats.MinResolutionTime = &lo
		stats.MaxResolutionTime = &hi
		stats.MedianResolutionTime = &median
	}
	return stats, nil
}

// ResolvedBetween returns resolved incidents detected after start and
// resolved before end.
func (s *ReportSvc) ResolvedBetween(ctx context.Context, start, end time.Time) ([]*domain.Incident, error) {
	const op = "service.Report.ResolvedBetween"

	if end.Before(start) {
		return nil, e.Invalid("endDate", "must not be before startDate")
	}
	s.logger.Info("Getting resolved incidents", slog.Time("start", start), slog.Time("end", end))

	resolved, err := s.repo.FindResolvedWithResolutionTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*domain.Incident, 0, len(resolved))
	for _, inc := range resolved {
		if inc.DetectionTime.After(start) && inc.ResolutionTime.Before(end) {
			out = append(out, inc)
		}
	}
	return out, nil
}

func countByStatus(incidents []*domain.Incident) map[domain.IncidentStatus]int {
	counts := map[domain.IncidentStatus]int{
		domain.IncidentDetected:  0,
		domain.IncidentConfirmed: 0,
		domain.IncidentResolved:  0,
	}
	for _, inc := range incidents {
		counts[inc.Status]++
	}
	return counts
}

func resolutionMinutes(incidents []*domain.Incident) []int64 {
	var out []int64
	for _, inc := range incidents {
		if m, ok := inc.ResolutionMinutes(); ok {
			out = append(out, m)
		}
	}
	return out
}

func averageResolutionMinutes(incidents []*domain.Incident) (float64, bool) {
	times := resolutionMinutes(incidents)
	if len(times) == 0 {
		return 0, false
	}
	var sum int64
	for _, m := range times {
		sum += m
	}
	return float64(sum) / float64(len(times)), true
}
