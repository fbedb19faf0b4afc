package postgres

import (
	"context"
	"log/slog"
	"time"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

// CountBetween counts incidents detected within [start, end].
func (p *IncidentRepo) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	const op = "postgres.Incident.CountBetween"

	const query = `
		SELECT COUNT(*)
		FROM incidents
		WHERE detection_time BETWEEN $1 AND $2
	`

	var cnt int64
	if err := p.pool.QueryRow(ctx, query, start, end).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.Time("start", start),
			slog.Time("end", end),
		)
		return 0, e.WrapError(ctx, op, err)
	}
	return cnt, nil
}

func (p *IncidentRepo) FindResolvedWithResolutionTime(ctx context.Context) ([]*domain.Incident, error) {
	return p.list(ctx, "postgres.Incident.FindResolved",
		selectIncident+` WHERE status = 'RESOLVED' AND resolution_time IS NOT NULL ORDER BY detection_time DESC, id`)
}

// ImagePaths lists every referenced evidence file.
func (p *IncidentRepo) ImagePaths(ctx context.Context) ([]string, error) {
	const op = "postgres.Incident.ImagePaths"

	rows, err := p.pool.Query(ctx, `SELECT file_path FROM incident_images`)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return paths, nil
}
