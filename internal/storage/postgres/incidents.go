package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

const selectIncident = `
	SELECT id, latitude, longitude, description, status, detection_time, resolution_time
	FROM incidents
`

// Insert stores the incident and its initial images in one transaction.
func (p *IncidentRepo) Insert(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Insert"

	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO incidents (id, latitude, longitude, description, status, detection_time, resolution_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			incident.ID,
			incident.Latitude,
			incident.Longitude,
			incident.Description,
			incident.Status,
			incident.DetectionTime,
			incident.ResolutionTime,
		)
		if err != nil {
			return err
		}

		for i := range incident.Images {
			img := &incident.Images[i]
			img.IncidentID = incident.ID
			if img.ID == uuid.Nil {
				img.ID = uuid.New()
			}
			if err := insertImage(ctx, tx, img); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("db insert failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (p *IncidentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "postgres.Incident.FindByID"

	inc, err := scanIncident(p.pool.QueryRow(ctx, selectIncident+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := p.attachImages(ctx, []*domain.Incident{inc}); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return inc, nil
}

func (p *IncidentRepo) FindByStatus(ctx context.Context, status domain.IncidentStatus) ([]*domain.Incident, error) {
	return p.list(ctx, "postgres.Incident.FindByStatus",
		selectIncident+` WHERE status = $1 ORDER BY detection_time DESC, id`, status)
}

func (p *IncidentRepo) FindAll(ctx context.Context) ([]*domain.Incident, error) {
	return p.list(ctx, "postgres.Incident.FindAll",
		selectIncident+` ORDER BY detection_time DESC, id`)
}

// Update moves the stored status forward. The row is locked so two
// competing transitions cannot both pass the rank check.
func (p *IncidentRepo) Update(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Update"

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		cur, err := lockStatus(ctx, tx, incident.ID)
		if err != nil {
			return err
		}
		if incident.Status.Rank() <= cur.Rank() {
			return fmt.Errorf("%s -> %s: %w", cur, incident.Status, e.ErrConflict)
		}
		_, err = tx.Exec(ctx, `
			UPDATE incidents
			SET status = $2,
				resolution_time = $3
			WHERE id = $1`,
			incident.ID,
			incident.Status,
			incident.ResolutionTime,
		)
		return err
	})
	if err != nil {
		return p.txError(ctx, op, incident.ID, err)
	}
	return nil
}

func (p *IncidentRepo) AddImage(ctx context.Context, img *domain.IncidentImage) error {
	const op = "postgres.Incident.AddImage"

	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		cur, err := lockStatus(ctx, tx, img.IncidentID)
		if err != nil {
			return err
		}
		if !cur.AcceptsImages() {
			return e.ErrClosedIncident
		}
		return insertImage(ctx, tx, img)
	})
	if err != nil {
		return p.txError(ctx, op, img.IncidentID, err)
	}
	return nil
}

func (p *IncidentRepo) txError(ctx context.Context, op string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, e.ErrNotFound), errors.Is(err, e.ErrConflict), errors.Is(err, e.ErrClosedIncident):
		return fmt.Errorf("%s: %w", op, err)
	}
	p.logger.Error("db tx failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
	return e.WrapError(ctx, op, err)
}

func lockStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID) (domain.IncidentStatus, error) {
	var status domain.IncidentStatus
	err := tx.QueryRow(ctx, `SELECT status FROM incidents WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", e.ErrNotFound
	}
	return status, err
}

func insertImage(ctx context.Context, tx pgx.Tx, img *domain.IncidentImage) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO incident_images (id, incident_id, file_path, captured_at)
		VALUES ($1, $2, $3, $4)`,
		img.ID,
		img.IncidentID,
		img.FilePath,
		img.CapturedAt,
	)
	return err
}

func (p *IncidentRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.Incident, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	incidents := make([]*domain.Incident, 0)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := p.attachImages(ctx, incidents); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return incidents, nil
}

// attachImages loads images for all incidents in one query, in upload order.
func (p *IncidentRepo) attachImages(ctx context.Context, incidents []*domain.Incident) error {
	if len(incidents) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(incidents))
	byID := make(map[uuid.UUID]*domain.Incident, len(incidents))
	for i, inc := range incidents {
		ids[i] = inc.ID
		byID[inc.ID] = inc
		inc.Images = []domain.IncidentImage{}
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, incident_id, file_path, captured_at
		FROM incident_images
		WHERE incident_id = ANY($1)
		ORDER BY incident_id, seq`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.IncidentImage
		if err := rows.Scan(&img.ID, &img.IncidentID, &img.FilePath, &img.CapturedAt); err != nil {
			return err
		}
		if inc, ok := byID[img.IncidentID]; ok {
			inc.Images = append(inc.Images, img)
		}
	}
	return rows.Err()
}

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var (
		inc domain.Incident
		rt  *time.Time
	)
	if err := row.Scan(
		&inc.ID,
		&inc.Latitude,
		&inc.Longitude,
		&inc.Description,
		&inc.Status,
		&inc.DetectionTime,
		&rt,
	); err != nil {
		return nil, err
	}
	inc.DetectionTime = inc.DetectionTime.UTC()
	if rt != nil {
		utc := rt.UTC()
		inc.ResolutionTime = &utc
	}
	return &inc, nil
}
