package postgres

import (
	"context"

	"highwayMonitor/pkg/e"
)

func (p *Postgres) IncidentStore() *IncidentRepo { return p.Incidents }

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return e.WrapError(ctx, "postgres.Ping", err)
	}
	return nil
}
