// Package memory is an in-process incident store. Every read returns a
// private copy, so callers never observe a half-applied mutation.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

type Store struct {
	mu        sync.RWMutex
	incidents map[uuid.UUID]*domain.Incident
}

func NewStore() *Store {
	return &Store{incidents: make(map[uuid.UUID]*domain.Incident)}
}

func (s *Store) Insert(ctx context.Context, incident *domain.Incident) error {
	const op = "memory.Incident.Insert"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if _, ok := s.incidents[incident.ID]; ok {
		return fmt.Errorf("%s: %w", op, e.ErrConflict)
	}
	for i := range incident.Images {
		incident.Images[i].IncidentID = incident.ID
	}
	s.incidents[incident.ID] = incident.Clone()
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "memory.Incident.FindByID"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return inc.Clone(), nil
}

func (s *Store) FindByStatus(ctx context.Context, status domain.IncidentStatus) ([]*domain.Incident, error) {
	return s.collect(ctx, "memory.Incident.FindByStatus", func(inc *domain.Incident) bool {
		return inc.Status == status
	})
}

func (s *Store) FindAll(ctx context.Context) ([]*domain.Incident, error) {
	return s.collect(ctx, "memory.Incident.FindAll", func(*domain.Incident) bool { return true })
}

func (s *Store) FindResolvedWithResolutionTime(ctx context.Context) ([]*domain.Incident, error) {
	return s.collect(ctx, "memory.Incident.FindResolved", func(inc *domain.Incident) bool {
		return inc.Status == domain.IncidentResolved && inc.ResolutionTime != nil
	})
}

// Update replaces status and resolution time. The new status must be
// strictly ahead of the stored one.
func (s *Store) Update(ctx context.Context, incident *domain.Incident) error {
	const op = "memory.Incident.Update"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.incidents[incident.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	if incident.Status.Rank() <= cur.Status.Rank() {
		return fmt.Errorf("%s: %s -> %s: %w", op, cur.Status, incident.Status, e.ErrConflict)
	}

	next := cur.Clone()
	next.Status = incident.Status
	next.ResolutionTime = nil
	if incident.ResolutionTime != nil {
		rt := *incident.ResolutionTime
		next.ResolutionTime = &rt
	}
	s.incidents[incident.ID] = next
	return nil
}

func (s *Store) AddImage(ctx context.Context, img *domain.IncidentImage) error {
	const op = "memory.Incident.AddImage"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.incidents[img.IncidentID]
	if !ok {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	if !cur.Status.AcceptsImages() {
		return fmt.Errorf("%s: %w", op, e.ErrClosedIncident)
	}
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}

	next := cur.Clone()
	next.Images = append(next.Images, *img)
	s.incidents[img.IncidentID] = next
	return nil
}

// CountBetween counts incidents detected within [start, end].
func (s *Store) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	const op = "memory.Incident.CountBetween"
	if err := ctx.Err(); err != nil {
		return 0, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, inc := range s.incidents {
		if !inc.DetectionTime.Before(start) && !inc.DetectionTime.After(end) {
			n++
		}
	}
	return n, nil
}

func (s *Store) ImagePaths(ctx context.Context) ([]string, error) {
	const op = "memory.Incident.ImagePaths"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	for _, inc := range s.incidents {
		for _, img := range inc.Images {
			paths = append(paths, img.FilePath)
		}
	}
	return paths, nil
}

func (s *Store) collect(ctx context.Context, op string, keep func(*domain.Incident) bool) ([]*domain.Incident, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	out := make([]*domain.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		if keep(inc) {
			out = append(out, inc.Clone())
		}
	}
	s.mu.RUnlock()

	domain.SortByDetectionDesc(out)
	return out, nil
}
