package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/internal/metrics"
	"highwayMonitor/pkg/e"
)

const discardTimeout = 5 * time.Second

// LifecycleService drives the DETECTED -> CONFIRMED -> RESOLVED state
// machine. Mutations on one incident are serialized and each committed
// mutation is published before the next one on that incident starts.
type LifecycleService struct {
	repo      IncidentRepository
	images    ImageStore
	publisher Publisher
	logger    *slog.Logger
	locks     *keyLock
	now       func() time.Time
}

func NewLifecycleService(repo IncidentRepository, images ImageStore, publisher Publisher, logger *slog.Logger) *LifecycleService {
	return &LifecycleService{
		repo:      repo,
		images:    images,
		publisher: publisher,
		logger:    logger,
		locks:     newKeyLock(),
		now:       time.Now,
	}
}

// WithClock replaces the time source. Tests only.
func (s *LifecycleService) WithClock(now func() time.Time) *LifecycleService {
	s.now = now
	return s
}

func (s *LifecycleService) Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
	const op = "service.Lifecycle.Create"

	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inc := &domain.Incident{
		ID:            uuid.New(),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Description:   strings.TrimSpace(req.Description),
		Status:        domain.IncidentDetected,
		DetectionTime: now,
	}

	unlock := s.locks.Lock(inc.ID)
	defer unlock()

	path, err := s.images.Write(ctx, req.Image.Data, domain.SanitizeFilename(req.Image.Filename, req.Image.MimeType))
	if err != nil {
		s.logger.Error("evidence write failed", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	inc.Images = []domain.IncidentImage{{
		ID:         uuid.New(),
		IncidentID: inc.ID,
		FilePath:   path,
		CapturedAt: now,
	}}

	if err := s.repo.Insert(ctx, inc); err != nil {
		s.discard(ctx, op, path)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(domain.EventIncidentCreated, inc, now)
	return inc, nil
}

func (s *LifecycleService) Confirm(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "service.Lifecycle.Confirm"

	unlock := s.locks.Lock(id)
	defer unlock()

	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !inc.Status.CanConfirm() {
		return nil, fmt.Errorf("%s: cannot confirm %s incident: %w", op, inc.Status, e.ErrInvalidTransition)
	}
	if len(inc.Images) == 0 {
		return nil, fmt.Errorf("%s: incident has no images: %w", op, e.ErrPrecondition)
	}

	inc.Status = domain.IncidentConfirmed
	if err := s.repo.Update(ctx, inc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(domain.EventIncidentConfirmed, inc, s.now().UTC())
	return inc, nil
}

// Resolve accepts DETECTED as well as CONFIRMED incidents, so the
// confirmation step and its image requirement can be skipped.
func (s *LifecycleService) Resolve(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "service.Lifecycle.Resolve"

	unlock := s.locks.Lock(id)
	defer unlock()

	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if inc.Status == domain.IncidentResolved {
		return nil, fmt.Errorf("%s: %w", op, e.ErrAlreadyResolved)
	}
	if !inc.Status.CanResolve() {
		return nil, fmt.Errorf("%s: cannot resolve %s incident: %w", op, inc.Status, e.ErrInvalidTransition)
	}

	now := s.now().UTC()
	resolvedAt := now
	if resolvedAt.Before(inc.DetectionTime) {
		resolvedAt = inc.DetectionTime
	}
	inc.Status = domain.IncidentResolved
	inc.ResolutionTime = &resolvedAt

	if err := s.repo.Update(ctx, inc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(domain.EventIncidentResolved, inc, now)
	return inc, nil
}

func (s *LifecycleService) AddImage(ctx context.Context, id uuid.UUID, upload domain.ImageUpload) (*domain.Incident, error) {
	const op = "service.Lifecycle.AddImage"

	if err := upload.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !inc.Status.AcceptsImages() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrClosedIncident)
	}

	path, err := s.images.Write(ctx, upload.Data, domain.SanitizeFilename(upload.Filename, upload.MimeType))
	if err != nil {
		s.logger.Error("evidence write failed", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	img := domain.IncidentImage{
		ID:         uuid.New(),
		IncidentID: inc.ID,
		FilePath:   path,
		CapturedAt: now,
	}
	if err := s.repo.AddImage(ctx, &img); err != nil {
		s.discard(ctx, op, path)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	inc.Images = append(inc.Images, img)

	s.publish(domain.EventImageAdded, inc, now)
	return inc, nil
}

func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *LifecycleService) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]*domain.Incident, error) {
	if !status.Valid() {
		return nil, e.Invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *LifecycleService) ListAll(ctx context.Context) ([]*domain.Incident, error) {
	return s.repo.FindAll(ctx)
}

// publish runs while the incident lock is held. Publisher never blocks,
// so the lock is released promptly and per-incident order is kept.
func (s *LifecycleService) publish(t domain.EventType, inc *domain.Incident, at time.Time) {
	metrics.LifecycleEvents.WithLabelValues(string(t)).Inc()
	s.logger.Info("incident lifecycle event",
		slog.String("type", string(t)),
		slog.String("incident_id", inc.ID.String()),
		slog.String("status", string(inc.Status)),
		slog.Int("images", len(inc.Images)),
	)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("publish panicked", slog.String("type", string(t)), slog.Any("panic", r))
		}
	}()
	s.publisher.Publish(domain.NewEvent(t, inc, at))
}

// discard removes an evidence file whose metadata never committed. A
// failure here leaves an orphan for the janitor.
func (s *LifecycleService) discard(ctx context.Context, op, path string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardTimeout)
	defer cancel()

	if err := s.images.Remove(ctx, path); err != nil {
		s.logger.Warn("orphaned evidence file left for janitor",
			slog.String("op", op),
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
