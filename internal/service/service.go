package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// IncidentRepository is the durable record of incidents and their images.
type IncidentRepository interface {
	Insert(ctx context.Context, incident *domain.Incident) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	FindByStatus(ctx context.Context, status domain.IncidentStatus) ([]*domain.Incident, error)
	FindAll(ctx context.Context) ([]*domain.Incident, error)
	Update(ctx context.Context, incident *domain.Incident) error
	AddImage(ctx context.Context, img *domain.IncidentImage) error
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
	FindResolvedWithResolutionTime(ctx context.Context) ([]*domain.Incident, error)
}

type ImageStore interface {
	Write(ctx context.Context, data []byte, suggestedName string) (string, error)
	Remove(ctx context.Context, rel string) error
}

// Publisher must not block on subscribers.
type Publisher interface {
	Publish(evt domain.Event)
}

type IncidentCacheService interface {
	GetActive(ctx context.Context) ([]*domain.Incident, error)
	SetActive(ctx context.Context, incidents []*domain.Incident, ttl time.Duration) error
}

type LifecycleManager interface {
	Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error)
	Confirm(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	Resolve(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	AddImage(ctx context.Context, id uuid.UUID, upload domain.ImageUpload) (*domain.Incident, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]*domain.Incident, error)
	ListAll(ctx context.Context) ([]*domain.Incident, error)
}

type DashboardService interface {
	Overview(ctx context.Context) (*domain.DashboardOverview, error)
	ActiveIncidents(ctx context.Context) ([]*domain.Incident, error)
	QuickStatistics(ctx context.Context) (*domain.QuickStatistics, error)
}

type ReportService interface {
	IncidentReport(ctx context.Context) (*domain.IncidentReport, error)
	DetailedStatistics(ctx context.Context) (*domain.DetailedStatistics, error)
	ResolvedBetween(ctx context.Context, start, end time.Time) ([]*domain.Incident, error)
}

type Service struct {
	Lifecycle LifecycleManager
	Dashboard DashboardService
	Reports   ReportService
}

func NewService(
	lifecycle LifecycleManager,
	dashboard DashboardService,
	reports ReportService,
) *Service {
	return &Service{
		Lifecycle: lifecycle,
		Dashboard: dashboard,
		Reports:   reports,
	}
}
