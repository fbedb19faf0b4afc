//go:build integration

package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := Migrate(ctx, testPool); err != nil {
		fmt.Println("Migrate:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func newRepo(t *testing.T) *IncidentRepo {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE incident_images, incidents`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewIncidentRepo(testPool, logger)
}

func newIncident(detected time.Time, paths ...string) *domain.Incident {
	inc := &domain.Incident{
		Latitude:      49.281441,
		Longitude:     -123.055913,
		Description:   "debris on lane 2",
		Status:        domain.IncidentDetected,
		DetectionTime: detected,
	}
	for _, p := range paths {
		inc.Images = append(inc.Images, domain.IncidentImage{FilePath: p, CapturedAt: detected})
	}
	return inc
}

func TestIncidentRepo_InsertFindByID_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	inc := newIncident(now, "a_1.jpg", "b_2.jpg")
	if err := repo.Insert(ctx, inc); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inc.ID == uuid.Nil || inc.Images[0].ID == uuid.Nil {
		t.Fatalf("expected ids assigned")
	}

	got, err := repo.FindByID(ctx, inc.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Latitude != inc.Latitude || got.Longitude != inc.Longitude || got.Description != inc.Description {
		t.Fatalf("field mismatch: %+v", got)
	}
	if !got.DetectionTime.Equal(now) || got.ResolutionTime != nil {
		t.Fatalf("time mismatch: %+v", got)
	}
	if len(got.Images) != 2 || got.Images[0].FilePath != "a_1.jpg" || got.Images[1].FilePath != "b_2.jpg" {
		t.Fatalf("images not in upload order: %+v", got.Images)
	}
}

func TestIncidentRepo_FindByID_NotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_InsertDuplicatePath_RollsBack(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := newIncident(time.Now().UTC(), "same.jpg")
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	second := newIncident(time.Now().UTC(), "same.jpg")
	err := repo.Insert(ctx, second)
	if !errors.Is(err, e.ErrStorage) {
		t.Fatalf("expected ErrStorage, got: %v", err)
	}

	if _, err := repo.FindByID(ctx, second.ID); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("incident row must be rolled back, got: %v", err)
	}
}

func TestIncidentRepo_FindByStatus_NewestFirst(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := repo.Insert(ctx, newIncident(base.Add(time.Duration(i)*time.Hour), fmt.Sprintf("%d.jpg", i))); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	list, err := repo.FindByStatus(ctx, domain.IncidentDetected)
	if err != nil {
		t.Fatalf("FindByStatus: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].DetectionTime.Before(list[i].DetectionTime) {
			t.Fatalf("expected DESC order by detection_time")
		}
	}
	if len(list[0].Images) != 1 || list[0].Images[0].FilePath != "2.jpg" {
		t.Fatalf("images not attached: %+v", list[0].Images)
	}

	none, err := repo.FindByStatus(ctx, domain.IncidentResolved)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %v %v", none, err)
	}
}

func TestIncidentRepo_Update_ForwardOnly(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	inc := newIncident(time.Now().UTC(), "x.jpg")
	if err := repo.Insert(ctx, inc); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	inc.Status = domain.IncidentConfirmed
	if err := repo.Update(ctx, inc); err != nil {
		t.Fatalf("Update: %v", err)
	}

	inc.Status = domain.IncidentDetected
	if err := repo.Update(ctx, inc); !errors.Is(err, e.ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}

	rt := time.Now().UTC().Truncate(time.Microsecond)
	inc.Status = domain.IncidentResolved
	inc.ResolutionTime = &rt
	if err := repo.Update(ctx, inc); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got, _ := repo.FindByID(ctx, inc.ID)
	if got.Status != domain.IncidentResolved || got.ResolutionTime == nil || !got.ResolutionTime.Equal(rt) {
		t.Fatalf("unexpected row: %+v", got)
	}

	missing := &domain.Incident{ID: uuid.New(), Status: domain.IncidentConfirmed}
	if err := repo.Update(ctx, missing); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_Update_ConcurrentConfirmOnlyOneWins(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	inc := newIncident(time.Now().UTC(), "c.jpg")
	if err := repo.Insert(ctx, inc); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Update(ctx, &domain.Incident{ID: inc.ID, Status: domain.IncidentConfirmed})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly one successful confirm, got %d", success)
	}
}

func TestIncidentRepo_AddImage(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	inc := newIncident(time.Now().UTC(), "first.jpg")
	if err := repo.Insert(ctx, inc); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	img := &domain.IncidentImage{IncidentID: inc.ID, FilePath: "second.jpg", CapturedAt: time.Now().UTC()}
	if err := repo.AddImage(ctx, img); err != nil {
		t.Fatalf("AddImage: %v", err)
	}

	got, _ := repo.FindByID(ctx, inc.ID)
	if len(got.Images) != 2 || got.Images[1].FilePath != "second.jpg" {
		t.Fatalf("unexpected images: %+v", got.Images)
	}

	rt := time.Now().UTC()
	inc.Status = domain.IncidentResolved
	inc.ResolutionTime = &rt
	if err := repo.Update(ctx, inc); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	late := &domain.IncidentImage{IncidentID: inc.ID, FilePath: "late.jpg", CapturedAt: time.Now().UTC()}
	if err := repo.AddImage(ctx, late); !errors.Is(err, e.ErrClosedIncident) {
		t.Fatalf("expected ErrClosedIncident, got: %v", err)
	}

	paths, err := repo.ImagePaths(ctx)
	if err != nil {
		t.Fatalf("ImagePaths: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths got %v", paths)
	}
}

func TestIncidentRepo_ReportQueries(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	open := newIncident(base, "o.jpg")
	closed := newIncident(base.Add(time.Hour), "r.jpg")
	outside := newIncident(base.Add(48*time.Hour), "z.jpg")
	for _, inc := range []*domain.Incident{open, closed, outside} {
		if err := repo.Insert(ctx, inc); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	rt := base.Add(2 * time.Hour)
	closed.Status = domain.IncidentResolved
	closed.ResolutionTime = &rt
	if err := repo.Update(ctx, closed); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	n, err := repo.CountBetween(ctx, base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("CountBetween: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 got %d", n)
	}

	resolved, err := repo.FindResolvedWithResolutionTime(ctx)
	if err != nil {
		t.Fatalf("FindResolvedWithResolutionTime: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != closed.ID {
		t.Fatalf("unexpected resolved list %+v", resolved)
	}
}
