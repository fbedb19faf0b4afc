package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type IncidentLifecycle interface {
	Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error)
	Confirm(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	Resolve(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	AddImage(ctx context.Context, id uuid.UUID, upload domain.ImageUpload) (*domain.Incident, error)
}

type Reports interface {
	IncidentReport(ctx context.Context) (*domain.IncidentReport, error)
	DetailedStatistics(ctx context.Context) (*domain.DetailedStatistics, error)
	ResolvedBetween(ctx context.Context, start, end time.Time) ([]*domain.Incident, error)
}

type Handler struct {
	logger    *slog.Logger
	Lifecycle IncidentLifecycle
	Reports   Reports
}

func NewHandler(logger *slog.Logger, lifecycle IncidentLifecycle, reports Reports) *Handler {
	return &Handler{
		logger:    logger,
		Lifecycle: lifecycle,
		Reports:   reports,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

// IncidentCreate takes multipart fields latitude, longitude, description
// and an image file.
func (h *Handler) IncidentCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentCreate", slog.String("remote", r.RemoteAddr))

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	lat, err := parseCoordinate(r.FormValue("latitude"), "latitude")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	lng, err := parseCoordinate(r.FormValue("longitude"), "longitude")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	upload, err := readImage(r, "image")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	req := domain.CreateIncidentRequest{
		Latitude:    lat,
		Longitude:   lng,
		Description: r.FormValue("description"),
		Image:       upload,
	}

	l.Info("creating incident",
		slog.Float64("lat", req.Latitude),
		slog.Float64("lng", req.Longitude),
		slog.Int("image_bytes", len(upload.Data)),
	)

	inc, err := h.Lifecycle.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident created", slog.String("id", inc.ID.String()))
	h.writeJSON(w, http.StatusCreated, inc)
}

func (h *Handler) IncidentConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	inc, err := h.Lifecycle.Confirm(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("incident confirmed", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) IncidentResolve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	inc, err := h.Lifecycle.Resolve(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("incident resolved", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) IncidentAddImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}
	upload, err := readImage(r, "image")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	inc, err := h.Lifecycle.AddImage(r.Context(), id, upload)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("image added", slog.String("id", id.String()), slog.Int("images", len(inc.Images)))
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) ReportIncidents(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.IncidentReport(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) ReportStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reports.DetailedStatistics(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// ReportResolved expects RFC3339 startDate and endDate query params.
func (h *Handler) ReportResolved(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ReportResolved", slog.String("query", r.URL.RawQuery))

	start, err := parseTime(r.URL.Query().Get("startDate"), "startDate")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	end, err := parseTime(r.URL.Query().Get("endDate"), "endDate")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	incidents, err := h.Reports.ResolvedBetween(r.Context(), start, end)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("resolved incidents listed", slog.Int("count", len(incidents)))
	h.writeJSON(w, http.StatusOK, incidents)
}

func parseCoordinate(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, e.Invalid(field, "is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, e.Invalid(field, "must be a number")
	}
	return v, nil
}

func parseTime(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, e.Invalid(field, "is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, e.Invalid(field, "must be an RFC3339 timestamp")
	}
	return t, nil
}
