package public

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type IncidentQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]*domain.Incident, error)
	ListAll(ctx context.Context) ([]*domain.Incident, error)
}

type Dashboard interface {
	Overview(ctx context.Context) (*domain.DashboardOverview, error)
	ActiveIncidents(ctx context.Context) ([]*domain.Incident, error)
	QuickStatistics(ctx context.Context) (*domain.QuickStatistics, error)
}

type EvidenceReader interface {
	Open(rel string) (*os.File, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents IncidentQueries
	Dashboard Dashboard
	Evidence  EvidenceReader
}

func NewHandler(logger *slog.Logger, incidents IncidentQueries, dashboard Dashboard, evidence EvidenceReader) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
		Dashboard: dashboard,
		Evidence:  evidence,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) IncidentGet(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.handleError(w, r, e.Invalid("id", "must be a UUID"))
		return
	}

	inc, err := h.Incidents.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inc)
}

// IncidentList returns every incident, or only those in ?status= when given.
func (h *Handler) IncidentList(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")

	var (
		incidents []*domain.Incident
		err       error
	)
	if raw == "" {
		incidents, err = h.Incidents.ListAll(r.Context())
	} else {
		status, perr := domain.ParseIncidentStatus(raw)
		if perr != nil {
			h.handleError(w, r, e.Invalid("status", "must be one of DETECTED, CONFIRMED, RESOLVED"))
			return
		}
		incidents, err = h.Incidents.ListByStatus(r.Context(), status)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Debug("incidents listed", slog.String("status", raw), slog.Int("count", len(incidents)))
	h.writeJSON(w, http.StatusOK, incidents)
}

// IncidentImage serves an evidence file by its stored relative path.
func (h *Handler) IncidentImage(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")

	f, err := h.Evidence.Open(rel)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if fi.IsDir() {
		h.handleError(w, r, e.ErrNotFound)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

func (h *Handler) DashboardOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.Dashboard.Overview(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ov)
}

func (h *Handler) DashboardActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.Dashboard.ActiveIncidents(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, active)
}

func (h *Handler) DashboardStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.QuickStatistics(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
