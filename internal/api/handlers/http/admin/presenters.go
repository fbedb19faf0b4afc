package admin

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

const multipartMemory = 8 << 20

var errTooLarge = errors.New("request body too large")

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		l.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	} else {
		l.Warn("request rejected",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	h.writeJSON(w, status, body)
}

func errorResponse(err error) (int, map[string]string) {
	var verr *e.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, map[string]string{"error": verr.Error(), "field": verr.Field}
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"}
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, map[string]string{"error": "incident not found"}
	case errors.Is(err, e.ErrInvalidTransition):
		return http.StatusConflict, map[string]string{"error": "invalid status transition"}
	case errors.Is(err, e.ErrAlreadyResolved):
		return http.StatusConflict, map[string]string{"error": "incident already resolved"}
	case errors.Is(err, e.ErrClosedIncident):
		return http.StatusConflict, map[string]string{"error": "incident is closed"}
	case errors.Is(err, e.ErrPrecondition):
		return http.StatusConflict, map[string]string{"error": "incident has no images"}
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, map[string]string{"error": "conflict"}
	default:
		return http.StatusInternalServerError, map[string]string{"error": "internal error"}
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id", "field": "id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return errTooLarge
		}
		return e.Invalid("body", "must be multipart/form-data")
	}
	return nil
}

// readImage pulls one uploaded file. The declared part Content-Type wins;
// without one the type is sniffed from the bytes.
func readImage(r *http.Request, field string) (domain.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return domain.ImageUpload{}, e.Invalid(field, "is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxImageBytes+1))
	if err != nil {
		return domain.ImageUpload{}, e.Invalid(field, "could not be read")
	}

	mime := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}

	return domain.ImageUpload{
		Data:     data,
		MimeType: mime,
		Filename: header.Filename,
	}, nil
}
