package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"highwayMonitor/internal/api/handlers/http/admin"
	mock_admin "highwayMonitor/internal/api/handlers/http/admin/mocks"
	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func addChiURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

type filePart struct {
	name     string
	mime     string
	contents []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, file.name))
		if file.mime != "" {
			hdr.Set("Content-Type", file.mime)
		}
		pw, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pw.Write(file.contents); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newHandler(ctrl *gomock.Controller) (*admin.Handler, *mock_admin.MockIncidentLifecycle, *mock_admin.MockReports) {
	lc := mock_admin.NewMockIncidentLifecycle(ctrl)
	rep := mock_admin.NewMockReports(ctrl)
	return admin.NewHandler(newTestLogger(), lc, rep), lc, rep
}

func TestIncidentCreate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, lc, _ := newHandler(ctrl)

	req := multipartRequest(t, "/api/v1/incidents",
		map[string]string{"latitude": "10.762622", "longitude": "106.660172", "description": "stalled truck"},
		&filePart{name: "cam1.jpg", mime: "image/jpeg", contents: []byte{0xFF, 0xD8, 0xFF}},
	)
	rr := httptest.NewRecorder()

	id := uuid.New()
	lc.EXPECT().
		Create(gomock.Any(), domain.CreateIncidentRequest{
			Latitude:    10.762622,
			Longitude:   106.660172,
			Description: "stalled truck",
			Image:       domain.ImageUpload{Data: []byte{0xFF, 0xD8, 0xFF}, MimeType: "image/jpeg", Filename: "cam1.jpg"},
		}).
		Return(&domain.Incident{ID: id, Status: domain.IncidentDetected}, nil).
		Times(1)

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]any](t, rr)
	if got["id"] != id.String() || got["status"] != "DETECTED" {
		t.Fatalf("unexpected body %v", got)
	}
}

func TestIncidentCreate_SniffsMimeWhenMissing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, lc, _ := newHandler(ctrl)

	req := multipartRequest(t, "/api/v1/incidents",
		map[string]string{"latitude": "1", "longitude": "2"},
		&filePart{name: "snap", contents: pngBytes},
	)
	rr := httptest.NewRecorder()

	lc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
			if req.Image.MimeType != "image/png" {
				t.Errorf("expected sniffed image/png got %q", req.Image.MimeType)
			}
			return &domain.Incident{ID: uuid.New()}, nil
		})

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d, body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
}

func TestIncidentCreate_BadInput_400(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		fields map[string]string
		file   *filePart
		field  string
	}{
		{"missing latitude", map[string]string{"longitude": "2"}, &filePart{name: "a.png", contents: pngBytes}, "latitude"},
		{"non-numeric longitude", map[string]string{"latitude": "1", "longitude": "east"}, &filePart{name: "a.png", contents: pngBytes}, "longitude"},
		{"missing image", map[string]string{"latitude": "1", "longitude": "2"}, nil, "image"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			h, _, _ := newHandler(ctrl)

			rr := httptest.NewRecorder()
			h.IncidentCreate(rr, multipartRequest(t, "/api/v1/incidents", tc.fields, tc.file))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
			}
			if got := decodeJSON[map[string]string](t, rr); got["field"] != tc.field {
				t.Fatalf("expected field %q got %v", tc.field, got)
			}
		})
	}
}

func TestIncidentCreate_NotMultipart_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, _, _ := newHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents", bytes.NewBufferString(`{"latitude":1}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestIncidentCreate_BodyTooLarge_413(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, _, _ := newHandler(ctrl)

	req := multipartRequest(t, "/api/v1/incidents",
		map[string]string{"latitude": "1", "longitude": "2"},
		&filePart{name: "big.png", contents: bytes.Repeat([]byte{1}, 4096)},
	)
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 512)

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected %d got %d, body=%s", http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
	}
}

func TestIncidentCreate_ServiceValidation_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, lc, _ := newHandler(ctrl)

	req := multipartRequest(t, "/api/v1/incidents",
		map[string]string{"latitude": "91", "longitude": "2"},
		&filePart{name: "a.png", mime: "image/png", contents: pngBytes},
	)
	rr := httptest.NewRecorder()

	lc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, e.Invalid("latitude", "must be within [-90, 90]"))

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
	if got := decodeJSON[map[string]string](t, rr); got["field"] != "latitude" {
		t.Fatalf("expected latitude field, got %v", got)
	}
}

func TestIncidentConfirm_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"not found", fmt.Errorf("wrap: %w", e.ErrNotFound), http.StatusNotFound},
		{"wrong status", fmt.Errorf("wrap: %w", e.ErrInvalidTransition), http.StatusConflict},
		{"no images", fmt.Errorf("wrap: %w", e.ErrPrecondition), http.StatusConflict},
		{"lost race", fmt.Errorf("wrap: %w", e.ErrConflict), http.StatusConflict},
		{"storage", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			h, lc, _ := newHandler(ctrl)

			id := uuid.New()
			var inc *domain.Incident
			if tc.err == nil {
				inc = &domain.Incident{ID: id, Status: domain.IncidentConfirmed}
			}
			lc.EXPECT().Confirm(gomock.Any(), id).Return(inc, tc.err)

			req := addChiURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/incidents/"+id.String()+"/confirm", nil), "id", id.String())
			rr := httptest.NewRecorder()
			h.IncidentConfirm(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected %d got %d, body=%s", tc.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestIncidentConfirm_InvalidID_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, _, _ := newHandler(ctrl)

	req := addChiURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/incidents/nope/confirm", nil), "id", "nope")
	rr := httptest.NewRecorder()
	h.IncidentConfirm(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestIncidentResolve_AlreadyResolved_409(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, lc, _ := newHandler(ctrl)

	id := uuid.New()
	lc.EXPECT().Resolve(gomock.Any(), id).Return(nil, e.ErrAlreadyResolved)

	req := addChiURLParam(httptest.NewRequest(http.MethodPut, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.IncidentResolve(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected %d got %d", http.StatusConflict, rr.Code)
	}
}

func TestIncidentResolve_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, lc, _ := newHandler(ctrl)

	id := uuid.New()
	rt := time.Date(2025, 12, 23, 13, 0, 0, 0, time.UTC)
	lc.EXPECT().Resolve(gomock.Any(), id).Return(&domain.Incident{ID: id, Status: domain.IncidentResolved, ResolutionTime: &rt}, nil)

	req := addChiURLParam(httptest.NewRequest(http.MethodPut, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.IncidentResolve(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
	got := decodeJSON[map[string]any](t, rr)
	if got["status"] != "RESOLVED" || got["resolutionTime"] == nil {
		t.Fatalf("unexpected body %v", got)
	}
}

func TestIncidentAddImage(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, lc, _ := newHandler(ctrl)

		id := uuid.New()
		lc.EXPECT().
			AddImage(gomock.Any(), id, domain.ImageUpload{Data: pngBytes, MimeType: "image/png", Filename: "b.png"}).
			Return(&domain.Incident{ID: id, Images: make([]domain.IncidentImage, 2)}, nil)

		req := multipartRequest(t, "/", nil, &filePart{name: "b.png", mime: "image/png", contents: pngBytes})
		rr := httptest.NewRecorder()
		h.IncidentAddImage(rr, addChiURLParam(req, "id", id.String()))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
		}
	})

	t.Run("closed incident", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, lc, _ := newHandler(ctrl)

		id := uuid.New()
		lc.EXPECT().AddImage(gomock.Any(), id, gomock.Any()).Return(nil, e.ErrClosedIncident)

		req := multipartRequest(t, "/", nil, &filePart{name: "b.png", mime: "image/png", contents: pngBytes})
		rr := httptest.NewRecorder()
		h.IncidentAddImage(rr, addChiURLParam(req, "id", id.String()))

		if rr.Code != http.StatusConflict {
			t.Fatalf("expected %d got %d", http.StatusConflict, rr.Code)
		}
	})
}

func TestReportIncidents_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, _, rep := newHandler(ctrl)

	avg := 42.5
	rep.EXPECT().IncidentReport(gomock.Any()).Return(&domain.IncidentReport{
		TotalIncidents:               3,
		ResolvedCount:                1,
		AverageResolutionTimeMinutes: &avg,
		LatestIncidents:              []*domain.Incident{},
	}, nil)

	rr := httptest.NewRecorder()
	h.ReportIncidents(rr, httptest.NewRequest(http.MethodGet, "/api/v1/reports/incidents", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
	got := decodeJSON[domain.IncidentReport](t, rr)
	if got.TotalIncidents != 3 || got.AverageResolutionTimeMinutes == nil || *got.AverageResolutionTimeMinutes != avg {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestReportStatistics_ServiceError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, _, rep := newHandler(ctrl)

	rep.EXPECT().DetailedStatistics(gomock.Any()).Return(nil, fmt.Errorf("op: %w", e.ErrStorage))

	rr := httptest.NewRecorder()
	h.ReportStatistics(rr, httptest.NewRequest(http.MethodGet, "/api/v1/reports/statistics", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestReportResolved(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _, rep := newHandler(ctrl)

		rep.EXPECT().ResolvedBetween(gomock.Any(), start, end).Return([]*domain.Incident{{ID: uuid.New()}}, nil)

		target := "/api/v1/reports/resolved?startDate=" + start.Format(time.RFC3339) + "&endDate=" + end.Format(time.RFC3339)
		rr := httptest.NewRecorder()
		h.ReportResolved(rr, httptest.NewRequest(http.MethodGet, target, nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
		}
		if got := decodeJSON[[]map[string]any](t, rr); len(got) != 1 {
			t.Fatalf("expected one incident got %v", got)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _, _ := newHandler(ctrl)

		rr := httptest.NewRecorder()
		h.ReportResolved(rr, httptest.NewRequest(http.MethodGet, "/api/v1/reports/resolved?startDate=yesterday&endDate=2025-12-31T00:00:00Z", nil))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
		}
		if got := decodeJSON[map[string]string](t, rr); got["field"] != "startDate" {
			t.Fatalf("expected startDate field got %v", got)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _, rep := newHandler(ctrl)

		rep.EXPECT().ResolvedBetween(gomock.Any(), end, start).Return(nil, e.Invalid("endDate", "must not be before startDate"))

		target := "/api/v1/reports/resolved?startDate=" + end.Format(time.RFC3339) + "&endDate=" + start.Format(time.RFC3339)
		rr := httptest.NewRecorder()
		h.ReportResolved(rr, httptest.NewRequest(http.MethodGet, target, nil))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected %d got %d", http.StatusBadRequest, rr.Code)
		}
	})
}
