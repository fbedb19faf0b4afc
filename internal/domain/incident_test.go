package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

func validImage() domain.ImageUpload {
	return domain.ImageUpload{Data: []byte{0xFF, 0xD8, 0xFF}, MimeType: "image/jpeg", Filename: "truck.jpg"}
}

func TestIncidentStatus_Transitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status                        domain.IncidentStatus
		confirm, resolve, acceptsImgs bool
	}{
		{domain.IncidentDetected, true, true, true},
		{domain.IncidentConfirmed, false, true, true},
		{domain.IncidentResolved, false, false, false},
	}
	for _, c := range cases {
		if got := c.status.CanConfirm(); got != c.confirm {
			t.Fatalf("%s CanConfirm=%v want %v", c.status, got, c.confirm)
		}
		if got := c.status.CanResolve(); got != c.resolve {
			t.Fatalf("%s CanResolve=%v want %v", c.status, got, c.resolve)
		}
		if got := c.status.AcceptsImages(); got != c.acceptsImgs {
			t.Fatalf("%s AcceptsImages=%v want %v", c.status, got, c.acceptsImgs)
		}
	}

	if !(domain.IncidentDetected.Rank() < domain.IncidentConfirmed.Rank() &&
		domain.IncidentConfirmed.Rank() < domain.IncidentResolved.Rank()) {
		t.Fatalf("ranks must be strictly increasing along the lifecycle")
	}
	if domain.IncidentStatus("ARCHIVED").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestParseIncidentStatus(t *testing.T) {
	t.Parallel()

	st, err := domain.ParseIncidentStatus(" confirmed ")
	if err != nil || st != domain.IncidentConfirmed {
		t.Fatalf("got %q err=%v", st, err)
	}
	if _, err := domain.ParseIncidentStatus("closed"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestCreateIncidentRequest_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(r *domain.CreateIncidentRequest)
		wantErr bool
		field   string
	}{
		{"ok", func(r *domain.CreateIncidentRequest) {}, false, ""},
		{"lat_min_lng_min", func(r *domain.CreateIncidentRequest) { r.Latitude, r.Longitude = -90, -180 }, false, ""},
		{"lat_max_lng_max", func(r *domain.CreateIncidentRequest) { r.Latitude, r.Longitude = 90, 180 }, false, ""},
		{"lat_too_big", func(r *domain.CreateIncidentRequest) { r.Latitude = 95 }, true, "latitude"},
		{"lng_too_small", func(r *domain.CreateIncidentRequest) { r.Longitude = -180.5 }, true, "longitude"},
		{"blank_description", func(r *domain.CreateIncidentRequest) { r.Description = "   " }, true, "description"},
		{"long_description", func(r *domain.CreateIncidentRequest) { r.Description = strings.Repeat("x", 501) }, true, "description"},
		{"max_description", func(r *domain.CreateIncidentRequest) { r.Description = strings.Repeat("ж", 500) }, false, ""},
		{"empty_image", func(r *domain.CreateIncidentRequest) { r.Image.Data = nil }, true, "image"},
		{"bad_mime", func(r *domain.CreateIncidentRequest) { r.Image.MimeType = "application/pdf" }, true, "image"},
		{"oversized_image", func(r *domain.CreateIncidentRequest) { r.Image.Data = make([]byte, domain.MaxImageBytes+1) }, true, "image"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			req := domain.CreateIncidentRequest{
				Latitude:    10,
				Longitude:   106,
				Description: "stalled truck",
				Image:       validImage(),
			}
			c.mutate(&req)

			err := req.Validate()
			if !c.wantErr {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !errors.Is(err, e.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *e.ValidationError
			if !errors.As(err, &ve) || ve.Field != c.field {
				t.Fatalf("expected field %q, got %+v", c.field, ve)
			}
		})
	}
}

func TestImageUpload_AcceptsMimeWithParams(t *testing.T) {
	t.Parallel()

	u := domain.ImageUpload{Data: []byte{1}, MimeType: "IMAGE/PNG; charset=binary"}
	if err := u.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	u.Data = make([]byte, domain.MaxImageBytes)
	if err := u.Validate(); err != nil {
		t.Fatalf("exactly 5MiB must pass: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"my  truck photo.jpg":   "my_truck_photo.jpg",
		"../../etc/passwd":      "passwd",
		`C:\Users\op\crash.png`: "crash.png",
		"...":                   "image.jpg",
		"":                      "image.jpg",
	}
	for in, want := range cases {
		if got := domain.SanitizeFilename(in, "image/jpeg"); got != want {
			t.Fatalf("SanitizeFilename(%q)=%q want %q", in, got, want)
		}
	}
}

func TestIncident_CloneIsDeep(t *testing.T) {
	t.Parallel()

	rt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	inc := &domain.Incident{
		ID:             uuid.New(),
		Status:         domain.IncidentResolved,
		ResolutionTime: &rt,
		Images:         []domain.IncidentImage{{ID: uuid.New(), FilePath: "a.jpg"}},
	}
	cp := inc.Clone()
	cp.Images[0].FilePath = "b.jpg"
	*cp.ResolutionTime = rt.Add(time.Hour)

	if inc.Images[0].FilePath != "a.jpg" || !inc.ResolutionTime.Equal(rt) {
		t.Fatalf("clone shares state with original")
	}
}

func TestIncident_ResolutionMinutes(t *testing.T) {
	t.Parallel()

	det := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	res := det.Add(95*time.Minute + 30*time.Second)
	inc := &domain.Incident{Status: domain.IncidentResolved, DetectionTime: det, ResolutionTime: &res}

	m, ok := inc.ResolutionMinutes()
	if !ok || m != 95 {
		t.Fatalf("got %d ok=%v", m, ok)
	}

	inc.Status = domain.IncidentConfirmed
	if _, ok := inc.ResolutionMinutes(); ok {
		t.Fatalf("unresolved incident must not report minutes")
	}
}

func TestNewEvent_CarriesSnapshot(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1700000000123)
	inc := &domain.Incident{ID: uuid.New(), Status: domain.IncidentDetected, Images: []domain.IncidentImage{{FilePath: "x.jpg"}}}
	evt := domain.NewEvent(domain.EventIncidentCreated, inc, at)

	inc.Status = domain.IncidentConfirmed
	inc.Images[0].FilePath = "y.jpg"

	if evt.Timestamp != 1700000000123 {
		t.Fatalf("timestamp=%d", evt.Timestamp)
	}
	if evt.Data.Status != domain.IncidentDetected || evt.Data.Images[0].FilePath != "x.jpg" {
		t.Fatalf("event data must not alias the incident: %+v", evt.Data)
	}
}
