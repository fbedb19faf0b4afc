package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentDetected  IncidentStatus = "DETECTED"
	IncidentConfirmed IncidentStatus = "CONFIRMED"
	IncidentResolved  IncidentStatus = "RESOLVED"
)

// Rank orders statuses along the lifecycle. Unknown statuses rank -1.
func (s IncidentStatus) Rank() int {
	switch s {
	case IncidentDetected:
		return 0
	case IncidentConfirmed:
		return 1
	case IncidentResolved:
		return 2
	default:
		return -1
	}
}

func (s IncidentStatus) Valid() bool { return s.Rank() >= 0 }

// CanConfirm is true only for DETECTED.
func (s IncidentStatus) CanConfirm() bool { return s == IncidentDetected }

// CanResolve accepts DETECTED as well as CONFIRMED so operators can skip
// confirmation under time pressure.
func (s IncidentStatus) CanResolve() bool {
	return s == IncidentDetected || s == IncidentConfirmed
}

func (s IncidentStatus) AcceptsImages() bool { return s != IncidentResolved }

func ParseIncidentStatus(raw string) (IncidentStatus, error) {
	st := IncidentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown incident status %q", raw)
	}
	return st, nil
}

type Incident struct {
	ID             uuid.UUID       `json:"id"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Description    string          `json:"description"`
	Status         IncidentStatus  `json:"status"`
	DetectionTime  time.Time       `json:"detectionTime"`
	ResolutionTime *time.Time      `json:"resolutionTime"`
	Images         []IncidentImage `json:"images"`
}

type IncidentImage struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"-"`
	FilePath   string    `json:"filePath"`
	CapturedAt time.Time `json:"capturedAt"`
}

// Clone returns a deep copy so callers can hand the incident to other
// goroutines without sharing the images slice or resolution time.
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	out := *i
	if i.ResolutionTime != nil {
		rt := *i.ResolutionTime
		out.ResolutionTime = &rt
	}
	out.Images = make([]IncidentImage, len(i.Images))
	copy(out.Images, i.Images)
	return &out
}

// ResolutionMinutes is the whole minutes between detection and resolution.
func (i *Incident) ResolutionMinutes() (int64, bool) {
	if i.Status != IncidentResolved || i.ResolutionTime == nil {
		return 0, false
	}
	return int64(i.ResolutionTime.Sub(i.DetectionTime) / time.Minute), true
}

// SortByDetectionDesc orders newest first, ties broken by id for stable output.
func SortByDetectionDesc(incidents []*Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		a, b := incidents[i], incidents[j]
		if !a.DetectionTime.Equal(b.DetectionTime) {
			return a.DetectionTime.After(b.DetectionTime)
		}
		return a.ID.String() < b.ID.String()
	})
}
