package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"highwayMonitor/internal/metrics"
	"highwayMonitor/internal/storage/evidence"
)

type ImageIndex interface {
	ImagePaths(ctx context.Context) ([]string, error)
}

type EvidenceFiles interface {
	Walk(fn func(evidence.FileInfo) error) error
	Remove(ctx context.Context, rel string) error
}

// EvidenceJanitor removes evidence files that no image record points to.
// Files younger than the grace period are left alone, since a write may
// still be waiting for its metadata commit.
type EvidenceJanitor struct {
	index    ImageIndex
	files    EvidenceFiles
	schedule string
	grace    time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewEvidenceJanitor(index ImageIndex, files EvidenceFiles, schedule string, grace time.Duration, logger *slog.Logger) *EvidenceJanitor {
	return &EvidenceJanitor{
		index:    index,
		files:    files,
		schedule: schedule,
		grace:    grace,
		logger:   logger,
		now:      time.Now,
	}
}

func (j *EvidenceJanitor) WithClock(now func() time.Time) *EvidenceJanitor {
	j.now = now
	return j
}

// Run schedules Sweep and blocks until ctx is done.
func (j *EvidenceJanitor) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, func() {
		if _, err := j.Sweep(ctx); err != nil {
			j.logger.Error("evidence sweep failed", slog.Any("error", err))
		}
	}); err != nil {
		return fmt.Errorf("workers.EvidenceJanitor.Run: %w", err)
	}

	c.Start()
	j.logger.Info("evidence janitor STARTED", slog.String("schedule", j.schedule), slog.Duration("grace", j.grace))

	<-ctx.Done()
	<-c.Stop().Done()
	j.logger.Info("evidence janitor STOPPED")
	return nil
}

// Sweep runs one pass and returns the number of files removed.
func (j *EvidenceJanitor) Sweep(ctx context.Context) (int, error) {
	const op = "workers.EvidenceJanitor.Sweep"

	paths, err := j.index.ImagePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[p] = struct{}{}
	}

	cutoff := j.now().Add(-j.grace)
	var orphans []string
	err = j.files.Walk(func(fi evidence.FileInfo) error {
		if _, ok := referenced[fi.Path]; ok {
			return nil
		}
		if fi.ModTime.After(cutoff) {
			return nil
		}
		orphans = append(orphans, fi.Path)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	removed := 0
	for _, p := range orphans {
		if err := j.files.Remove(ctx, p); err != nil {
			j.logger.Warn("orphan removal failed", slog.String("path", p), slog.Any("error", err))
			continue
		}
		removed++
		metrics.OrphansRemoved.Inc()
	}

	if removed > 0 {
		j.logger.Info("evidence orphans removed", slog.Int("count", removed))
	}
	return removed, nil
}
