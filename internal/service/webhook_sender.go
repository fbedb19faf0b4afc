package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"highwayMonitor/internal/config"
	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

const webhookMaxAttempts = 3

type WebhookSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error)
}

// WebhookSender drains queued lifecycle events and POSTs them to the
// configured endpoint.
type WebhookSender struct {
	logger  *slog.Logger
	cfg     config.WebhookConfig
	queue   WebhookSource
	http    *http.Client
	backoff time.Duration
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig, q WebhookSource) *WebhookSender {
	return &WebhookSender{
		logger:  logger,
		cfg:     cfg,
		queue:   q,
		http:    &http.Client{Timeout: 5 * time.Second},
		backoff: time.Second,
	}
}

// WithBackoff sets the base delay between attempts. Attempt n waits n*base.
func (s *WebhookSender) WithBackoff(base time.Duration) *WebhookSender {
	s.backoff = base
	return s
}

func (s *WebhookSender) Run(ctx context.Context) {
	s.logger.Info("webhookSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhookSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrWebHookEmpty) || ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			sleepCtx(ctx, 500*time.Millisecond)
			continue
		}

		s.logger.Info("sending webhook",
			slog.String("event_type", string(payload.EventType)),
			slog.String("incident_id", payload.IncidentID.String()),
		)
		s.sendWithRetry(ctx, payload)
	}
}

func (s *WebhookSender) sendWithRetry(ctx context.Context, p domain.WebhookPayload) bool {
	body, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("marshal webhook payload failed", slog.String("error", err.Error()))
		return false
	}

	for attempt := 1; attempt <= webhookMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return false
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create webhook request failed", slog.String("error", err.Error()))
			return false
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Event-Type", string(p.EventType))

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return true
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		if attempt < webhookMaxAttempts {
			sleepCtx(ctx, time.Duration(attempt)*s.backoff)
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
