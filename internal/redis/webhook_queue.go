package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"highwayMonitor/internal/domain"
	"highwayMonitor/pkg/e"
)

const WebhookQueueKey = "webhooks:incident-events"

type WebhookQueue struct {
	client redis.Cmdable
	key    string
}

func NewWebhookQueue(client redis.Cmdable, key string) *WebhookQueue {
	return &WebhookQueue{client: client, key: key}
}

// Enqueue wraps a lifecycle event as a webhook payload and pushes it.
func (q *WebhookQueue) Enqueue(ctx context.Context, evt domain.Event) error {
	payload := domain.WebhookPayload{
		EventType: evt.Type,
		Event:     evt,
		QueuedAt:  time.Now().UTC(),
	}
	if evt.Data != nil {
		payload.IncidentID = evt.Data.ID
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *WebhookQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error) {
	var p domain.WebhookPayload

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return p, e.ErrWebHookEmpty
		}
		return p, err
	}
	if len(res) < 2 {
		return p, e.ErrWebHookEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &p); err != nil {
		return p, err
	}
	return p, nil
}
