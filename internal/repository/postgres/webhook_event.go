package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// WebhookEventRepository implements subscription.WebhookEventRepository
type WebhookEventRepository struct {
	db *sql.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *sql.DB) subscription.WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Record stores a delivery, keeping the first row on redelivery
func (r *WebhookEventRepository) Record(ctx context.Context, provider, providerEventID, eventType string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO billing_webhook_events (provider, provider_event_id, event_type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, provider_event_id) DO NOTHING`,
		provider, providerEventID, eventType, time.Now().UTC().Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to record webhook event", err)
	}
	return nil
}

// MarkProcessed stamps the latest processing outcome
func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, provider, providerEventID, processingErr string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE billing_webhook_events
		SET processed_at = $1, processing_error = $2
		WHERE provider = $3 AND provider_event_id = $4`,
		time.Now().UTC().Unix(), processingErr, provider, providerEventID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to mark webhook event", err)
	}
	return nil
}

// ListFailed returns deliveries acknowledged with an error
func (r *WebhookEventRepository) ListFailed(ctx context.Context, limit int) ([]*subscription.WebhookEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider, provider_event_id, event_type, processed_at, processing_error, created_at
		FROM billing_webhook_events
		WHERE processing_error <> ''
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list webhook events", err)
	}
	defer rows.Close()

	var out []*subscription.WebhookEvent
	for rows.Next() {
		var ev subscription.WebhookEvent
		var processedAt sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&ev.ID, &ev.Provider, &ev.ProviderEventID, &ev.EventType, &processedAt, &ev.ProcessingError, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan webhook event", err)
		}
		ev.ProcessedAt = timePtr(processedAt)
		ev.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate webhook events", err)
	}
	return out, nil
}
