package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// DefaultRecentLimit bounds RecentByType reads when the caller passes no limit.
const DefaultRecentLimit = 50

// EventLogRepository handles database operations for the append-only audit
// log. Entries are only ever inserted; there is no update or delete path.
type EventLogRepository struct {
	pool *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository.
func NewEventLogRepository(pool *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{pool: pool}
}

// Append writes a new audit entry and fills in the generated id and
// createdAt timestamp.
func (r *EventLogRepository) Append(ctx context.Context, entry *domain.EventLogEntry) error {
	payload := entry.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	query, args, err := psql.
		Insert("event_logs").
		Columns("event_type", "payload", "user_id", "correlation_id").
		Values(entry.EventType, payloadJSON, entry.UserID, entry.CorrelationID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Append query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return unavailable("append event", err)
	}

	return nil
}

// RecentByType retrieves up to limit entries of the given type ordered by
// createdAt descending. The result is a finite snapshot, not a subscription.
func (r *EventLogRepository) RecentByType(ctx context.Context, eventType domain.EventType, limit int) ([]*domain.EventLogEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query, args, err := psql.
		Select("id", "event_type", "payload", "user_id", "correlation_id", "created_at").
		From("event_logs").
		Where(sq.Eq{"event_type": eventType}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build RecentByType query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("query events", err)
	}
	defer rows.Close()

	var entries []*domain.EventLogEntry
	for rows.Next() {
		var entry domain.EventLogEntry
		var payloadJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.EventType,
			&payloadJSON,
			&entry.UserID,
			&entry.CorrelationID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
			entry.Payload = map[string]any{}
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}
