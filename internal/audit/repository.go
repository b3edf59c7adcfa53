package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and queries the append-only audit_events table. Rows
// are inserted once and never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, payload RecordPayload) error
	Timeline(ctx context.Context, filters TimelineFilters, limit, offset int) ([]StoredEvent, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db  dbtx
	now func() time.Time
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, now: time.Now}
}

// Insert writes one event row. The insert is idempotent by event identity so
// at-least-once delivery from the queue cannot duplicate history.
func (r *repository) Insert(ctx context.Context, payload RecordPayload) error {
	if payload.HappenedAt.After(r.now()) {
		return ErrFutureEvent
	}

	refsJSON, err := json.Marshal(payload.Refs)
	if err != nil {
		return fmt.Errorf("audit: marshal refs: %w", err)
	}
	metaJSON, err := json.Marshal(payload.Metadata)
	if err != nil {
		return fmt.Errorf("audit: marshal metadata: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_events
			(id, event_type, heading, happened_at, author_id, author_name, author_email, author_type, refs, body, metadata, modifications, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (id) DO NOTHING`,
		payload.EventID, payload.Type, payload.Heading, payload.HappenedAt,
		payload.Author.ID, payload.Author.Name, payload.Author.Email, payload.Author.Type,
		refsJSON, nullable(payload.Body), metaJSON, payload.Modifications)
	if err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	return nil
}

func (r *repository) Timeline(ctx context.Context, filters TimelineFilters, limit, offset int) ([]StoredEvent, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if !filters.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("happened_at >= $%d", argPos))
		args = append(args, filters.From)
		argPos++
	}
	if !filters.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("happened_at <= $%d", argPos))
		args = append(args, filters.To)
		argPos++
	}
	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", argPos))
		args = append(args, filters.Type)
		argPos++
	}
	if filters.AuthorType != "" {
		conditions = append(conditions, fmt.Sprintf("author_type = $%d", argPos))
		args = append(args, filters.AuthorType)
		argPos++
	}
	if filters.RefName != "" && filters.RefID != 0 {
		conditions = append(conditions, fmt.Sprintf("(refs ->> $%d)::bigint = $%d", argPos, argPos+1))
		args = append(args, filters.RefName, filters.RefID)
		argPos += 2
	}

	whereClause := conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	query := fmt.Sprintf(`
		SELECT id, event_type, heading, happened_at, author_id, author_name, author_email, author_type, refs, body, metadata, modifications, created_at
		FROM audit_events
		WHERE %s
		ORDER BY happened_at DESC, id
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var ev StoredEvent
		var refsJSON, metaJSON []byte
		var email *string
		err := rows.Scan(&ev.ID, &ev.Type, &ev.Heading, &ev.HappenedAt,
			&ev.Author.ID, &ev.Author.Name, &email, &ev.Author.Type,
			&refsJSON, &ev.Body, &metaJSON, &ev.Modifications, &ev.CreatedAt)
		if err != nil {
			return nil, err
		}
		if email != nil {
			ev.Author.Email = *email
		}
		if len(refsJSON) > 0 {
			if err := json.Unmarshal(refsJSON, &ev.Refs); err != nil {
				return nil, fmt.Errorf("audit: unmarshal refs: %w", err)
			}
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &ev.Metadata); err != nil {
				return nil, fmt.Errorf("audit: unmarshal metadata: %w", err)
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
