package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/induct-hq/induct/internal/platform/clock"
	"github.com/induct-hq/induct/internal/platform/db"
)

var (
	// ErrUnknownEventType indicates a tag outside the closed vocabulary.
	ErrUnknownEventType = errors.New("audit: unknown event type")
	// ErrHeadingRequired indicates an event without a human-readable heading.
	ErrHeadingRequired = errors.New("audit: heading required")
	// ErrFutureEvent indicates a happened_at after now. Events are history,
	// not scheduling.
	ErrFutureEvent = errors.New("audit: happened_at must not be in the future")
)

// NotPersistedError indicates a relationship reference to a record that has
// not been durably saved. Recording it would produce a dangling audit trail.
type NotPersistedError struct {
	Name string
}

func (e NotPersistedError) Error() string {
	return fmt.Sprintf("audit: reference %q is not persisted", e.Name)
}

// Ref is a typed relationship reference carried by an event.
type Ref struct {
	Name string
	ID   int64
}

// Event is a fully-described domain occurrence awaiting recording.
type Event struct {
	ID            uuid.UUID
	Type          EventType
	Heading       string
	HappenedAt    time.Time
	Author        Author
	Refs          []Ref
	Body          string
	Metadata      map[string]any
	Modifications []string
}

// RecordPayload is the flat attribute set handed to the queue. All
// relationship references travel as IDs so the persistence worker never needs
// live records.
type RecordPayload struct {
	EventID       string           `json:"event_id"`
	Type          string           `json:"type"`
	Heading       string           `json:"heading"`
	HappenedAt    time.Time        `json:"happened_at"`
	Author        AuthorTuple      `json:"author"`
	Refs          map[string]int64 `json:"refs,omitempty"`
	Body          string           `json:"body,omitempty"`
	Metadata      map[string]any   `json:"metadata,omitempty"`
	Modifications []string         `json:"modifications,omitempty"`
}

// Queue hands payloads to a durable, at-least-once delivery mechanism.
type Queue interface {
	EnqueueAuditRecord(ctx context.Context, payload RecordPayload) error
}

// Recorder validates domain occurrences and enqueues them for persistence.
// Inside a transaction the enqueue is deferred until commit, so a rollback
// never leaks a half-recorded event; validation stays synchronous so a
// violation aborts the transaction.
type Recorder struct {
	queue  Queue
	clk    clock.Clock
	logger *slog.Logger
}

func NewRecorder(queue Queue, clk clock.Clock, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{queue: queue, clk: clk, logger: logger}
}

// Record validates the event and stages it for enqueueing.
func (r *Recorder) Record(ctx context.Context, e Event) error {
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}
	if e.Heading == "" {
		return ErrHeadingRequired
	}

	author, err := ResolveAuthor(e.Author)
	if err != nil {
		return err
	}

	happenedAt := e.HappenedAt
	if happenedAt.IsZero() {
		happenedAt = r.clk.Now()
	}
	if happenedAt.After(r.clk.Now()) {
		return ErrFutureEvent
	}

	refs := make(map[string]int64, len(e.Refs))
	for _, ref := range e.Refs {
		if ref.ID == 0 {
			return NotPersistedError{Name: ref.Name}
		}
		refs[ref.Name] = ref.ID
	}

	eventID := e.ID
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}

	payload := RecordPayload{
		EventID:       eventID.String(),
		Type:          string(e.Type),
		Heading:       e.Heading,
		HappenedAt:    happenedAt,
		Author:        author,
		Refs:          refs,
		Body:          e.Body,
		Metadata:      e.Metadata,
		Modifications: e.Modifications,
	}

	db.AfterCommit(ctx, func() {
		if err := r.queue.EnqueueAuditRecord(context.WithoutCancel(ctx), payload); err != nil {
			r.logger.Error("audit enqueue failed",
				slog.String("event_id", payload.EventID),
				slog.String("type", payload.Type),
				slog.Any("error", err))
		}
	})

	return nil
}
