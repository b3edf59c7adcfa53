package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/induct-hq/induct/internal/audit"
	jobmetrics "github.com/induct-hq/induct/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeAuditRecord is the task type for persisting audit events.
	TaskTypeAuditRecord = "audit:record"
)

// NewAuditRecordTask constructs an Asynq task carrying one audit event.
func NewAuditRecordTask(payload audit.RecordPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuditRecord, data), nil
}

// EventPersister writes audit events durably. Inserts are idempotent on the
// event id, so redelivery after a transient failure is harmless.
type EventPersister interface {
	Insert(ctx context.Context, payload audit.RecordPayload) error
}

// CacheInvalidator drops cached timeline pages after a successful insert.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// AuditRecordHandler processes TaskTypeAuditRecord tasks.
type AuditRecordHandler struct {
	persister EventPersister
	cache     CacheInvalidator
	metrics   *jobmetrics.Metrics
	logger    *slog.Logger
}

func NewAuditRecordHandler(persister EventPersister, cache CacheInvalidator, metrics *jobmetrics.Metrics, logger *slog.Logger) *AuditRecordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditRecordHandler{persister: persister, cache: cache, metrics: metrics, logger: logger}
}

// ProcessTask persists the event. Malformed payloads are dropped rather than
// retried; a payload that failed to decode once will fail forever.
func (h *AuditRecordHandler) ProcessTask(ctx context.Context, t *asynq.Task) (err error) {
	tracker := h.metrics.Track("audit_record")
	defer func() { err = tracker.End(err) }()

	var payload audit.RecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("audit record payload malformed", slog.Any("error", err))
		return fmt.Errorf("unmarshal audit record: %v: %w", err, asynq.SkipRetry)
	}
	if err := h.persister.Insert(ctx, payload); err != nil {
		h.logger.Warn("audit record insert failed, will retry",
			slog.String("event_id", payload.EventID),
			slog.Any("error", err))
		return err
	}
	h.metrics.AddEventPersisted(payload.Type)
	if h.cache != nil {
		if err := h.cache.Bump(ctx); err != nil {
			h.logger.Warn("audit cache bump failed", slog.Any("error", err))
		}
	}
	return nil
}
