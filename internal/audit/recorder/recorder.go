package recorder

import (
	"context"
	"fmt"

	"resbook/internal/audit/repository"
	"resbook/pkg/kafka"
	"resbook/pkg/logger"
	"resbook/pkg/model"
)

// Recorder turns consumed booking events into durable audit entries. It is
// the handler behind the audit consumer's fetch/commit loop.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

func New(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  log,
	}
}

// Handle decodes one message and records it. A decode failure is logged
// and swallowed so a poison message cannot wedge the partition.
func (r *Recorder) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		r.log.Error("Dropping undecodable booking event",
			"event_id", msg.GetEventID(),
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	entry := &model.AuditEntry{
		EventID:    msg.GetEventID(),
		EventType:  event.EventType,
		BookingID:  event.BookingID,
		ResourceID: event.ResourceID,
		OwnerID:    event.OwnerID,
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		OccurredAt: event.OccurredAt,
	}

	if err := r.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	r.log.Info("Audit entry recorded",
		"event_id", entry.EventID,
		"event_type", entry.EventType,
		"booking_id", entry.BookingID,
	)
	return nil
}
