package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resbook/pkg/kafka"
	"resbook/pkg/logger"
	"resbook/pkg/model"
)

type mockAuditRepository struct {
	insertFunc func(ctx context.Context, entry *model.AuditEntry) error
	inserted   []*model.AuditEntry
}

func (m *mockAuditRepository) Insert(ctx context.Context, entry *model.AuditEntry) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, entry)
	}
	m.inserted = append(m.inserted, entry)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func eventMessage(t *testing.T, event model.BookingEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return kafka.Message{
		Key:   event.BookingID,
		Value: value,
		Headers: map[string]string{
			kafka.HeaderEventID:   "evt-001",
			kafka.HeaderEventType: event.EventType,
		},
	}
}

func TestHandle_RecordsEntry(t *testing.T) {
	repo := &mockAuditRepository{}
	rec := New(repo, testLogger())

	event := model.BookingEvent{
		EventType:  model.EventBookingCreated,
		BookingID:  "65f1a2b3c4d5e6f7a8b9bb01",
		ResourceID: "65f1a2b3c4d5e6f7a8b9aa01",
		OwnerID:    "65f1a2b3c4d5e6f7a8b9c0d1",
		StartTime:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		OccurredAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}

	if err := rec.Handle(context.Background(), eventMessage(t, event)); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("inserted = %d entries, want 1", len(repo.inserted))
	}
	entry := repo.inserted[0]
	if entry.EventID != "evt-001" {
		t.Errorf("EventID = %s, want evt-001", entry.EventID)
	}
	if entry.EventType != model.EventBookingCreated {
		t.Errorf("EventType = %s, want %s", entry.EventType, model.EventBookingCreated)
	}
	if entry.BookingID != event.BookingID {
		t.Errorf("BookingID = %s, want %s", entry.BookingID, event.BookingID)
	}
}

func TestHandle_PoisonMessageDropped(t *testing.T) {
	repo := &mockAuditRepository{}
	rec := New(repo, testLogger())

	msg := kafka.Message{Key: "k", Value: []byte("not json")}
	if err := rec.Handle(context.Background(), msg); err != nil {
		t.Fatalf("poison message must not return an error, got: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("inserted = %d entries, want 0", len(repo.inserted))
	}
}

func TestHandle_RepositoryFailurePropagates(t *testing.T) {
	repo := &mockAuditRepository{
		insertFunc: func(ctx context.Context, entry *model.AuditEntry) error {
			return errors.New("mongo down")
		},
	}
	rec := New(repo, testLogger())

	event := model.BookingEvent{
		EventType: model.EventBookingCancelled,
		BookingID: "65f1a2b3c4d5e6f7a8b9bb01",
	}
	if err := rec.Handle(context.Background(), eventMessage(t, event)); err == nil {
		t.Fatal("expected repository failure to propagate for retry")
	}
}
