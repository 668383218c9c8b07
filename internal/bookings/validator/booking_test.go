package validator

import (
	"testing"
	"time"

	"resbook/pkg/logger"
	"resbook/pkg/model"
)

func testValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Level: "error", Service: "test"}))
}

func TestValidateRequest(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *model.BookingRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &model.BookingRequest{
				ResourceID: "65f1a2b3c4d5e6f7a8b9aa01",
				StartTime:  start,
				EndTime:    start.Add(time.Hour),
			},
			wantErr: false,
		},
		{
			name: "missing resource",
			req: &model.BookingRequest{
				StartTime: start,
				EndTime:   start.Add(time.Hour),
			},
			wantErr: true,
		},
		{
			name: "malformed resource id",
			req: &model.BookingRequest{
				ResourceID: "not-an-object-id",
				StartTime:  start,
				EndTime:    start.Add(time.Hour),
			},
			wantErr: true,
		},
		{
			name: "end before start",
			req: &model.BookingRequest{
				ResourceID: "65f1a2b3c4d5e6f7a8b9aa01",
				StartTime:  start,
				EndTime:    start.Add(-time.Hour),
			},
			wantErr: true,
		},
		{
			name: "end equals start",
			req: &model.BookingRequest{
				ResourceID: "65f1a2b3c4d5e6f7a8b9aa01",
				StartTime:  start,
				EndTime:    start,
			},
			wantErr: true,
		},
		{
			name: "missing times",
			req: &model.BookingRequest{
				ResourceID: "65f1a2b3c4d5e6f7a8b9aa01",
			},
			wantErr: true,
		},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(tt.req)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
