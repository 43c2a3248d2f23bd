package validator

import (
	"testing"
	"time"

	"courtside/pkg/logger"
	"courtside/pkg/model"
)

func newTestValidator(t *testing.T) *ReservationValidator {
	t.Helper()
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewReservationValidator(log)
}

func validReservation() *model.Reservation {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &model.Reservation{
		CourtID:     "65a0b1c2d3e4f5a6b7c8d9e0",
		PhoneNumber: "123456789",
		FullName:    "Jana Novakova",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
}

func TestValidate(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		mutate    func(r *model.Reservation)
		wantError bool
	}{
		{
			name:      "valid reservation",
			mutate:    func(r *model.Reservation) {},
			wantError: false,
		},
		{
			name:      "valid with international phone",
			mutate:    func(r *model.Reservation) { r.PhoneNumber = "+420123456789" },
			wantError: false,
		},
		{
			name:      "missing court id",
			mutate:    func(r *model.Reservation) { r.CourtID = "" },
			wantError: true,
		},
		{
			name:      "court id not an object id",
			mutate:    func(r *model.Reservation) { r.CourtID = "court-1" },
			wantError: true,
		},
		{
			name:      "missing phone",
			mutate:    func(r *model.Reservation) { r.PhoneNumber = "" },
			wantError: true,
		},
		{
			name:      "phone with letters",
			mutate:    func(r *model.Reservation) { r.PhoneNumber = "12345abc9" },
			wantError: true,
		},
		{
			name:      "phone too short",
			mutate:    func(r *model.Reservation) { r.PhoneNumber = "123456" },
			wantError: true,
		},
		{
			name:      "single character name",
			mutate:    func(r *model.Reservation) { r.FullName = "J" },
			wantError: true,
		},
		{
			name:      "end equal to start",
			mutate:    func(r *model.Reservation) { r.EndTime = r.StartTime },
			wantError: true,
		},
		{
			name:      "end before start",
			mutate:    func(r *model.Reservation) { r.EndTime = r.StartTime.Add(-time.Hour) },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservation := validReservation()
			tt.mutate(reservation)

			err := v.Validate(reservation)
			if tt.wantError && err == nil {
				t.Error("expected a validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
