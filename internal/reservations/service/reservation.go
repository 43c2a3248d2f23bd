package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	courtrepo "courtside/internal/courts/repository"
	"courtside/internal/pricing"
	"courtside/internal/reservations/repository"
	"courtside/internal/reservations/validator"
	"courtside/internal/store"
	userrepo "courtside/internal/users/repository"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/events"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// lockTTL bounds how long an abandoned slot lock can block a court slot.
const lockTTL = 10 * time.Second

// CreateResult is what a successful booking returns: the stored reservation
// and its computed price. The price is derived at booking time and never
// persisted.
type CreateResult struct {
	Reservation *model.Reservation `json:"reservation"`
	Price       float64            `json:"price"`
}

type ReservationService interface {
	Create(ctx context.Context, reservation *model.Reservation) (*CreateResult, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context) ([]*model.Reservation, error)
	GetByCourt(ctx context.Context, courtID string) ([]*model.Reservation, error)
	GetByPhone(ctx context.Context, phoneNumber string) ([]*model.Reservation, error)
	GetUpcomingByPhone(ctx context.Context, phoneNumber string) ([]*model.Reservation, error)
	Update(ctx context.Context, id string, reservation *model.Reservation) (*model.Reservation, error)
	SoftDelete(ctx context.Context, id string) error
	// SoftDeleteAll flags every active reservation as deleted and reports how
	// many were flagged; zero means there was nothing to delete.
	SoftDeleteAll(ctx context.Context) (int64, error)
	HardDeleteAll(ctx context.Context) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	courtRepo courtrepo.CourtRepository
	userRepo  userrepo.UserRepository
	validator *validator.ReservationValidator
	pricer    *pricing.Engine
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	courtRepo courtrepo.CourtRepository,
	userRepo userrepo.UserRepository,
	v *validator.ReservationValidator,
	pricer *pricing.Engine,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		courtRepo: courtRepo,
		userRepo:  userRepo,
		validator: v,
		pricer:    pricer,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create books a slot. Under an advisory slot lock and a transaction it
// verifies the court exists, the slot is free, and the renter record exists,
// then persists the reservation. The price is computed from the court surface
// and returned alongside the stored reservation.
func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation) (*CreateResult, error) {
	if reservation.ID != "" {
		return nil, apperrors.InvalidInput("Reservation ID is assigned by the service")
	}

	s.sanitize(reservation)
	if err := s.validateTimes(reservation); err != nil {
		return nil, err
	}
	if err := s.validate(reservation); err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, reservation.CourtID, reservation.StartTime)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	var price float64
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		court, err := s.findCourt(sessCtx, reservation.CourtID)
		if err != nil {
			return err
		}
		if err := s.ensureSlotFree(sessCtx, reservation); err != nil {
			return err
		}
		if err := s.ensureRenter(sessCtx, reservation); err != nil {
			return err
		}

		price = s.pricer.Quote(court.Surface, reservation.Minutes(), reservation.FourPlayers)

		if _, err := s.repo.Save(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"court_id", reservation.CourtID,
		"start_time", reservation.StartTime,
		"price", price,
	)
	s.publish(ctx, events.TypeReservationCreated, reservation, price)

	return &CreateResult{Reservation: reservation, Price: price}, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	return s.findReservation(ctx, id)
}

func (s *reservationService) GetAll(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// GetByCourt lists the active reservations for a court in chronological
// order. An unknown court is an error, not an empty list.
func (s *reservationService) GetByCourt(ctx context.Context, courtID string) ([]*model.Reservation, error) {
	if courtID == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	if _, err := s.findCourt(ctx, courtID); err != nil {
		return nil, err
	}

	reservations, err := s.repo.FindByCourt(ctx, courtID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations by court", "court_id", courtID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) GetByPhone(ctx context.Context, phoneNumber string) ([]*model.Reservation, error) {
	phoneNumber = sanitizer.NormalizePhone(phoneNumber)
	if phoneNumber == "" {
		return nil, apperrors.InvalidInput("Phone number cannot be empty")
	}

	reservations, err := s.repo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations by phone", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) GetUpcomingByPhone(ctx context.Context, phoneNumber string) ([]*model.Reservation, error) {
	phoneNumber = sanitizer.NormalizePhone(phoneNumber)
	if phoneNumber == "" {
		return nil, apperrors.InvalidInput("Phone number cannot be empty")
	}

	reservations, err := s.repo.FindUpcomingByPhone(ctx, phoneNumber, time.Now())
	if err != nil {
		s.cfg.Log.Error("Failed to list upcoming reservations", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// Update overwrites every mutable field with the supplied values and re-runs
// the conflict check against the other reservations on the target court. A
// reservation being flagged deleted skips the conflict check; it no longer
// occupies its slot.
func (s *reservationService) Update(ctx context.Context, id string, updates *model.Reservation) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	merged.CourtID = updates.CourtID
	merged.PhoneNumber = updates.PhoneNumber
	merged.FullName = updates.FullName
	merged.StartTime = updates.StartTime
	merged.EndTime = updates.EndTime
	merged.FourPlayers = updates.FourPlayers
	merged.Deleted = updates.Deleted

	s.sanitize(&merged)
	if err := s.validateTimes(&merged); err != nil {
		return nil, err
	}
	if err := s.validate(&merged); err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if !merged.Deleted {
			if _, err := s.findCourt(sessCtx, merged.CourtID); err != nil {
				return err
			}
			if err := s.ensureSlotFree(sessCtx, &merged); err != nil {
				return err
			}
		}
		if _, err := s.repo.Save(sessCtx, &merged); err != nil {
			return apperrors.Internal("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return &merged, nil
}

// SoftDelete cancels a reservation by flagging it deleted. The record stays
// retrievable by id; listings and conflict checks no longer see it.
func (s *reservationService) SoftDelete(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Deleted = true
	cancelled, err := s.Update(ctx, id, existing)
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Reservation cancelled", "id", id)
	s.publish(ctx, events.TypeReservationCancelled, cancelled, 0)
	return nil
}

func (s *reservationService) SoftDeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.SoftDeleteAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to cancel reservations", "error", err)
		return 0, apperrors.Internal("Failed to cancel reservations", err)
	}

	s.cfg.Log.Info("All reservations cancelled", "count", count)
	return count, nil
}

// HardDeleteAll physically removes every reservation, administrative use
// only.
func (s *reservationService) HardDeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		s.cfg.Log.Error("Failed to delete reservations", "error", err)
		return apperrors.Internal("Failed to delete reservations", err)
	}

	s.cfg.Log.Info("All reservations deleted")
	return nil
}

// --- Helpers ---

func (s *reservationService) sanitize(r *model.Reservation) {
	r.FullName = sanitizer.NormalizeName(r.FullName)
	r.PhoneNumber = sanitizer.NormalizePhone(r.PhoneNumber)
}

// validateTimes rejects empty and inverted intervals before struct
// validation so the caller gets an invalid-input error rather than a
// field-level validation report.
func (s *reservationService) validateTimes(r *model.Reservation) error {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return nil // left for struct validation to report
	}
	if !r.StartTime.Before(r.EndTime) {
		return apperrors.InvalidInput("Reservation start time must be before end time")
	}
	return nil
}

func (s *reservationService) validate(reservation *model.Reservation) error {
	if err := s.validator.Validate(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *reservationService) findReservation(ctx context.Context, id string) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, store.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}
	return reservation, nil
}

func (s *reservationService) findCourt(ctx context.Context, courtID string) (*model.Court, error) {
	court, err := s.courtRepo.FindByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Court", courtID)
		}
		if errors.Is(err, store.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid court ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve court", err)
	}
	if court.Deleted {
		return nil, apperrors.NotFoundWithID("Court", courtID)
	}
	return court, nil
}

// ensureSlotFree verifies no other active reservation occupies the interval.
// The reservation's own id is skipped so updates do not conflict with
// themselves.
func (s *reservationService) ensureSlotFree(ctx context.Context, reservation *model.Reservation) error {
	existing, err := s.repo.FindOverlapping(ctx, reservation.CourtID, reservation.StartTime, reservation.EndTime)
	if err != nil {
		return apperrors.Internal("Failed to check existing reservations", err)
	}

	for _, r := range existing {
		if r.ID == reservation.ID {
			continue
		}
		if overlaps(r.StartTime, r.EndTime, reservation.StartTime, reservation.EndTime) {
			return apperrors.Conflict(fmt.Sprintf(
				"Reservation time overlaps with existing reservation (%s - %s)",
				r.StartTime.Format(time.RFC3339),
				r.EndTime.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// ensureRenter guarantees a user record exists for the phone number. The
// first booking's name wins; later bookings under the same number never
// overwrite it.
func (s *reservationService) ensureRenter(ctx context.Context, reservation *model.Reservation) error {
	existing, err := s.userRepo.FindByPhone(ctx, reservation.PhoneNumber)
	if err != nil {
		return apperrors.Internal("Failed to look up user", err)
	}
	if len(existing) > 0 {
		return nil
	}

	user := &model.User{
		FullName:    reservation.FullName,
		PhoneNumber: reservation.PhoneNumber,
	}
	if _, err := s.userRepo.Save(ctx, user); err != nil {
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created for reservation", "phone_number", user.PhoneNumber)
	return nil
}

// acquireSlotLock inserts an advisory lock keyed by court and slot start so
// two concurrent requests for the same slot cannot both pass the overlap
// check.
func (s *reservationService) acquireSlotLock(ctx context.Context, courtID string, startTime time.Time) (string, error) {
	lockID := fmt.Sprintf("reservation_lock_%s_%d", courtID, startTime.Unix())

	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(lockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being reserved by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire reservation lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publish emits a lifecycle event. Best effort: the reservation is already
// committed, so a publish failure is logged and swallowed.
func (s *reservationService) publish(ctx context.Context, eventType string, reservation *model.Reservation, price float64) {
	if s.publisher == nil {
		return
	}

	payload := struct {
		Reservation *model.Reservation `json:"reservation"`
		Price       float64            `json:"price,omitempty"`
	}{
		Reservation: reservation,
		Price:       price,
	}

	msg := events.NewMessage().
		WithKey(reservation.CourtID).
		WithValue(payload).
		WithEventType(eventType).
		WithSource("courtside").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}
