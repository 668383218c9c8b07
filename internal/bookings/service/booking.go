package service

import (
	"context"
	"errors"
	"sort"

	bookingerrors "resbook/internal/bookings/errors"
	"resbook/internal/bookings/events"
	"resbook/internal/bookings/repository"
	"resbook/internal/bookings/validator"
	"resbook/pkg/clock"
	"resbook/pkg/config"
	dbmongo "resbook/pkg/db/mongo"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/interval"
	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResourceChecker verifies that a booking targets a real resource.
// Implemented by the resource repository.
type ResourceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookingService is the reservation engine. Every operation takes the
// caller's identity explicitly; nothing here reads authentication state
// from the context.
type BookingService interface {
	Create(ctx context.Context, identity model.Identity, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, error)
	GetAll(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error)
	GetMine(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, identity model.Identity, id string, req *model.BookingRequest) (*model.Booking, error)
	Delete(ctx context.Context, identity model.Identity, id string) error
}

type bookingService struct {
	repo       repository.BookingRepository
	locks      repository.LockRepository
	resources  ResourceChecker
	tx         dbmongo.TransactionManager
	authorizer *Authorizer
	validator  *validator.BookingValidator
	publisher  events.EventPublisher
	clock      clock.Clock
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.LockRepository,
	resources ResourceChecker,
	tx dbmongo.TransactionManager,
	authorizer *Authorizer,
	bookingValidator *validator.BookingValidator,
	publisher events.EventPublisher,
	clk clock.Clock,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		locks:      locks,
		resources:  resources,
		tx:         tx,
		authorizer: authorizer,
		validator:  bookingValidator,
		publisher:  publisher,
		clock:      clk,
		cfg:        cfg,
	}
}

// Create books a resource for the caller. The conflict check and the
// insert run inside a transaction while the caller holds the resource
// lock, so two overlapping requests on the same resource cannot both
// pass the check.
func (s *bookingService) Create(ctx context.Context, identity model.Identity, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkResource(ctx, req.ResourceID); err != nil {
		return nil, err
	}

	if err := s.acquireLocks(ctx, req.ResourceID); err != nil {
		return nil, err
	}
	defer s.releaseLocks(ctx, req.ResourceID)

	booking := &model.Booking{
		ResourceID: req.ResourceID,
		OwnerID:    identity.OwnerID,
		OwnerEmail: identity.Email,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	err := s.tx.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflicts, err := s.repo.FindConflicts(sessCtx, req.ResourceID, req.StartTime, req.EndTime, "")
		if err != nil {
			return apperrors.Internal("Failed to check booking conflicts", err)
		}
		if len(conflicts) > 0 {
			return conflictError(conflicts)
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.publish(ctx, model.EventBookingCreated, booking)
	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"resource_id", booking.ResourceID,
		"owner_id", booking.OwnerID,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	if err := s.authorizer.CanAccess(identity, booking, ActionRead); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetAll lists every booking. Administrators only; regular users list
// their own through GetMine.
func (s *bookingService) GetAll(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	if !identity.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Listing all bookings requires the ADMIN role")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}
	return bookings, total, nil
}

func (s *bookingService) GetMine(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByOwner(ctx, identity.OwnerID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", err)
	}
	total, err := s.repo.CountByOwner(ctx, identity.OwnerID)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}
	return bookings, total, nil
}

// Update replaces a booking's resource and interval. When the update moves
// the booking to a different resource, locks on both resources are held in
// a fixed order so two opposing moves cannot deadlock.
func (s *bookingService) Update(ctx context.Context, identity model.Identity, id string, req *model.BookingRequest) (*model.Booking, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	if err := s.authorizer.CanAccess(identity, existing, ActionUpdate); err != nil {
		return nil, err
	}

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if req.ResourceID != existing.ResourceID {
		if err := s.checkResource(ctx, req.ResourceID); err != nil {
			return nil, err
		}
	}

	lockIDs := lockOrder(existing.ResourceID, req.ResourceID)
	if err := s.acquireLocks(ctx, lockIDs...); err != nil {
		return nil, err
	}
	defer s.releaseLocks(ctx, lockIDs...)

	updated := &model.Booking{
		ID:         existing.ID,
		ResourceID: req.ResourceID,
		OwnerID:    existing.OwnerID,
		OwnerEmail: existing.OwnerEmail,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		CreatedAt:  existing.CreatedAt,
	}

	err = s.tx.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflicts, err := s.repo.FindConflicts(sessCtx, req.ResourceID, req.StartTime, req.EndTime, id)
		if err != nil {
			return apperrors.Internal("Failed to check booking conflicts", err)
		}
		if len(conflicts) > 0 {
			return conflictError(conflicts)
		}
		if err := s.repo.Update(sessCtx, id, updated); err != nil {
			if errors.Is(err, bookingerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.publish(ctx, model.EventBookingUpdated, updated)
	s.cfg.Log.Info("Booking updated",
		"booking_id", id,
		"resource_id", updated.ResourceID,
		"owner_id", updated.OwnerID,
	)
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, identity model.Identity, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLookupError(err, id)
	}
	if err := s.authorizer.CanAccess(identity, existing, ActionDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapLookupError(err, id)
	}

	s.publish(ctx, model.EventBookingCancelled, existing)
	s.cfg.Log.Info("Booking cancelled",
		"booking_id", id,
		"resource_id", existing.ResourceID,
		"owner_id", existing.OwnerID,
	)
	return nil
}

// validateRequest rejects malformed payloads and intervals before any
// store access.
func (s *bookingService) validateRequest(req *model.BookingRequest) error {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}
	if !interval.IsWellFormed(req.StartTime, req.EndTime) {
		return apperrors.InvalidInterval("End time must be strictly after start time")
	}
	if req.StartTime.Before(s.clock.Now()) {
		return apperrors.InvalidInterval("Start time cannot be in the past")
	}
	return nil
}

func (s *bookingService) checkResource(ctx context.Context, resourceID string) error {
	exists, err := s.resources.Exists(ctx, resourceID)
	if err != nil {
		return apperrors.InvalidInput("Invalid resource ID: " + resourceID)
	}
	if !exists {
		return apperrors.NotFoundWithID("Resource", resourceID)
	}
	return nil
}

func (s *bookingService) acquireLocks(ctx context.Context, resourceIDs ...string) error {
	acquired := make([]string, 0, len(resourceIDs))
	for _, id := range resourceIDs {
		if err := s.locks.Acquire(ctx, id); err != nil {
			s.releaseLocks(ctx, acquired...)
			if errors.Is(err, bookingerrors.ErrLockHeld) {
				return apperrors.Conflict("Resource is being booked by another request, please retry")
			}
			return apperrors.Internal("Failed to acquire resource lock", err)
		}
		acquired = append(acquired, id)
	}
	return nil
}

func (s *bookingService) releaseLocks(ctx context.Context, resourceIDs ...string) {
	for _, id := range resourceIDs {
		if err := s.locks.Release(ctx, id); err != nil {
			s.cfg.Log.Error("Failed to release resource lock", "resource_id", id, "error", err)
		}
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := &model.BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		OwnerID:    booking.OwnerID,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		OccurredAt: s.clock.Now(),
	}
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

// lockOrder returns the distinct resource IDs in a fixed order so
// concurrent cross-resource updates always acquire locks the same way.
func lockOrder(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func conflictError(conflicts []*model.Booking) error {
	return apperrors.Conflict("Booking conflicts with an existing reservation").
		WithDetails(map[string]any{"conflicting_bookings": len(conflicts)})
}

func mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID: " + id)
	default:
		return apperrors.Internal("Booking lookup failed", err)
	}
}

func asAppError(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Booking operation failed", err)
}
