package service

import (
	"context"
	"errors"

	reserrors "resbook/internal/resources/errors"
	"resbook/internal/resources/repository"
	"resbook/internal/resources/validator"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/model"
)

// BookingCounter reports how many bookings reference a resource. Implemented
// by the booking repository; the catalog only needs the count to guard
// deletion.
type BookingCounter interface {
	CountByResource(ctx context.Context, resourceID string) (int64, error)
}

type ResourceService interface {
	Create(ctx context.Context, resource *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, int64, error)
	Update(ctx context.Context, id string, updates *model.ResourceUpdate) error
	Delete(ctx context.Context, id string) error
}

type resourceService struct {
	repo      repository.ResourceRepository
	bookings  BookingCounter
	validator *validator.ResourceValidator
	cfg       *config.Config
}

func NewResourceService(
	repo repository.ResourceRepository,
	bookings BookingCounter,
	resourceValidator *validator.ResourceValidator,
	cfg *config.Config,
) ResourceService {
	return &resourceService{
		repo:      repo,
		bookings:  bookings,
		validator: resourceValidator,
		cfg:       cfg,
	}
}

func (s *resourceService) Create(ctx context.Context, resource *model.Resource) error {
	if err := s.validator.ValidateCreate(resource); err != nil {
		s.cfg.Log.Warn("Resource validation failed", "error", err)
		return apperrors.Validation("Invalid resource input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		if errors.Is(err, reserrors.ErrNameTaken) {
			return apperrors.Conflict("A resource with this name already exists")
		}
		return apperrors.Internal("Failed to create resource", err)
	}

	s.cfg.Log.Info("Resource created", "resource_id", resource.ID, "name", resource.Name)
	return nil
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return resource, nil
}

func (s *resourceService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	resources, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list resources", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count resources", err)
	}

	return resources, total, nil
}

func (s *resourceService) Update(ctx context.Context, id string, updates *model.ResourceUpdate) error {
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Resource update validation failed", "resource_id", id, "error", err)
		return apperrors.Validation("Invalid resource update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, reserrors.ErrNameTaken) {
			return apperrors.Conflict("A resource with this name already exists")
		}
		return mapLookupError(err, id)
	}

	s.cfg.Log.Info("Resource updated", "resource_id", id)
	return nil
}

// Delete removes a resource from the catalog. Resources with bookings on
// record cannot be removed; the bookings must be cancelled first.
func (s *resourceService) Delete(ctx context.Context, id string) error {
	count, err := s.bookings.CountByResource(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to check resource bookings", err)
	}
	if count > 0 {
		return apperrors.Conflict("Resource has bookings and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapLookupError(err, id)
	}

	s.cfg.Log.Info("Resource deleted", "resource_id", id)
	return nil
}

func mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, reserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Resource", id)
	case errors.Is(err, reserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid resource ID: " + id)
	default:
		return apperrors.Internal("Resource operation failed", err)
	}
}
