package service

import (
	"context"
	"errors"

	"courtside/internal/courts/repository"
	"courtside/internal/courts/validator"
	"courtside/internal/store"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"
)

type CourtService interface {
	Create(ctx context.Context, court *model.Court) (*model.Court, error)
	GetByID(ctx context.Context, id string) (*model.Court, error)
	GetAll(ctx context.Context) ([]*model.Court, error)
	Update(ctx context.Context, id string, court *model.Court) (*model.Court, error)
	SoftDelete(ctx context.Context, id string) error
	HardDeleteAll(ctx context.Context) error
	Seed(ctx context.Context) error
}

type courtService struct {
	repo      repository.CourtRepository
	validator *validator.CourtValidator
	cfg       *config.Config
}

func NewCourtService(repo repository.CourtRepository, v *validator.CourtValidator, cfg *config.Config) CourtService {
	return &courtService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *courtService) Create(ctx context.Context, court *model.Court) (*model.Court, error) {
	if court.ID != "" {
		return nil, apperrors.InvalidInput("Court ID is assigned by the service")
	}

	court.Name = sanitizer.NormalizeName(court.Name)
	if err := s.validate(court); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, court)
	if err != nil {
		s.cfg.Log.Error("Failed to create court", "error", err)
		return nil, apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created", "id", saved.ID, "name", saved.Name, "surface", saved.Surface)
	return saved, nil
}

func (s *courtService) GetByID(ctx context.Context, id string) (*model.Court, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Court", id)
		}
		if errors.Is(err, store.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid court ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve court", err)
	}

	return court, nil
}

func (s *courtService) GetAll(ctx context.Context) ([]*model.Court, error) {
	courts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list courts", "error", err)
		return nil, apperrors.Internal("Failed to retrieve courts", err)
	}
	return courts, nil
}

// Update overwrites every mutable field with the supplied values, the
// deleted flag included.
func (s *courtService) Update(ctx context.Context, id string, court *model.Court) (*model.Court, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	merged.Name = sanitizer.NormalizeName(court.Name)
	merged.Surface = court.Surface
	merged.Deleted = court.Deleted

	if err := s.validate(&merged); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, &merged)
	if err != nil {
		s.cfg.Log.Error("Failed to update court", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update court", err)
	}

	s.cfg.Log.Info("Court updated", "id", id)
	return saved, nil
}

func (s *courtService) SoftDelete(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Deleted = true
	if _, err := s.Update(ctx, id, existing); err != nil {
		return err
	}

	s.cfg.Log.Info("Court soft-deleted", "id", id)
	return nil
}

// HardDeleteAll physically removes every court, administrative use only.
func (s *courtService) HardDeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		s.cfg.Log.Error("Failed to delete courts", "error", err)
		return apperrors.Internal("Failed to delete courts", err)
	}

	s.cfg.Log.Info("All courts deleted")
	return nil
}

func (s *courtService) validate(court *model.Court) error {
	if err := s.validator.Validate(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "error", err)
		return apperrors.Validation("Court validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
