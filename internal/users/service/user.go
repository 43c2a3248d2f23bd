package service

import (
	"context"
	"errors"

	"courtside/internal/store"
	"courtside/internal/users/repository"
	"courtside/internal/users/validator"
	"courtside/pkg/config"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/model"
	"courtside/pkg/sanitizer"
)

type UserService interface {
	GetAll(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*model.User, error)
	// GetOrCreate returns the existing user for the phone number, or creates
	// one. When a record already exists the stored full name wins; nothing is
	// merged. The bool reports whether a record was created.
	GetOrCreate(ctx context.Context, fullName, phoneNumber string) (*model.User, bool, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, v *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, store.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	phoneNumber = sanitizer.NormalizePhone(phoneNumber)
	if phoneNumber == "" {
		return nil, apperrors.InvalidInput("Phone number cannot be empty")
	}

	users, err := s.repo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		s.cfg.Log.Error("Failed to look up user by phone", "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	if len(users) == 0 {
		return nil, apperrors.NotFound("User")
	}

	return users[0], nil
}

func (s *userService) GetOrCreate(ctx context.Context, fullName, phoneNumber string) (*model.User, bool, error) {
	user := &model.User{
		FullName:    sanitizer.NormalizeName(fullName),
		PhoneNumber: sanitizer.NormalizePhone(phoneNumber),
	}
	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return nil, false, apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByPhone(ctx, user.PhoneNumber)
	if err != nil {
		s.cfg.Log.Error("Failed to look up user by phone", "error", err)
		return nil, false, apperrors.Internal("Failed to retrieve user", err)
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, false, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created", "id", saved.ID)
	return saved, true, nil
}
