package service

import (
	"context"
	"testing"
	"time"

	"courtside/internal/store"
	"courtside/internal/users/validator"
	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/logger"
	"courtside/pkg/model"
)

const testUserID = "65a0b1c2d3e4f5a6b7c8d9e2"

// Mock repository for testing
type mockUserRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findAllFunc     func(ctx context.Context) ([]*model.User, error)
	findByPhoneFunc func(ctx context.Context, phoneNumber string) ([]*model.User, error)
	saveFunc        func(ctx context.Context, user *model.User) (*model.User, error)
	saved           []*model.User
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) FindByPhone(ctx context.Context, phoneNumber string) ([]*model.User, error) {
	if m.findByPhoneFunc != nil {
		return m.findByPhoneFunc(ctx, phoneNumber)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) Save(ctx context.Context, user *model.User) (*model.User, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, user)
	}
	if user.ID == "" {
		user.ID = testUserID
	}
	m.saved = append(m.saved, user)
	return user, nil
}

func (m *mockUserRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockUserRepository) *userService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &userService{
		repo:      repo,
		validator: validator.NewUserValidator(cfg.Log),
		cfg:       cfg,
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected error code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestGetOrCreate_CreatesNewUser(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestService(repo)

	user, created, err := svc.GetOrCreate(context.Background(), "  Jana  Novakova ", "123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !created {
		t.Error("expected a new user to be created")
	}
	if user.FullName != "Jana Novakova" {
		t.Errorf("expected normalized name, got %q", user.FullName)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 user saved, got %d", len(repo.saved))
	}
}

func TestGetOrCreate_ExistingUserKeepsStoredName(t *testing.T) {
	repo := &mockUserRepository{
		findByPhoneFunc: func(ctx context.Context, phoneNumber string) ([]*model.User, error) {
			return []*model.User{
				{ID: testUserID, FullName: "Jana Novakova", PhoneNumber: phoneNumber},
			}, nil
		},
	}
	svc := newTestService(repo)

	user, created, err := svc.GetOrCreate(context.Background(), "J. Novakova", "123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created {
		t.Error("expected the existing user to be returned, not created")
	}
	if user.FullName != "Jana Novakova" {
		t.Errorf("expected the stored name to win, got %q", user.FullName)
	}
	if len(repo.saved) != 0 {
		t.Errorf("expected no write for an existing phone number, got %d", len(repo.saved))
	}
}

func TestGetOrCreate_InvalidPhone(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, _, err := svc.GetOrCreate(context.Background(), "Jana Novakova", "abc")
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestGetByPhone_NotFound(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, err := svc.GetByPhone(context.Background(), "123456789")
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestGetByID_EmptyID(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, err := svc.GetByID(context.Background(), "")
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}
