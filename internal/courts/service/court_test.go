package service

import (
	"context"
	"testing"
	"time"

	"courtside/internal/courts/validator"
	"courtside/internal/store"
	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"
	apperrors "courtside/pkg/errors"
	"courtside/pkg/logger"
	"courtside/pkg/model"
)

const testCourtID = "65a0b1c2d3e4f5a6b7c8d9e0"

// Mock repository for testing
type mockCourtRepository struct {
	findByIDFunc  func(ctx context.Context, id string) (*model.Court, error)
	findAllFunc   func(ctx context.Context) ([]*model.Court, error)
	saveFunc      func(ctx context.Context, court *model.Court) (*model.Court, error)
	deleteAllFunc func(ctx context.Context) error
	countFunc     func(ctx context.Context) (int64, error)
	saved         []*model.Court
}

func (m *mockCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockCourtRepository) FindAll(ctx context.Context) ([]*model.Court, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Court{}, nil
}

func (m *mockCourtRepository) Save(ctx context.Context, court *model.Court) (*model.Court, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, court)
	}
	if court.ID == "" {
		court.ID = testCourtID
	}
	m.saved = append(m.saved, court)
	return court, nil
}

func (m *mockCourtRepository) DeleteAll(ctx context.Context) error {
	if m.deleteAllFunc != nil {
		return m.deleteAllFunc(ctx)
	}
	return nil
}

func (m *mockCourtRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockCourtRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockCourtRepository, seed bool) *courtService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		SeedDefaultCourts: seed,
	}
	return &courtService{
		repo:      repo,
		validator: validator.NewCourtValidator(cfg.Log),
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

func TestCreate_Success(t *testing.T) {
	repo := &mockCourtRepository{}
	svc := newTestService(repo, false)

	court := &model.Court{Name: "  Center   Court ", Surface: model.SurfaceGrass}

	created, err := svc.Create(context.Background(), court)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == "" {
		t.Error("expected court to receive an id")
	}
	if created.Name != "Center Court" {
		t.Errorf("expected normalized name, got %q", created.Name)
	}
}

func TestCreate_RejectsClientSuppliedID(t *testing.T) {
	svc := newTestService(&mockCourtRepository{}, false)

	court := &model.Court{ID: testCourtID, Name: "Court 1", Surface: model.SurfaceGrass}

	_, err := svc.Create(context.Background(), court)
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestCreate_UnknownSurface(t *testing.T) {
	svc := newTestService(&mockCourtRepository{}, false)

	court := &model.Court{Name: "Court 1", Surface: model.Surface("CARPET")}

	_, err := svc.Create(context.Background(), court)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockCourtRepository{}, false)

	_, err := svc.GetByID(context.Background(), testCourtID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	repo := &mockCourtRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Court, error) {
			return nil, store.ErrInvalidID
		},
	}
	svc := newTestService(repo, false)

	_, err := svc.GetByID(context.Background(), "not-an-object-id")
	assertAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestGetByID_ReturnsSoftDeletedCourt(t *testing.T) {
	repo := &mockCourtRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Court, error) {
			return &model.Court{ID: id, Name: "Old Court", Surface: model.SurfaceClay, Deleted: true}, nil
		},
	}
	svc := newTestService(repo, false)

	court, err := svc.GetByID(context.Background(), testCourtID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !court.Deleted {
		t.Error("expected the soft-deleted court to stay retrievable by id")
	}
}

func TestSoftDelete_SetsFlag(t *testing.T) {
	var saved *model.Court
	repo := &mockCourtRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Court, error) {
			return &model.Court{ID: id, Name: "Court 1", Surface: model.SurfaceGrass}, nil
		},
		saveFunc: func(ctx context.Context, court *model.Court) (*model.Court, error) {
			saved = court
			return court, nil
		},
	}
	svc := newTestService(repo, false)

	if err := svc.SoftDelete(context.Background(), testCourtID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil || !saved.Deleted {
		t.Error("expected the court stored with the deleted flag set")
	}
}

func TestSeed_EmptyCollection(t *testing.T) {
	repo := &mockCourtRepository{}
	svc := newTestService(repo, true)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.saved) != len(defaultCourts) {
		t.Fatalf("expected %d seeded courts, got %d", len(defaultCourts), len(repo.saved))
	}
	if repo.saved[0].Name != "Court 1" || repo.saved[0].Surface != model.SurfaceGrass {
		t.Errorf("unexpected first seeded court: %+v", repo.saved[0])
	}
}

func TestSeed_SkipsNonEmptyCollection(t *testing.T) {
	repo := &mockCourtRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			return 4, nil
		},
	}
	svc := newTestService(repo, true)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.saved) != 0 {
		t.Errorf("expected no courts seeded into a non-empty collection, got %d", len(repo.saved))
	}
}

func TestSeed_Disabled(t *testing.T) {
	repo := &mockCourtRepository{}
	svc := newTestService(repo, false)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.saved) != 0 {
		t.Errorf("expected seeding disabled, got %d saved courts", len(repo.saved))
	}
}
