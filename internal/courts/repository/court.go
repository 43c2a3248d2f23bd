package repository

import (
	"context"

	"courtside/internal/store"
	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"
	"courtside/pkg/model"
)

const CollectionName = "Courts"

type CourtRepository interface {
	FindByID(ctx context.Context, id string) (*model.Court, error)
	FindAll(ctx context.Context) ([]*model.Court, error)
	Save(ctx context.Context, court *model.Court) (*model.Court, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoCourtRepository struct {
	store *store.Mongo[model.Court, *model.Court]
}

func NewMongoCourtRepository(cfg *config.Config) CourtRepository {
	return &mongoCourtRepository{
		store: store.NewMongo[model.Court, *model.Court](cfg, CollectionName),
	}
}

func (r *mongoCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	return r.store.FindByID(ctx, id)
}

func (r *mongoCourtRepository) FindAll(ctx context.Context) ([]*model.Court, error) {
	return r.store.FindAll(ctx)
}

func (r *mongoCourtRepository) Save(ctx context.Context, court *model.Court) (*model.Court, error) {
	return r.store.Save(ctx, court)
}

// DeleteAll is the administrative hard delete; court workflows soft-delete.
func (r *mongoCourtRepository) DeleteAll(ctx context.Context) error {
	return r.store.DeleteAll(ctx)
}

func (r *mongoCourtRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

func (r *mongoCourtRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.store.ExecuteTransaction(ctx, fn)
}
