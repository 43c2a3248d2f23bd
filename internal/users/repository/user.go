package repository

import (
	"context"

	"courtside/internal/store"
	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"
	"courtside/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

const CollectionName = "Users"

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) ([]*model.User, error)
	Save(ctx context.Context, user *model.User) (*model.User, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoUserRepository struct {
	store *store.Mongo[model.User, *model.User]
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	return &mongoUserRepository{
		store: store.NewMongo[model.User, *model.User](cfg, CollectionName),
	}
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.store.FindByID(ctx, id)
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	return r.store.FindAll(ctx)
}

// FindByPhone returns the active users registered under a phone number. The
// reservation workflow keeps this at one record per number, but the data
// model does not enforce it.
func (r *mongoUserRepository) FindByPhone(ctx context.Context, phoneNumber string) ([]*model.User, error) {
	filter := bson.M{
		"phone_number": phoneNumber,
		"deleted":      false,
	}
	return r.store.Find(ctx, filter, nil)
}

func (r *mongoUserRepository) Save(ctx context.Context, user *model.User) (*model.User, error) {
	return r.store.Save(ctx, user)
}

func (r *mongoUserRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.store.ExecuteTransaction(ctx, fn)
}
