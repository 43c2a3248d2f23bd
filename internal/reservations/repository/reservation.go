package repository

import (
	"context"
	"time"

	"courtside/internal/store"
	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"
	"courtside/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

const CollectionName = "Reservations"

type ReservationRepository interface {
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context) ([]*model.Reservation, error)
	FindByCourt(ctx context.Context, courtID string) ([]*model.Reservation, error)
	FindByPhone(ctx context.Context, phoneNumber string) ([]*model.Reservation, error)
	FindUpcomingByPhone(ctx context.Context, phoneNumber string, now time.Time) ([]*model.Reservation, error)
	FindOverlapping(ctx context.Context, courtID string, start, end time.Time) ([]*model.Reservation, error)
	Save(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error)
	SoftDeleteAll(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoReservationRepository struct {
	store *store.Mongo[model.Reservation, *model.Reservation]
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	return &mongoReservationRepository{
		store: store.NewMongo[model.Reservation, *model.Reservation](cfg, CollectionName),
	}
}

// sortByStart orders listings chronologically.
var sortByStart = bson.D{{Key: "start_time", Value: 1}}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	return r.store.FindByID(ctx, id)
}

func (r *mongoReservationRepository) FindAll(ctx context.Context) ([]*model.Reservation, error) {
	return r.store.Find(ctx, bson.M{"deleted": false}, sortByStart)
}

func (r *mongoReservationRepository) FindByCourt(ctx context.Context, courtID string) ([]*model.Reservation, error) {
	filter := bson.M{
		"court_id": courtID,
		"deleted":  false,
	}
	return r.store.Find(ctx, filter, sortByStart)
}

func (r *mongoReservationRepository) FindByPhone(ctx context.Context, phoneNumber string) ([]*model.Reservation, error) {
	filter := bson.M{
		"phone_number": phoneNumber,
		"deleted":      false,
	}
	return r.store.Find(ctx, filter, sortByStart)
}

func (r *mongoReservationRepository) FindUpcomingByPhone(ctx context.Context, phoneNumber string, now time.Time) ([]*model.Reservation, error) {
	filter := bson.M{
		"phone_number": phoneNumber,
		"deleted":      false,
		"start_time":   bson.M{"$gte": now},
	}
	return r.store.Find(ctx, filter, sortByStart)
}

// FindOverlapping returns the active reservations on a court whose interval
// intersects [start, end). Intervals are half-open, so a reservation ending
// exactly at start does not match.
func (r *mongoReservationRepository) FindOverlapping(ctx context.Context, courtID string, start, end time.Time) ([]*model.Reservation, error) {
	filter := bson.M{
		"court_id":   courtID,
		"deleted":    false,
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
	return r.store.Find(ctx, filter, sortByStart)
}

func (r *mongoReservationRepository) Save(ctx context.Context, reservation *model.Reservation) (*model.Reservation, error) {
	return r.store.Save(ctx, reservation)
}

// SoftDeleteAll flags every active reservation as deleted and reports how
// many were flagged. Already-deleted records are left untouched.
func (r *mongoReservationRepository) SoftDeleteAll(ctx context.Context) (int64, error) {
	return r.store.UpdateMany(ctx,
		bson.M{"deleted": false},
		bson.M{"$set": bson.M{"deleted": true}},
	)
}

func (r *mongoReservationRepository) DeleteAll(ctx context.Context) error {
	return r.store.DeleteAll(ctx)
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.store.ExecuteTransaction(ctx, fn)
}
