// Package store is the generic persistence gateway. It knows nothing about
// courts, users, or reservations beyond the Record contract; entity-specific
// queries live in the per-entity repository packages composed on top of it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtside/pkg/config"
	mongotx "courtside/pkg/db/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid record ID format")
)

// Record is the minimal identity contract every persisted entity satisfies.
type Record interface {
	GetID() string
	SetID(string)
}

// Ptr constrains the store to pointer records so Save can assign identities
// in place.
type Ptr[T any] interface {
	*T
	Record
}

type Mongo[T any, PT Ptr[T]] struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongo[T any, PT Ptr[T]](cfg *config.Config, collectionName string) *Mongo[T, PT] {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &Mongo[T, PT]{
		cfg:        cfg,
		collection: db.Collection(collectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds standalone operations. Inside a transaction the session
// context is returned unchanged; wrapping it would break session semantics.
func (s *Mongo[T, PT]) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}

	return context.WithTimeout(ctx, timeout)
}

// FindByID is a direct lookup and deliberately ignores the deleted flag:
// soft-deleted records stay retrievable by id.
func (s *Mongo[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var zero PT
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return zero, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var record T
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to find record: %w", err)
	}

	return PT(&record), nil
}

// FindAll returns every record that is not soft-deleted.
func (s *Mongo[T, PT]) FindAll(ctx context.Context) ([]PT, error) {
	return s.Find(ctx, bson.M{"deleted": false}, nil)
}

// Find runs an arbitrary filter; the per-entity repositories build their
// queries through it.
func (s *Mongo[T, PT]) Find(ctx context.Context, filter bson.M, sort bson.D) ([]PT, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []PT
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	return records, nil
}

// Save inserts when the record has no identity yet, assigning one, and
// otherwise overwrites the stored record by identity.
func (s *Mongo[T, PT]) Save(ctx context.Context, record PT) (PT, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	var zero PT
	if record.GetID() == "" {
		record.SetID(primitive.NewObjectID().Hex())
		if _, err := s.collection.InsertOne(ctx, record); err != nil {
			return zero, fmt.Errorf("failed to insert record: %w", err)
		}
		return record, nil
	}

	if _, err := primitive.ObjectIDFromHex(record.GetID()); err != nil {
		return zero, fmt.Errorf("%w: %s", ErrInvalidID, record.GetID())
	}

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": record.GetID()}, record)
	if err != nil {
		return zero, fmt.Errorf("failed to replace record: %w", err)
	}
	if result.MatchedCount == 0 {
		return zero, ErrNotFound
	}

	return record, nil
}

// DeleteByID physically removes a record. Reservation and court workflows
// soft-delete instead; this is the administrative path.
func (s *Mongo[T, PT]) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll physically removes every record of the kind, soft-deleted ones
// included.
func (s *Mongo[T, PT]) DeleteAll(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := s.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}

	return nil
}

// UpdateMany applies an update document to every record matching the filter
// and reports how many records changed.
func (s *Mongo[T, PT]) UpdateMany(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	result, err := s.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update records: %w", err)
	}

	return result.ModifiedCount, nil
}

func (s *Mongo[T, PT]) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

func (s *Mongo[T, PT]) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return s.txManager.ExecuteTransaction(ctx, fn)
}
