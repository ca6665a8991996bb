package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when no document has the given id.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an id is not a well-formed ObjectID.
	ErrInvalidID = errors.New("invalid document ID")
)

// Gateway is the document store consumed by the handlers: insert,
// filtered find, lookup by id, distinct values, plus the two calls the
// diagnostic endpoint needs. Handlers test against an in-memory fake.
type Gateway interface {
	Insert(ctx context.Context, collection string, doc bson.M) (string, error)
	Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)
	FindByID(ctx context.Context, collection string, id string) (bson.M, error)
	Distinct(ctx context.Context, collection, field string) ([]string, error)
	ListCollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}
