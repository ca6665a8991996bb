package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	queryTimeout = 10 * time.Second
)

// MongoStore implements Gateway on top of a mongo database.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Name returns the underlying database name, used by diagnostics.
func (s *MongoStore) Name() string {
	return s.db.Name()
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc bson.M) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetLimit(limit)
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) FindByID(ctx context.Context, collection string, id string) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *MongoStore) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	values, err := s.db.Collection(collection).Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (s *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	return s.db.ListCollectionNames(ctx, bson.M{})
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	return s.db.Client().Ping(ctx, readpref.Primary())
}
