package handlers_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/internal/store"
)

// fakeStore is a minimal in-memory Gateway for handler tests. It
// understands the two filter shapes the handlers build: an exact match
// and a case-insensitive {$regex} on a string field.
type fakeStore struct {
	mu          sync.Mutex
	collections map[string][]bson.M

	insertErr    error
	findErr      error
	distinctErr  error
	listNamesErr error
	pingErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: map[string][]bson.M{}}
}

func (f *fakeStore) Insert(ctx context.Context, collection string, doc bson.M) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return "", f.insertErr
	}

	stored := copyDoc(doc)
	id := primitive.NewObjectID()
	stored["_id"] = id
	f.collections[collection] = append(f.collections[collection], stored)
	return id.Hex(), nil
}

func (f *fakeStore) Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}

	out := make([]bson.M, 0)
	for _, doc := range f.collections[collection] {
		if int64(len(out)) >= limit {
			break
		}
		if matchesFilter(doc, filter) {
			out = append(out, copyDoc(doc))
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(ctx context.Context, collection string, id string) (bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	for _, doc := range f.collections[collection] {
		if doc["_id"] == objID {
			return copyDoc(doc), nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.distinctErr != nil {
		return nil, f.distinctErr
	}

	seen := map[string]bool{}
	out := make([]string, 0)
	for _, doc := range f.collections[collection] {
		if s, ok := doc[field].(string); ok && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listNamesErr != nil {
		return nil, f.listNamesErr
	}

	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

// seed inserts a raw document, bypassing validation.
func (f *fakeStore) seed(collection string, doc bson.M) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := copyDoc(doc)
	if _, ok := stored["_id"]; !ok {
		stored["_id"] = primitive.NewObjectID()
	}
	f.collections[collection] = append(f.collections[collection], stored)
}

func (f *fakeStore) count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collections[collection])
}

// mutate edits a stored document in place.
func (f *fakeStore) mutate(collection, id string, fn func(bson.M)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.collections[collection] {
		if oid, ok := doc["_id"].(primitive.ObjectID); ok && oid.Hex() == id {
			fn(doc)
			return
		}
	}
}

func matchesFilter(doc, filter bson.M) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if m, isMap := want.(bson.M); isMap {
			pattern, _ := m["$regex"].(string)
			s, _ := got.(string)
			if !strings.Contains(strings.ToLower(s), strings.ToLower(pattern)) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
