package results

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no record has the requested run ID.
var ErrNotFound = errors.New("record not found")

// Filter narrows a [Store.List] query. Zero fields match everything.
type Filter struct {
	Graph     string
	Algorithm string
	Limit     int
}

func (f Filter) match(r Record) bool {
	return (f.Graph == "" || f.Graph == r.Graph) &&
		(f.Algorithm == "" || f.Algorithm == r.Algorithm)
}

// Store persists run records.
type Store interface {
	// Save stores records. Records with an existing run ID are replaced.
	Save(ctx context.Context, records ...Record) error
	// Get returns the record with the given run ID, or [ErrNotFound].
	Get(ctx context.Context, runID string) (Record, error)
	// List returns matching records, newest first.
	List(ctx context.Context, f Filter) ([]Record, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Save(_ context.Context, records ...Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.RunID == "" {
			return fmt.Errorf("save record: empty run id")
		}
		s.records[r.RunID] = r
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, runID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[runID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Record, error) {
	s.mu.RLock()
	var out []Record
	for _, r := range s.records {
		if f.match(r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return compareStrings(a.RunID, b.RunID)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Default MongoDB names.
const (
	DefaultDatabase   = "chromatic"
	DefaultCollection = "runs"
	connectTimeout    = 10 * time.Second
)

// MongoStore keeps records in a MongoDB collection, one document per run
// keyed by run ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to uri and uses database/collection, falling back
// to [DefaultDatabase] and [DefaultCollection] for empty names.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "graph", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "algorithm", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return &MongoStore{client: client, collection: coll}, nil
}

func (s *MongoStore) Save(ctx context.Context, records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, len(records))
	for i, r := range records {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: r.RunID}}).
			SetReplacement(r).
			SetUpsert(true)
	}
	if _, err := s.collection.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, runID string) (Record, error) {
	var r Record
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: runID}}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]Record, error) {
	filter := bson.D{}
	if f.Graph != "" {
		filter = append(filter, bson.E{Key: "graph", Value: f.Graph})
	}
	if f.Algorithm != "" {
		filter = append(filter, bson.E{Key: "algorithm", Value: f.Algorithm})
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var out []Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*MongoStore)(nil)
)
