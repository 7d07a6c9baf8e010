// ============================================================================
// backend/internal/store/mongo.go
// MongoDB-backed Store implementation and connection helpers
// ============================================================================

package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"sga_secundaria/backend/internal/shared"
)

// kvDocument is the shape of one key-value entry in the kv collection.
// The key doubles as the document id, so prefix scans become _id range
// queries served by the default index.
type kvDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// MongoStore implements Store on a single MongoDB collection. This is the
// substitution point the in-process model leaves open: a shared backend
// would add per-record arbitration here, not in the core.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore wraps a collection as a key-value Store
func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	return &MongoStore{col: db.Collection(collection)}
}

// Get returns the value stored under key, if any
func (m *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return doc.Value, true, nil
}

// Set stores value under key, replacing any previous value
func (m *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": value}}
	opts := options.Update().SetUpsert(true)
	if _, err := m.col.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is a no-op
func (m *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// ScanPrefix returns all entries whose key starts with prefix, in
// ascending key order
func (m *MongoStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	// Keys are plain UTF-8 strings, so [prefix, prefix+￿) covers
	// exactly the keys sharing the prefix.
	filter := bson.M{"_id": bson.M{
		"$gte": prefix,
		"$lt":  prefix + "￿",
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := m.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to scan prefix %q: %w", prefix, err)
	}
	defer cursor.Close(ctx)

	var entries []Entry
	for cursor.Next(ctx) {
		var doc kvDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("[MongoStore] Skipping undecodable entry under prefix %q: %v", prefix, err)
			continue
		}
		entries = append(entries, Entry{Key: doc.Key, Value: doc.Value})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan prefix %q: %w", prefix, err)
	}
	return entries, nil
}

// ============================================================================
// Connection Helpers
// ============================================================================

// ConnectMongoDB establishes a MongoDB connection with pooling configured
// from MongoConfig and verifies it with a ping
func ConnectMongoDB(config *shared.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if config == nil {
		return nil, nil, fmt.Errorf("mongo config cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.URI).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize).
		SetMaxConnIdleTime(config.MaxIdleTime).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(config.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Successfully connected to MongoDB (Database: %s)", config.Database)

	return client, client.Database(config.Database), nil
}

// DisconnectMongoDB gracefully closes a MongoDB connection
func DisconnectMongoDB(client *mongo.Client) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	log.Println("Successfully disconnected from MongoDB")
	return nil
}

// Open builds the Store selected by StoreConfig. The returned closer is a
// no-op for the memory backend.
func Open(config *shared.StoreConfig) (Store, func() error, error) {
	switch config.Backend {
	case shared.StoreBackendMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case shared.StoreBackendMongo:
		client, db, err := ConnectMongoDB(&config.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closer := func() error { return DisconnectMongoDB(client) }
		return NewMongoStore(db, config.Mongo.Collection), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", config.Backend)
	}
}
