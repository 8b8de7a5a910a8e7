package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/giftstore/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrUnavailable marks the degraded mode where no document store was
// configured at startup. Callers substitute fallback behavior instead of
// failing the request.
var ErrUnavailable = errors.New("document store not configured")

// State is the gateway's connection state, fixed at startup.
type State int

const (
	// StateUnconfigured: no connection URL or database name was provided.
	StateUnconfigured State = iota
	// StateConnected: the client was constructed and the ping succeeded.
	StateConnected
	// StateErrored: storage was configured but initialization failed.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateErrored:
		return "error"
	default:
		return "unconfigured"
	}
}

// DocumentStore is the storage gateway contract the services depend on.
type DocumentStore interface {
	State() State
	InsertDocument(ctx context.Context, collection string, doc interface{}) (string, error)
	ListDocuments(ctx context.Context, collection string) ([]bson.M, error)
	CountDocuments(ctx context.Context, collection string) (int64, error)
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// MongoStore wraps an optional MongoDB connection behind the DocumentStore
// contract. Construction never fails: missing configuration or a failed
// connect leave the store in a degraded state instead of aborting startup.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.StorageConfig
	logger   *zap.Logger
	state    State
	initErr  error
}

func NewMongoStore(cfg *config.StorageConfig, logger *zap.Logger) *MongoStore {
	store := &MongoStore{config: cfg, logger: logger, state: StateUnconfigured}

	if !cfg.Configured() {
		logger.Warn("Document store not configured, running with fallback data")
		return store
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		store.state = StateErrored
		store.initErr = err
		logger.Error("Failed to construct store client", zap.Error(err))
		return store
	}
	if err := client.Ping(ctx, nil); err != nil {
		store.state = StateErrored
		store.initErr = err
		logger.Error("Store configured but unreachable", zap.Error(err))
		return store
	}

	store.client = client
	store.database = client.Database(cfg.Database)
	store.state = StateConnected
	logger.Info("Document store connected", zap.String("database", cfg.Database))
	return store
}

func (m *MongoStore) State() State { return m.state }

// InitError returns the retained initialization failure, nil unless the
// store is in StateErrored.
func (m *MongoStore) InitError() error { return m.initErr }

func (m *MongoStore) DatabaseName() string {
	if m.database == nil {
		return ""
	}
	return m.database.Name()
}

func (m *MongoStore) ready() error {
	switch m.state {
	case StateConnected:
		return nil
	case StateErrored:
		return fmt.Errorf("document store unusable: %w", m.initErr)
	default:
		return ErrUnavailable
	}
}

func (m *MongoStore) InsertDocument(ctx context.Context, collection string, doc interface{}) (string, error) {
	if err := m.ready(); err != nil {
		return "", err
	}
	res, err := m.database.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert into %q: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (m *MongoStore) ListDocuments(ctx context.Context, collection string) ([]bson.M, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	cursor, err := m.database.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %q documents: %w", collection, err)
	}
	return docs, nil
}

func (m *MongoStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	return m.database.Collection(collection).CountDocuments(ctx, bson.D{})
}

func (m *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	return m.database.ListCollectionNames(ctx, bson.D{})
}

func (m *MongoStore) Ping(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}
	return m.client.Ping(ctx, nil)
}

func (m *MongoStore) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
