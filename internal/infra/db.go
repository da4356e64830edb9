package infra

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"donation-api/internal/domain"
)

// StoreKind identifies the record store backend selected by the connection string.
type StoreKind string

const (
	StoreMongo    StoreKind = "mongo"
	StorePostgres StoreKind = "postgres"

	// database the Mongo tooling uses when the URI names none
	defaultMongoDatabase = "test"
)

// DetectStoreKind maps the scheme of a connection string to a backend.
func DetectStoreKind(databaseURL string) (StoreKind, error) {
	scheme, _, ok := strings.Cut(strings.TrimSpace(databaseURL), "://")
	if !ok {
		return "", fmt.Errorf("%w: missing scheme", domain.ErrUnsupportedStore)
	}
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return StoreMongo, nil
	case "postgres", "postgresql":
		return StorePostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedStore, scheme)
	}
}

// MongoDatabaseName returns the configured database, falling back to the
// path component of the connection string.
func MongoDatabaseName(cfg *Config) string {
	if name := strings.TrimSpace(cfg.MongoDatabase); name != "" {
		return name
	}
	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultMongoDatabase
}

// NewMongoClient builds a MongoDB client. The driver connects lazily, so a
// store that is down at startup only surfaces on the first operation.
func NewMongoClient(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	opts := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetAppName(serviceName).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, nil
}

// NewDBPool initializes a new pgx connection pool using the provided configuration.
func NewDBPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return pool, nil
}
