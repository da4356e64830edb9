package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"donation-api/internal/domain"
	"donation-api/internal/infra"
)

const startupPingTimeout = 5 * time.Second

// Stores bundles the repositories of the selected backend.
type Stores struct {
	Kind      infra.StoreKind
	Donations domain.DonationRepository
	Contacts  domain.ContactRepository
	Pinger    domain.Pinger
	close     func(ctx context.Context) error
}

// Close releases the underlying client or pool.
func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open builds the repositories for the backend named by cfg.DatabaseURL.
// Only configuration errors are returned; an unreachable store is logged and
// left for individual requests to report.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Stores, error) {
	kind, err := infra.DetectStoreKind(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	switch kind {
	case infra.StoreMongo:
		return openMongo(ctx, cfg, logger), nil
	case infra.StorePostgres:
		return openPostgres(ctx, cfg, logger)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedStore, kind)
}

// NewUnavailableStores returns stores whose every operation fails with cause.
func NewUnavailableStores(kind infra.StoreKind, cause error) *Stores {
	u := unavailable{cause: cause}
	return &Stores{
		Kind:      kind,
		Donations: unavailableDonations{u},
		Contacts:  unavailableContacts{u},
		Pinger:    u,
	}
}

type mongoPinger struct{ client *mongo.Client }

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

func openMongo(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) *Stores {
	client, err := infra.NewMongoClient(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("mongo client unavailable, requests will fail until restart")
		return NewUnavailableStores(infra.StoreMongo, err)
	}

	db := client.Database(infra.MongoDatabaseName(cfg))
	donations := NewDonationRepositoryMongo(db)
	contacts := NewContactRepositoryMongo(db)
	stores := &Stores{
		Kind:      infra.StoreMongo,
		Donations: donations,
		Contacts:  contacts,
		Pinger:    mongoPinger{client: client},
		close:     client.Disconnect,
	}

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err := stores.Pinger.Ping(pingCtx); err != nil {
		logger.Error().Err(err).Str("database", db.Name()).Msg("mongo connection failed")
		return stores
	}
	logger.Info().Str("database", db.Name()).Msg("mongo connected")

	for _, idx := range []interface{ EnsureIndexes(context.Context) error }{donations, contacts} {
		if err := idx.EnsureIndexes(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("ensure indexes")
		}
	}
	return stores
}

func openPostgres(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Stores, error) {
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	runner := infra.NewSQLRunner(pool, logger)
	stores := &Stores{
		Kind:      infra.StorePostgres,
		Donations: NewDonationRepositoryPG(runner),
		Contacts:  NewContactRepositoryPG(runner),
		Pinger:    runner,
		close:     closePool(pool),
	}

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err := runner.Ping(pingCtx); err != nil {
		logger.Error().Err(err).Msg("postgres connection failed")
		return stores, nil
	}
	logger.Info().Msg("postgres connected")
	return stores, nil
}

func closePool(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}
