// Package storage selects the configured driver and hands back the stores
// built on it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/trendprints/storefront/internal/config"
	repository "github.com/trendprints/storefront/internal/repositories"
	mongorepo "github.com/trendprints/storefront/internal/repositories/mongodb"
	mongostore "github.com/trendprints/storefront/internal/storage/mongodb"
	"github.com/trendprints/storefront/internal/storage/postgres"
	"go.mongodb.org/mongo-driver/mongo"
)

type Storage struct {
	*repository.Repositories

	Driver string
	SQL    *sql.DB
	Mongo  *mongo.Client
}

// New connects to the configured driver, applies its schema and builds the
// repositories.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}

		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}

		slog.Info("✅ Connected to PostgreSQL", slog.String("host", cfg.Database.Host), slog.String("database", cfg.Database.Name))

		return &Storage{Repositories: repository.NewPostgresRepositories(db), Driver: config.DriverPostgres, SQL: db}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}

		db := client.Database(cfg.Mongo.Database)

		if err := mongostore.Migrate(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		slog.Info("✅ Connected to MongoDB", slog.String("database", cfg.Mongo.Database))

		repos := mongorepo.NewRepositories(db, mongorepo.Options{Transactions: cfg.Mongo.Transactions})

		return &Storage{Repositories: repos, Driver: config.DriverMongo, Mongo: client}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (s *Storage) Close(ctx context.Context) error {
	if s.SQL != nil {
		return s.SQL.Close()
	}

	if s.Mongo != nil {
		return s.Mongo.Disconnect(ctx)
	}

	return nil
}
