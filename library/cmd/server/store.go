package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/entitystore/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/library/app"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

// initializeStore creates the entity store selected by cfg.AdapterType and returns a function releasing it.
func initializeStore(ctx context.Context, cfg config.AppConfig, obs app.Observability) (app.Store, func(), error) {
	if cfg.AdapterType == config.AdapterMemory {
		var options []memoryengine.Option
		if obs.Logger != nil {
			options = append(options, memoryengine.WithLogger(obs.Logger))
		}

		store, err := memoryengine.NewStore(options...)

		return store, func() {}, err
	}

	options := postgresOptions(obs)

	var (
		store   *postgresengine.Store
		closeFn func()
		err     error
	)

	switch cfg.AdapterType {
	case config.AdapterPGXPool:
		store, closeFn, err = initializePGXStore(ctx, cfg, options)
	case config.AdapterSQLDB:
		db, dbErr := config.PostgresSQLDB(ctx, cfg.PostgresDSN)
		if dbErr != nil {
			return nil, nil, dbErr
		}

		closeFn = func() { _ = db.Close() }
		store, err = postgresengine.NewStoreFromSQLDB(db, options...)
	case config.AdapterSQLXDB:
		db, dbErr := config.PostgresSQLX(ctx, cfg.PostgresDSN)
		if dbErr != nil {
			return nil, nil, dbErr
		}

		closeFn = func() { _ = db.Close() }
		store, err = postgresengine.NewStoreFromSQLX(db, options...)
	default:
		return nil, nil, fmt.Errorf("unsupported adapter type %q", cfg.AdapterType)
	}

	if err != nil {
		if closeFn != nil {
			closeFn()
		}

		return nil, nil, err
	}

	if err = store.Ping(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	if cfg.CreateSchema {
		if err = store.CreateSchema(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	return store, closeFn, nil
}

func initializePGXStore(
	ctx context.Context,
	cfg config.AppConfig,
	options []postgresengine.Option,
) (*postgresengine.Store, func(), error) {
	primary, err := newPGXPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}

	if cfg.PostgresReplicaDSN == "" {
		store, storeErr := postgresengine.NewStoreFromPGXPool(primary, options...)
		return store, primary.Close, storeErr
	}

	replica, err := newPGXPool(ctx, cfg.PostgresReplicaDSN)
	if err != nil {
		primary.Close()
		return nil, nil, err
	}

	closeFn := func() {
		replica.Close()
		primary.Close()
	}

	store, err := postgresengine.NewStoreFromPGXPoolWithReplica(primary, replica, options...)

	return store, closeFn, err
}

func newPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	return pgxpool.NewWithConfig(ctx, poolConfig)
}

func postgresOptions(obs app.Observability) []postgresengine.Option {
	var options []postgresengine.Option

	if obs.Logger != nil {
		options = append(options, postgresengine.WithLogger(obs.Logger))
	}

	if obs.ContextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(obs.ContextualLogger))
	}

	if obs.Metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.Metrics))
	}

	if obs.Tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.Tracing))
	}

	return options
}
