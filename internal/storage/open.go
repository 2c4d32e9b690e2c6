package storage

import (
	"alcyxob/workout-map/internal/config"
	"alcyxob/workout-map/internal/repository"
	"alcyxob/workout-map/internal/repository/fs"
	mongorepo "alcyxob/workout-map/internal/repository/mongo"
	"alcyxob/workout-map/internal/repository/postgres"
	"alcyxob/workout-map/internal/repository/redis"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/afero"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open connects the flat store selected by cfg.Storage.Driver. The returned
// close func releases the connection and is never nil.
func Open(ctx context.Context, cfg config.Config) (repository.FlatStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverFile, "":
		flat, err := fs.NewFlatStore(afero.NewOsFs(), cfg.Storage.FileDir)
		if err != nil {
			return nil, noop, fmt.Errorf("file store in %s: %w", cfg.Storage.FileDir, err)
		}
		log.Printf("INFO: Using file flat store in %s", cfg.Storage.FileDir)
		return flat, noop, nil

	case config.DriverMemory:
		log.Println("INFO: Using in-memory flat store; workouts are lost on exit")
		return fs.NewMemoryFlatStore(), noop, nil

	case config.DriverMongo:
		client, err := mongorepo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return nil, noop, fmt.Errorf("connect mongo: %w", err)
		}
		closeFn := func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}
		db := client.Database(cfg.Database.Name)
		log.Printf("INFO: Using MongoDB flat store %s.%s", cfg.Database.Name, cfg.Database.Collection)
		return mongorepo.NewMongoFlatStore(db, cfg.Database.Collection), closeFn, nil

	case config.DriverS3:
		flat, err := NewS3FlatStore(ctx, cfg.S3)
		if err != nil {
			return nil, noop, fmt.Errorf("s3 store: %w", err)
		}
		return flat, noop, nil

	case config.DriverRedis:
		client := redis.Connect(redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if client == nil {
			return nil, noop, errors.New("redis driver needs redis.addr")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("ping redis: %w", err)
		}
		log.Printf("INFO: Using Redis flat store at %s", cfg.Redis.Addr)
		return redis.NewFlatStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if pool == nil {
			return nil, noop, errors.New("postgres driver needs postgres.url")
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ensure postgres schema: %w", err)
		}
		log.Println("INFO: Using Postgres flat store")
		return postgres.NewFlatStore(pool), pool.Close, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
}
