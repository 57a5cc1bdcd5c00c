package storage

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"waitlist/internal/config"
	"waitlist/internal/models"
)

func ConnectDatabase(cfg config.Postgres, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "storage: connect postgres")
	}

	log.Infof("connected to postgres at %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return errors.Wrap(err, "storage: migrate documents")
	}
	return nil
}

func InitRedis(ctx context.Context, cfg config.Redis, log *logrus.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "storage: ping redis at %s", cfg.Addr)
	}

	log.Infof("redis is running on %s on db %d", cfg.Addr, cfg.Database)
	return rdb, nil
}

// Open connects the document store selected by cfg.Backend. The returned
// func releases the underlying connection.
func Open(ctx context.Context, cfg config.Store, log *logrus.Logger) (DocumentStore, func() error, error) {
	switch cfg.Backend {
	case config.MemoryBackend:
		log.Warn("using in-memory store, queues are lost on restart")
		return NewMemoryStore(), func() error { return nil }, nil

	case config.RedisBackend:
		rdb, err := InitRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(rdb), rdb.Close, nil

	case config.PostgresBackend:
		db, err := ConnectDatabase(cfg.Postgres, log)
		if err != nil {
			return nil, nil, err
		}
		store, closeDB, err := openGorm(db)
		if err != nil {
			return nil, nil, err
		}
		return store, closeDB, nil
	}
	return nil, nil, errors.Errorf("storage: unknown backend %q", cfg.Backend)
}

// openGorm migrates db and wraps it in a GormStore. db is closed on failure.
func openGorm(db *gorm.DB) (*GormStore, func() error, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "storage: sql handle")
	}
	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return NewGormStore(db), sqlDB.Close, nil
}
