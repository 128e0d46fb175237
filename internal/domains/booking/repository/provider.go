package repository

import (
	"micelio/config"
	"micelio/helper"
	"micelio/infras/otel"
	"micelio/infras/postgres"
	"micelio/infras/s3"
	"micelio/shared/constant"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewSnapshot picks the storage adapter named by STORAGE_DRIVER. Postgres and
// S3 clients are only created when their driver is selected.
func NewSnapshot(cfg *config.Config, redisClient *goRedis.Client, otel otel.Otel) Snapshot {
	key := cfg.Storage.Key
	if key == constant.Empty {
		key = constant.DefaultStorageKey
	}

	driver := cfg.Storage.Driver
	if driver == constant.Empty {
		driver = constant.StorageDriverRedis
	}

	log.Info().Str("driver", driver).Str("key", key).Msg("Booking storage selected")

	switch driver {
	case constant.StorageDriverMemory:
		return NewMemoryBackend().Snapshot()
	case constant.StorageDriverRedis:
		return NewRedis(redisClient, key, otel)
	case constant.StorageDriverPostgres:
		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				log.Fatal().Err(err).Msg("Failed to migrate booking snapshot table")
			}
		}

		return NewPostgres(postgres.New(cfg), key, otel)
	case constant.StorageDriverS3:
		interval := time.Duration(cfg.Storage.PollIntervalSeconds) * time.Second

		return NewS3(s3.New(cfg, otel), key, interval, otel)
	default:
		log.Fatal().Str("driver", driver).Msg("Unknown booking storage driver")
	}

	return nil
}
