/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"dirpx.dev/errview/config"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitRedis connects to Redis and pings it. It returns (nil, nil) when no
// address is configured.
func InitRedis(ctx context.Context, cfg config.RedisConfig, logger *log.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis init: %w", err)
	}
	logger.WithField("addr", cfg.Addr).Info("redis initialized")
	return client, nil
}

// InitPostgres opens a gorm handle over the pgx-based postgres driver and
// pings it, retrying up to cfg.MaxRetries times. It returns (nil, nil) when
// no DSN is configured.
func InitPostgres(ctx context.Context, cfg config.PostgresConfig, logger *log.Logger) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	var lastErr error
	for i := 1; i <= retries; i++ {
		db, err := openPostgres(ctx, cfg)
		if err == nil {
			logger.Info("postgres initialized")
			return db, nil
		}
		lastErr = err
		logger.WithError(err).Warnf("postgres connect failed (%d/%d)", i, retries)
		if i == retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, fmt.Errorf("postgres connection failed after %d attempts: %w", retries, lastErr)
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}
