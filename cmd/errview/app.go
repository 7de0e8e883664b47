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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/errview/adapter"
	"dirpx.dev/errview/bootstrap"
	"dirpx.dev/errview/config"
	"dirpx.dev/errview/exlog"
	"dirpx.dev/errview/ginx"
	"dirpx.dev/errview/message"
	"dirpx.dev/errview/resolver"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// app holds everything the boundaries need. rdb and db are nil when the
// corresponding store is not configured.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	msgs   *message.Source
	resp   *adapter.Responder
	rdb    *redis.Client
	db     *gorm.DB
}

// newResponder builds the resolver from the exception overrides, the message
// catalog and the exception logger.
func newResponder(cfg *config.Config, logger *log.Logger) (*adapter.Responder, *message.Source, error) {
	opts, err := cfg.Exceptions.Options()
	if err != nil {
		return nil, nil, err
	}
	res, err := resolver.New(opts...)
	if err != nil {
		return nil, nil, err
	}

	tag, err := language.Parse(cfg.Messages.DefaultLanguage)
	if err != nil {
		return nil, nil, fmt.Errorf("messages.default_language: %w", err)
	}
	msgs, err := message.New(message.WithDefaultLanguage(tag), message.WithFiles(cfg.Messages.Files...))
	if err != nil {
		return nil, nil, err
	}

	return &adapter.Responder{Resolver: res, Logger: exlog.New(logger), Messages: msgs}, msgs, nil
}

// newApp wires the logger, the responder and the optional stores. The
// returned close function releases the stores.
func newApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	logger, err := bootstrap.NewLogger(cfg.Log, cfg.App.Name)
	if err != nil {
		return nil, nil, err
	}
	resp, msgs, err := newResponder(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	a := &app{cfg: cfg, logger: logger, msgs: msgs, resp: resp}

	// Stores are optional: the demo routes fall back to synthetic errors.
	if a.rdb, err = bootstrap.InitRedis(ctx, cfg.Redis, logger); err != nil {
		logger.WithError(err).Warn("redis unavailable, continuing without it")
	}
	if a.db, err = bootstrap.InitPostgres(ctx, cfg.Postgres, logger); err != nil {
		logger.WithError(err).Warn("postgres unavailable, continuing without it")
	}

	closeFn := func() {
		if a.rdb != nil {
			_ = a.rdb.Close()
		}
		if a.db != nil {
			if sqlDB, err := a.db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}
	return a, closeFn, nil
}

// router builds the gin engine. Middleware order matters: the span and the
// request id must exist before Errors resolves anything.
func (a *app) router() (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		ginx.Tracing(a.cfg.App.Name),
		ginx.RequestID(),
		ginx.Locale(a.msgs),
	)

	if a.cfg.TraceLogging.Enabled {
		mw, err := ginx.TraceLogging(ginx.TraceConfig{
			Includes:      a.cfg.TraceLogging.Includes,
			Excludes:      a.cfg.TraceLogging.Excludes,
			WarnThreshold: a.cfg.TraceLogging.WarnThreshold,
		}, a.logger)
		if err != nil {
			return nil, fmt.Errorf("trace_logging: %w", err)
		}
		r.Use(mw)
	}

	var errOpts []ginx.ErrorsOption
	if a.cfg.Server.HTMLViews != "" {
		r.LoadHTMLGlob(a.cfg.Server.HTMLViews)
		errOpts = append(errOpts, ginx.WithHTMLViews(".html"))
	}
	r.Use(ginx.Errors(a.resp, errOpts...))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	a.registerDemo(r.Group("/demo"))
	return r, nil
}

// errStoreNotConfigured is returned by demo routes that need a store.
var errStoreNotConfigured = errors.New("store not configured")
