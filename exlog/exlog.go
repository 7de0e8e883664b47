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

// Package exlog writes one structured log line per handled exception.
//
// The line has the form "[<code>] <error text>" and carries the resolved
// kind, status and view as fields, plus trace_id/span_id when the context
// holds an OpenTelemetry span. The level is derived from the code prefix
// ("e" logs at Error, "w" at Warn, "i" at Info) and capped at Warn for
// client errors (4xx).
package exlog

import (
	"context"
	"fmt"

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/dataaccess"
	"dirpx.dev/errview/excode"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Logger logs handled exceptions. The zero value logs to logrus' standard
// logger.
type Logger struct {
	base *log.Logger
}

// New returns a Logger writing to l. A nil l means logrus.StandardLogger().
func New(l *log.Logger) *Logger {
	return &Logger{base: l}
}

func (x *Logger) logger() *log.Logger {
	if x == nil || x.base == nil {
		return log.StandardLogger()
	}
	return x.base
}

// Log writes the exception line for err resolved as d.
func (x *Logger) Log(ctx context.Context, err error, d apis.Disposition) {
	if err == nil {
		return
	}
	e := x.Entry(ctx, d)
	if src := dataaccess.Source(err); src != "" {
		e = e.WithField("store", src)
	}
	e.Log(LevelFor(d), fmt.Sprintf("[%s] %v", d.Code, err))
}

// Entry returns an entry carrying the disposition and trace fields, for
// callers that want to add their own fields before logging.
func (x *Logger) Entry(ctx context.Context, d apis.Disposition) *log.Entry {
	return WithTrace(ctx, x.logger()).WithFields(log.Fields{
		"code":   d.Code.String(),
		"kind":   d.Kind.String(),
		"status": d.Status,
		"view":   d.View,
	})
}

// WithTrace binds ctx to an entry of l and adds "trace_id"/"span_id" when an
// OpenTelemetry span context is present.
func WithTrace(ctx context.Context, l *log.Logger) *log.Entry {
	if l == nil {
		l = log.StandardLogger()
	}
	if ctx == nil {
		return log.NewEntry(l)
	}
	e := l.WithContext(ctx)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		e = e.WithFields(log.Fields{
			"trace_id": sc.TraceID().String(),
			"span_id":  sc.SpanID().String(),
		})
	}
	return e
}

// LevelFor returns the level for a resolved error: Level(d.Code), lowered
// to Warn when the response is a 4xx.
func LevelFor(d apis.Disposition) log.Level {
	lvl := Level(d.Code)
	if lvl == log.ErrorLevel && d.Status >= 400 && d.Status < 500 {
		return log.WarnLevel
	}
	return lvl
}

// Level maps a code's severity prefix to a logrus level.
func Level(c excode.Code) log.Level {
	switch c.Level() {
	case excode.LevelInfo:
		return log.InfoLevel
	case excode.LevelWarn:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
