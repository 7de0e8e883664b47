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

package exlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/excode"
	"dirpx.dev/errview/kind"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func disposition(k kind.Kind, c string, status int, view string) apis.Disposition {
	return apis.Disposition{
		Kind:     k,
		Code:     excode.MustParse(c),
		Response: apis.Response{Status: status, View: view},
	}
}

func TestLog_Line(t *testing.T) {
	l, hook := test.NewNullLogger()
	x := New(l)

	x.Log(context.Background(), errors.New("boom"), disposition(kind.Unknown, "e.xx.fw.9001", 500, "systemError"))

	require.Len(t, hook.Entries, 1)
	e := hook.LastEntry()
	assert.Equal(t, log.ErrorLevel, e.Level)
	assert.Equal(t, "[e.xx.fw.9001] boom", e.Message)
	assert.Equal(t, "unknown", e.Data["kind"])
	assert.Equal(t, 500, e.Data["status"])
	assert.Equal(t, "systemError", e.Data["view"])
	assert.NotContains(t, e.Data, "trace_id")
	assert.NotContains(t, e.Data, "store")
}

func TestLog_LevelFromCode(t *testing.T) {
	tests := []struct {
		code string
		want log.Level
	}{
		{"e.xx.fw.8001", log.ErrorLevel},
		{"w.xx.fw.8001", log.WarnLevel},
		{"i.xx.fw.8001", log.InfoLevel},
		{"x.xx.fw.8001", log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l, hook := test.NewNullLogger()
			New(l).Log(context.Background(), errors.New("x"), disposition(kind.Unknown, tt.code, 500, "systemError"))
			require.Len(t, hook.Entries, 1)
			assert.Equal(t, tt.want, hook.LastEntry().Level)
		})
	}
}

func TestLog_TraceFields(t *testing.T) {
	l, hook := test.NewNullLogger()
	tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	New(l).Log(ctx, errors.New("x"), disposition(kind.Unknown, "e.xx.fw.9001", 500, "systemError"))

	e := hook.LastEntry()
	require.NotNil(t, e)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", e.Data["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", e.Data["span_id"])
}

func TestLog_StoreField(t *testing.T) {
	l, hook := test.NewNullLogger()
	err := fmt.Errorf("load order: %w", sql.ErrNoRows)
	New(l).Log(context.Background(), err, disposition(kind.DataAccess, "e.xx.fw.9002", 500, "dataAccessError"))

	e := hook.LastEntry()
	require.NotNil(t, e)
	assert.Equal(t, "sql", e.Data["store"])
}

func TestLog_NilError(t *testing.T) {
	l, hook := test.NewNullLogger()
	New(l).Log(context.Background(), nil, disposition(kind.Unknown, "e.xx.fw.9001", 500, "systemError"))
	assert.Empty(t, hook.Entries)
}

func TestZeroLogger_UsesStandard(t *testing.T) {
	var x *Logger
	assert.Same(t, log.StandardLogger(), x.logger())
}

func TestLog_ClientErrorsLogAtWarn(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		status int
		want   log.Level
	}{
		{"not found", "e.xx.fw.5001", 404, log.WarnLevel},
		{"business", "e.xx.fw.8001", 409, log.WarnLevel},
		{"info code stays info", "i.xx.fw.8001", 409, log.InfoLevel},
		{"server error", "e.xx.fw.9002", 500, log.ErrorLevel},
		{"warn code on 5xx", "w.xx.fw.9002", 503, log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := disposition(kind.Business, tt.code, tt.status, "v")
			assert.Equal(t, tt.want, LevelFor(d))

			l, hook := test.NewNullLogger()
			New(l).Log(context.Background(), errors.New("x"), d)
			require.Len(t, hook.Entries, 1)
			assert.Equal(t, tt.want, hook.LastEntry().Level)
		})
	}
}
