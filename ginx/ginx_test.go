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

package ginx

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dirpx.dev/errview"
	"dirpx.dev/errview/adapter"
	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/exlog"
	"dirpx.dev/errview/message"
	"dirpx.dev/errview/resolver"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, opts ...ErrorsOption) (*gin.Engine, *test.Hook) {
	t.Helper()
	l, hook := test.NewNullLogger()
	msgs, err := message.New()
	require.NoError(t, err)
	resp := &adapter.Responder{Resolver: resolver.MustNew(), Logger: exlog.New(l), Messages: msgs}

	r := gin.New()
	r.Use(RequestID(), Locale(msgs), Errors(resp, opts...))
	return r, hook
}

func do(r http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apis.ErrorView {
	t.Helper()
	var v apis.ErrorView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestErrors_ResolvesLastError(t *testing.T) {
	r, hook := newEngine(t)
	r.GET("/orders/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("first"))
		_ = c.Error(errview.NotFound("order " + c.Param("id")))
	})

	rec := do(r, http.MethodGet, "/orders/42", map[string]string{RequestIDHeader: "rid-1"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	v := decode(t, rec)
	assert.Equal(t, "e.xx.fw.5001", v.Code)
	assert.Equal(t, "resourceNotFoundError", v.View)
	assert.Equal(t, "rid-1", v.Correlation)
	assert.Equal(t, "rid-1", rec.Header().Get(RequestIDHeader))

	// resolved exactly once
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "[e.xx.fw.5001] resource_not_found: order 42", hook.LastEntry().Message)
}

func TestErrors_Panic(t *testing.T) {
	r, hook := newEngine(t)
	r.GET("/boom", func(*gin.Context) { panic("index out of range") })

	rec := do(r, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	v := decode(t, rec)
	assert.Equal(t, "e.xx.fw.9001", v.Code)
	assert.Equal(t, "systemError", v.View)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
}

func TestErrors_AlreadyWritten(t *testing.T) {
	r, hook := newEngine(t)
	r.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		_ = c.Error(errview.Business("late failure"))
	})

	rec := do(r, http.MethodGet, "/partial", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	// still logged
	require.Len(t, hook.Entries, 1)
}

func TestErrors_NoError(t *testing.T) {
	r, hook := newEngine(t)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := do(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, hook.Entries)
}

func TestErrors_Localized(t *testing.T) {
	r, _ := newEngine(t)
	r.POST("/confirm", func(c *gin.Context) { _ = c.Error(errview.InvalidToken("reused token")) })

	rec := do(r, http.MethodPost, "/confirm", map[string]string{"Accept-Language": "ja"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "不正な画面遷移を検知しました。", decode(t, rec).Message)
}

func TestErrors_HTMLViews(t *testing.T) {
	r, _ := newEngine(t, WithHTMLViews(".html"))
	tmpl := template.Must(template.New("businessError.html").Parse(`<p>{{.Code}}: {{.Message}}</p>`))
	r.SetHTMLTemplate(tmpl)
	r.GET("/cart", func(c *gin.Context) { _ = c.Error(errview.Business("cart locked")) })

	rec := do(r, http.MethodGet, "/cart", map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "<p>e.xx.fw.8001: Business error occurred!</p>", rec.Body.String())

	// JSON clients are unaffected
	rec = do(r, http.MethodGet, "/cart", map[string]string{"Accept": "application/json"})
	assert.Equal(t, "businessError", decode(t, rec).View)
}

func TestRequestID_Generated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := do(r, http.MethodGet, "/", nil)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestTraceLogging(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(log.DebugLevel)
	mw, err := TraceLogging(TraceConfig{}, l)
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/resources/app.js", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/docs/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(r, http.MethodGet, "/orders", nil)
	require.Len(t, hook.Entries, 2)
	assert.Equal(t, "[START CONTROLLER]", hook.Entries[0].Message)
	assert.Equal(t, "[END CONTROLLER]", hook.Entries[1].Message)
	assert.Equal(t, http.StatusOK, hook.Entries[1].Data["status"])
	assert.Equal(t, "/orders", hook.Entries[1].Data["path"])

	hook.Reset()
	do(r, http.MethodGet, "/resources/app.js", nil)
	do(r, http.MethodGet, "/docs/index.html", nil)
	assert.Empty(t, hook.Entries)
}

func TestTraceLogging_Slow(t *testing.T) {
	l, hook := test.NewNullLogger()
	mw, err := TraceLogging(TraceConfig{WarnThreshold: time.Millisecond}, l)
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(5 * time.Millisecond)
		c.Status(http.StatusOK)
	})

	do(r, http.MethodGet, "/slow", nil)
	// Info level logger: only the warn line passes
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestTraceLogging_InvalidPattern(t *testing.T) {
	_, err := TraceLogging(TraceConfig{Includes: []string{"orders"}}, nil)
	assert.Error(t, err)
}

func TestTracing_RecordsErrorOnSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	l, _ := test.NewNullLogger()
	resp := &adapter.Responder{Resolver: resolver.MustNew(), Logger: exlog.New(l)}

	r := gin.New()
	r.Use(Tracing("ginx-test"), RequestID(), Errors(resp))
	r.GET("/orders/:id", func(c *gin.Context) {
		_ = c.Error(errview.NotFound("no such order"))
	})

	rec := do(r, http.MethodGet, "/orders/7", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	v := decode(t, rec)
	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /orders/:id", spans[0].Name())
	assert.Equal(t, otelcodes.Error, spans[0].Status().Code)
	assert.Equal(t, "e.xx.fw.5001", spans[0].Status().Description)
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), v.TraceID)
}

func TestGetLocalizer(t *testing.T) {
	msgs, err := message.New()
	require.NoError(t, err)

	r := gin.New()
	r.GET("/bare", func(c *gin.Context) {
		assert.Nil(t, GetLocalizer(c))
		c.Status(http.StatusNoContent)
	})
	r.GET("/localized", Locale(msgs), func(c *gin.Context) {
		loc := GetLocalizer(c)
		require.NotNil(t, loc)
		text, ok := msgs.Lookup(loc, "e.xx.fw.5001", nil)
		require.True(t, ok)
		c.String(http.StatusOK, text)
	})

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/bare", nil).Code)
	rec := do(r, http.MethodGet, "/localized", map[string]string{"Accept-Language": "ja"})
	assert.Equal(t, "リソースが見つかりません。", rec.Body.String())
}
