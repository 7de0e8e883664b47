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

package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/errview"
	"dirpx.dev/errview/exlog"
	"dirpx.dev/errview/kind"
	"dirpx.dev/errview/message"
	"dirpx.dev/errview/resolver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newResponder(t *testing.T) (*Responder, *test.Hook) {
	t.Helper()
	l, hook := test.NewNullLogger()
	msgs, err := message.New()
	require.NoError(t, err)
	return &Responder{
		Resolver: resolver.MustNew(),
		Logger:   exlog.New(l),
		Messages: msgs,
	}, hook
}

func TestRespond_NotFound(t *testing.T) {
	r, hook := newResponder(t)

	d, v := r.Respond(context.Background(), errview.NotFound("order 42", errview.WithDetailOption("id", 42)))

	assert.Equal(t, kind.ResourceNotFound, d.Kind)
	assert.Equal(t, "e.xx.fw.5001", d.Code.String())
	assert.Equal(t, 404, d.Status)
	assert.Equal(t, "resourceNotFoundError", d.View)

	assert.Equal(t, "e.xx.fw.5001", v.Code)
	assert.Equal(t, "resource_not_found", v.Kind)
	assert.Equal(t, "Resource not found.", v.Message)
	assert.Equal(t, "resourceNotFoundError", v.View)
	assert.Equal(t, map[string]any{"id": 42}, v.Details)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "[e.xx.fw.5001] resource_not_found: order 42", hook.LastEntry().Message)
}

func TestRespond_UnknownHidesDetails(t *testing.T) {
	r, _ := newResponder(t)

	// a non-kinded error that still exposes details
	inner := errview.E(kind.Kind("bogus"), "secret", errview.WithDetailOption("dsn", "postgres://"))
	d, v := r.Respond(context.Background(), inner)

	assert.Equal(t, kind.Unknown, d.Kind)
	assert.Equal(t, "System error occurred!", v.Message)
	assert.Nil(t, v.Details)
}

func TestRespond_ProvidedCodeMessage(t *testing.T) {
	r, _ := newResponder(t)

	err := errview.Business("sold out", errview.WithCodeOption("e.shop.order.8101"))
	d, v := r.Respond(context.Background(), fmt.Errorf("checkout: %w", err))

	assert.Equal(t, "e.shop.order.8101", d.Code.String())
	assert.Equal(t, 409, d.Status)
	// no catalog entry, classified: own message
	assert.Equal(t, "sold out", v.Message)
}

func TestRespond_Localized(t *testing.T) {
	r, _ := newResponder(t)

	ctx := message.WithLocalizer(context.Background(), r.Messages.Localizer("ja"))
	_, v := r.Respond(ctx, errview.InvalidToken("stale"))

	assert.Equal(t, "不正な画面遷移を検知しました。", v.Message)
}

func TestRespond_WithoutOptionalParts(t *testing.T) {
	r := &Responder{Resolver: resolver.MustNew()}

	_, v := r.Respond(context.Background(), errors.New("boom"))
	assert.Equal(t, genericText, v.Message)
	assert.Equal(t, "systemError", v.View)

	_, v = r.Respond(context.Background(), errview.Business("limit exceeded"))
	assert.Equal(t, "limit exceeded", v.Message)
}

func TestRespond_RemovedKindFallsBackToGeneric(t *testing.T) {
	r, _ := newResponder(t)
	r.Resolver = resolver.MustNew(resolver.WithoutKind(kind.Business), resolver.WithCode(kind.Unknown, "e.shop.fw.9999"))

	// unknown code, unknown kind: generic catalog text
	_, v := r.Respond(context.Background(), errors.New("boom"))
	assert.Equal(t, "e.shop.fw.9999", v.Code)
	assert.Equal(t, "An unexpected error occurred.", v.Message)
}

func TestRespond_RecordsSpan(t *testing.T) {
	r, _ := newResponder(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "handler")
	r.Respond(ctx, errview.Business("nope"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, otelcodes.Error, s.Status().Code)
	assert.Equal(t, "e.xx.fw.8001", s.Status().Description)
	require.Len(t, s.Events(), 1)
	assert.Equal(t, "exception", s.Events()[0].Name)
}

func TestRespond_RuleClassifiedNeverShowsErrorText(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		ConstraintName: "users_email_key",
	})

	withCatalog, _ := newResponder(t)
	withCatalog.Resolver = resolver.MustNew(resolver.WithCode(kind.DataAccess, "e.app.db.9100"))
	bare := &Responder{Resolver: resolver.MustNew(resolver.WithCode(kind.DataAccess, "e.app.db.9100"))}

	tests := []struct {
		name       string
		r          *Responder
		wantMsg    string
		wantLocale string
	}{
		{"catalog without entry", withCatalog, "An unexpected error occurred.", "en"},
		{"no catalog", bare, genericText, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, v := tt.r.Respond(context.Background(), dup)
			require.Equal(t, kind.DataAccess, d.Kind)
			assert.Equal(t, "e.app.db.9100", v.Code)
			assert.Equal(t, tt.wantMsg, v.Message)
			assert.Equal(t, tt.wantLocale, v.Locale)
			assert.NotContains(t, v.Message, "users_email_key")
		})
	}
}

func TestRespond_UnknownKindMessageIsNotShown(t *testing.T) {
	r := &Responder{Resolver: resolver.MustNew()}

	// rule-classified, but the application error in the chain has no known kind
	err := errview.E(kind.Unknown, "dsn=postgres://admin:pw@db", errview.WithCauseOption(sql.ErrConnDone))
	d, v := r.Respond(context.Background(), err)

	require.Equal(t, kind.DataAccess, d.Kind)
	assert.Equal(t, genericText, v.Message)
}

func TestRespond_Locale(t *testing.T) {
	r, _ := newResponder(t)

	ctx := message.WithLocalizer(context.Background(), r.Messages.Localizer("ja-JP"))
	_, v := r.Respond(ctx, errview.NotFound("order 42"))
	assert.Equal(t, "ja", v.Locale)

	ctx = message.WithLocalizer(context.Background(), r.Messages.Localizer("fr"))
	_, v = r.Respond(ctx, errview.NotFound("order 42"))
	assert.Equal(t, "Resource not found.", v.Message)
	assert.Equal(t, "en", v.Locale)

	// own message: not catalog text
	_, v = r.Respond(ctx, errview.Business("sold out", errview.WithCodeOption("e.shop.order.8101")))
	assert.Equal(t, "sold out", v.Message)
	assert.Empty(t, v.Locale)
}
